// Package git talks to the git binary: repository discovery and the local
// configuration holding filter bindings and identity paths.
package git
