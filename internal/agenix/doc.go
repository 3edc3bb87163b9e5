// Package agenix resolves recipients from an agenix secrets.nix rule file.
//
// The rule file is evaluated with nix and must produce an attribute set
// keyed by file paths relative to the rule file's directory:
//
//	{ "secrets/prod.env".publicKeys = [ "age1..." "ssh-ed25519 ..." ]; }
//
// It is the legacy alternative to git-agecrypt.toml.
package agenix
