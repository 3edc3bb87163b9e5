// Package configs holds the configuration of a git-agecrypt repository.
//
// Configuration lives in two places:
//
//   - Identities: private key paths of one clone, kept in the local git
//     config under the multi-valued key git-agecrypt.config.identity.
//     They are never committed.
//   - Recipients: git-agecrypt.toml at the repository root maps each
//     encrypted file to the public keys it is encrypted for. It is
//     committed and shared by everybody working on the repository.
//
// # Recipient file
//
// The file looks like:
//
//	[config]
//	"secrets/prod.env" = ["age1...", "ssh-ed25519 AAAA..."]
//
// Paths are relative to the repository root and use forward slashes. A path
// whose last recipient is removed disappears from the file. A missing file
// is an empty mapping.
//
// # Settings
//
// Process settings come from the environment, see Settings.
package configs
