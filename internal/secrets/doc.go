// Package secrets is the boundary to the age encryption format.
//
// It classifies recipient strings, loads identity files, speaks the age
// plugin protocol, and encrypts and decrypts envelopes. It keeps no state
// between calls.
//
// # Recipients
//
// Recipient strings are parsed in a fixed priority order:
//
//  1. native X25519 keys (age1...)
//  2. SSH public keys (ssh-ed25519 ..., ssh-rsa ...)
//  3. plugin recipients (age1<plugin>1...)
//
// The first format that accepts the string wins; a string no format accepts
// fails with ErrInvalidRecipient. Plugin recipients sharing a plugin name
// are wrapped in a single age-plugin-<name> session.
//
// # Identities
//
// Identity files contain AGE-SECRET-KEY-1 lines, AGE-PLUGIN- lines, or a
// single SSH private key. Passphrase-protected OpenSSH keys prompt on the
// terminal the first time they are needed.
//
// # Envelopes
//
// Sniff distinguishes age envelopes (binary or armored) from plaintext and
// spots passphrase envelopes, which are rejected. Encryption is randomized:
// encrypting the same plaintext twice yields different ciphertexts.
package secrets
