// Package sidecar caches what the filters last saw for each file.
//
// Every encrypted file gets up to two entries in a private directory inside
// the git directory: the digest of its last plaintext (hash) and the last
// ciphertext produced for it (ciphertext). The clean filter uses them to
// hand back the previous ciphertext when content has not changed, since age
// encryption never produces the same bytes twice.
//
// Entry names are the repository relative path with '!' escaped as "!!" and
// separators written as "!_", followed by the kind:
//
//	secrets/prod.env -> secrets!_prod.env.hash
//	secrets/a!b.env  -> secrets!_a!!b.env.hash
//
// The directory is disposable. Deinit removes it.
package sidecar
