// Package errors provides typed error values for git-agecrypt.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Configuration errors: invalid identities or recipients, missing path
//     mappings, paths outside the repository (ErrInvalidRecipient,
//     ErrNoRecipients, ErrPathOutsideRepo, ...)
//   - Envelope errors: input that is not an age envelope (ErrNotEncrypted)
//   - Unsupported formats: passphrase envelopes (ErrPassphraseEncrypted)
//   - Repository errors: not a repository, bare repository
//   - Rule errors: agenix rule evaluation (ErrNoRule, ErrNixNotFound)
//
// # Usage
//
// Wrap errors with the offending input:
//
//	return fmt.Errorf("%w for '%s'", errors.ErrNoRecipients, path)
//
// Handle them in the caller:
//
//	if errors.Is(err, kerrors.ErrNotEncrypted) {
//	    // show the input as is
//	}
package errors
