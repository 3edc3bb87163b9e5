// Package workflows implements the git-agecrypt commands independent of
// the command line.
//
// The cmd/ package parses flags, calls a workflow and formats its result.
// Workflows load configuration, validate input and perform the operation.
//
// # Available Workflows
//
//   - Filter.Clean: encrypts a file as git stages it, reusing the cached
//     ciphertext when the plaintext did not change
//   - Filter.Smudge: decrypts a file as git checks it out
//   - Filter.Textconv: renders a blob for git diff
//   - Init, Deinit: register and remove the filter configuration
//   - Status: reports filters, identities and recipients
//   - AddIdentity, RemoveIdentity, ListIdentities
//   - AddRecipients, RemoveRecipients, ListRecipients
//
// Session ties these to the repository containing the working directory.
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package wrapped
// with context. Use errors.Is to check for them:
//
//	err := f.Smudge(ctx, opts)
//	if errors.Is(err, kerrors.ErrNoIdentities) {
//	    // suggest git-agecrypt config add -i
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// The filters check it before the expensive age operation.
package workflows
