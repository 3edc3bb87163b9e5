package errors

import "errors"

// Configuration errors indicate invalid or missing settings.
var (
	// ErrInvalidRecipient indicates a recipient string matches no supported format.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrInvalidIdentity indicates an identity file could not be parsed.
	ErrInvalidIdentity = errors.New("not a valid age identity")

	// ErrNoRecipients indicates a file has no recipient mapping.
	ErrNoRecipients = errors.New("no public key can be found")

	// ErrNoIdentities indicates decryption was attempted without any identity.
	ErrNoIdentities = errors.New("no identities configured")

	// ErrPathOutsideRepo indicates a path does not live inside the repository work tree.
	ErrPathOutsideRepo = errors.New("path is outside of the git repository")

	// ErrFileNotFound indicates a path does not reference an existing file.
	ErrFileNotFound = errors.New("file does not exist")

	// ErrInvalidConfig indicates the recipient file is malformed.
	ErrInvalidConfig = errors.New("configuration file is invalid")
)

// Envelope errors indicate issues with the encrypted input.
var (
	// ErrNotEncrypted indicates the input isn't an age envelope.
	ErrNotEncrypted = errors.New("input isn't encrypted")

	// ErrPassphraseEncrypted indicates a passphrase (scrypt) envelope, which is unsupported.
	ErrPassphraseEncrypted = errors.New("passphrase encrypted files are not supported")
)

// Repository errors indicate the working directory cannot be used.
var (
	// ErrNotARepository indicates no git repository was found.
	ErrNotARepository = errors.New("not a git repository")

	// ErrBareRepository indicates the repository has no work tree.
	ErrBareRepository = errors.New("bare repositories are unsupported")
)

// Rule errors come from the agenix rule evaluator.
var (
	// ErrNoRule indicates the rule file has no entry for a path.
	ErrNoRule = errors.New("no rule found")

	// ErrNixNotFound indicates the nix executable is not installed.
	ErrNixNotFound = errors.New("nix command not found")
)
