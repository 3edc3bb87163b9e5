package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"lukechampine.com/blake3"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
	"github.com/PolarWolf314/git-agecrypt/internal/sidecar"
)

// Cipher is the age envelope boundary.
type Cipher interface {
	Encrypt(recipients []string, plaintext []byte) ([]byte, error)
	Decrypt(identities []string, ciphertext []byte) ([]byte, error)
}

// RecipientSource maps a repository relative path to its recipients.
type RecipientSource interface {
	RecipientsFor(path string) ([]string, error)
}

// IdentitySource lists the configured identity paths.
type IdentitySource interface {
	Paths() ([]string, error)
}

// Filter implements the git clean, smudge and textconv filters. It keeps
// no state of its own between invocations; everything durable lives in
// Cache.
type Filter struct {
	Cache      sidecar.Cache
	Recipients RecipientSource
	Identities IdentitySource
	Cipher     Cipher
	Logger     logger.Logger
}

// Digest is the content digest cached for a plaintext.
func Digest(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// CleanOptions configures a clean invocation.
type CleanOptions struct {
	// File is the repository relative path git is cleaning.
	File string
	// Input is the working tree content.
	Input io.Reader
	// Output receives the ciphertext.
	Output io.Writer
}

// CleanResult describes what clean did.
type CleanResult struct {
	// Reused is true when the cached ciphertext was emitted unchanged.
	Reused bool
}

// Clean encrypts the plaintext of one file.
//
// When the plaintext digest equals the cached digest and a cached
// ciphertext exists, the cached ciphertext is emitted instead of
// encrypting again, so unchanged files keep identical blobs.
//
// Returns ErrNoRecipients if the file has no recipients configured.
func (f *Filter) Clean(ctx context.Context, opts CleanOptions) (*CleanResult, error) {
	f.Logger.Infof("Encrypting file %s", opts.File)

	plaintext, err := io.ReadAll(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read plaintext of %s: %w", opts.File, err)
	}
	digest := Digest(plaintext)

	cached, err := f.cachedCiphertext(opts.File, digest)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		f.Logger.Debugf("File %s didn't change since last encryption, reusing ciphertext", opts.File)
		if _, err := opts.Output.Write(cached); err != nil {
			return nil, fmt.Errorf("failed to write ciphertext of %s: %w", opts.File, err)
		}
		return &CleanResult{Reused: true}, nil
	}

	f.Logger.Debugf("File %s changed since last encryption, re-encrypting", opts.File)
	recipients, err := f.Recipients.RecipientsFor(opts.File)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ciphertext, err := f.Cipher.Encrypt(recipients, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt %s: %w", opts.File, err)
	}

	if err := f.Cache.Store(opts.File, sidecar.KindHash, digest[:]); err != nil {
		return nil, err
	}
	if err := f.Cache.Store(opts.File, sidecar.KindCiphertext, ciphertext); err != nil {
		return nil, err
	}

	if _, err := opts.Output.Write(ciphertext); err != nil {
		return nil, fmt.Errorf("failed to write ciphertext of %s: %w", opts.File, err)
	}
	return &CleanResult{}, nil
}

// cachedCiphertext returns the cached ciphertext of file if its cached
// digest matches digest, nil otherwise.
func (f *Filter) cachedCiphertext(file string, digest [32]byte) ([]byte, error) {
	hash, found, err := f.Cache.Load(file, sidecar.KindHash)
	if err != nil {
		return nil, err
	}
	if !found {
		f.Logger.Debugf("No saved hash found for %s", file)
		return nil, nil
	}
	if !bytes.Equal(hash, digest[:]) {
		return nil, nil
	}

	ciphertext, found, err := f.Cache.Load(file, sidecar.KindCiphertext)
	if err != nil {
		return nil, err
	}
	if !found {
		f.Logger.Debugf("Hash of %s matches but no ciphertext is cached", file)
		return nil, nil
	}
	return ciphertext, nil
}

// identities returns the configured identities followed by extra.
func (f *Filter) identities(extra []string) ([]string, error) {
	configured, err := f.Identities.Paths()
	if err != nil {
		return nil, err
	}
	f.Logger.Debugf("Loaded identities from config: %q", configured)
	return append(configured, extra...), nil
}

// SmudgeOptions configures a smudge invocation.
type SmudgeOptions struct {
	// File is the repository relative path git is checking out.
	File string
	// Identities are used in addition to the configured ones.
	Identities []string
	// Input is the stored ciphertext.
	Input io.Reader
	// Output receives the plaintext.
	Output io.Writer
}

// Smudge decrypts the ciphertext of one file and records the digest of the
// plaintext so the next clean recognises unchanged content.
//
// Only the digest is cached, not the ciphertext: the first clean after a
// fresh checkout therefore encrypts once more.
//
// Returns ErrNotEncrypted if the input is not an age envelope and
// ErrPassphraseEncrypted for passphrase envelopes.
func (f *Filter) Smudge(ctx context.Context, opts SmudgeOptions) error {
	f.Logger.Infof("Decrypting file %s", opts.File)

	identities, err := f.identities(opts.Identities)
	if err != nil {
		return err
	}

	ciphertext, err := io.ReadAll(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to read ciphertext of %s: %w", opts.File, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	plaintext, err := f.Cipher.Decrypt(identities, ciphertext)
	if err != nil {
		return fmt.Errorf("failed to decrypt %s: %w", opts.File, err)
	}

	digest := Digest(plaintext)
	if err := f.Cache.Store(opts.File, sidecar.KindHash, digest[:]); err != nil {
		return err
	}

	if _, err := opts.Output.Write(plaintext); err != nil {
		return fmt.Errorf("failed to write plaintext of %s: %w", opts.File, err)
	}
	return nil
}

// TextconvOptions configures a textconv invocation.
type TextconvOptions struct {
	// Path is the file git wants rendered; usually a temporary file.
	Path string
	// Identities are used in addition to the configured ones.
	Identities []string
	// Output receives the displayable content.
	Output io.Writer
}

// TextconvResult describes what textconv did.
type TextconvResult struct {
	// Decrypted is false when the file was not encrypted and was shown as is.
	Decrypted bool
}

// Textconv renders a file for diff. Encrypted files are decrypted; files
// that are not age envelopes, such as working copies, are shown unchanged.
func (f *Filter) Textconv(ctx context.Context, opts TextconvOptions) (*TextconvResult, error) {
	f.Logger.Infof("Decrypting file %s to show in diff", opts.Path)

	identities, err := f.identities(opts.Identities)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", opts.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &TextconvResult{Decrypted: true}
	plaintext, err := f.Cipher.Decrypt(identities, content)
	switch {
	case errors.Is(err, kerrors.ErrNotEncrypted):
		f.Logger.Infof("File %s isn't encrypted, probably a working copy; showing as is", opts.Path)
		plaintext, result.Decrypted = content, false
	case err != nil:
		return nil, fmt.Errorf("failed to decrypt %s: %w", opts.Path, err)
	}

	if _, err := opts.Output.Write(plaintext); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.Path, err)
	}
	return result, nil
}
