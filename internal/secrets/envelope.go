package secrets

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
)

// intro is the first line of every binary age envelope.
const intro = "age-encryption.org/v1\n"

// Format is the result of inspecting a byte stream for an age envelope.
type Format int

const (
	// FormatPlaintext means the input is not an age envelope.
	FormatPlaintext Format = iota
	// FormatRecipients is an envelope wrapped to public-key recipients.
	FormatRecipients
	// FormatPassphrase is an scrypt (password) envelope.
	FormatPassphrase
)

// Sniff classifies data and returns the binary envelope, removing ASCII
// armor when present. Input too short to hold the header, and armor that
// cannot be decoded, are reported as plaintext.
func Sniff(data []byte) ([]byte, Format) {
	payload := data
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); bytes.HasPrefix(trimmed, []byte(armor.Header)) {
		decoded, err := io.ReadAll(armor.NewReader(bytes.NewReader(trimmed)))
		if err != nil {
			return data, FormatPlaintext
		}
		payload = decoded
	}

	if !bytes.HasPrefix(payload, []byte(intro)) {
		return data, FormatPlaintext
	}
	if hasScryptStanza(payload[len(intro):]) {
		return payload, FormatPassphrase
	}
	return payload, FormatRecipients
}

// hasScryptStanza scans the header stanzas up to the MAC line.
func hasScryptStanza(header []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(header))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "---") {
			return false
		}
		if fields := strings.Fields(line); len(fields) >= 2 && fields[0] == "->" && fields[1] == "scrypt" {
			return true
		}
	}
	return false
}

// Age is the envelope boundary: encryption to recipient strings and
// decryption with identity files. It owns no state.
type Age struct {
	Prompter Prompter
}

// Encrypt produces a binary age envelope of plaintext for recipients.
// Every call uses a fresh file key, so output differs between calls.
func (a Age) Encrypt(recipients []string, plaintext []byte) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, kerrors.ErrNoRecipients
	}

	targets, err := ResolveRecipients(recipients, a.Prompter)
	if err != nil {
		return nil, fmt.Errorf("couldn't load keys for recipients %q: %w", recipients, err)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, targets...)
	if err != nil {
		return nil, fmt.Errorf("failed to create encryptor: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("failed to write plaintext: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encryptor: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt opens ciphertext with the identities stored at the given paths.
//
// Returns ErrNotEncrypted if ciphertext is not an age envelope, including
// input whose header is truncated or malformed, and ErrPassphraseEncrypted
// for password envelopes. Identities are only loaded once the header parsed.
func (a Age) Decrypt(identities []string, ciphertext []byte) ([]byte, error) {
	payload, format := Sniff(ciphertext)
	switch format {
	case FormatPlaintext:
		return nil, kerrors.ErrNotEncrypted
	case FormatPassphrase:
		return nil, kerrors.ErrPassphraseEncrypted
	}

	files := &identityFiles{paths: identities, prompter: a.Prompter}
	r, err := age.Decrypt(bytes.NewReader(payload), files)
	if err != nil {
		if !files.reached {
			return nil, fmt.Errorf("%w: invalid header: %w", kerrors.ErrNotEncrypted, err)
		}
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read decrypted data: %w", err)
	}

	return plaintext, nil
}

// identityFiles is the single identity handed to age.Decrypt. age only calls
// Unwrap after the header parsed, so reached tells header errors apart from
// identity errors. The files are loaded on that first call.
type identityFiles struct {
	paths    []string
	prompter Prompter
	reached  bool
}

func (f *identityFiles) Unwrap(stanzas []*age.Stanza) ([]byte, error) {
	f.reached = true
	if len(f.paths) == 0 {
		return nil, kerrors.ErrNoIdentities
	}
	ids, err := LoadIdentities(f.paths, f.prompter)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		fileKey, err := id.Unwrap(stanzas)
		if errors.Is(err, age.ErrIncorrectIdentity) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return fileKey, nil
	}
	return nil, age.ErrIncorrectIdentity
}
