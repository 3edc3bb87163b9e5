package secrets

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
	"filippo.io/age/agessh"
	"filippo.io/age/armor"
	"filippo.io/age/plugin"
	"golang.org/x/crypto/ssh"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
)

// LoadIdentities reads every identity file and returns the decryption keys
// they contain. Identity files hold native AGE-SECRET-KEY-1 lines,
// AGE-PLUGIN- lines, or a single SSH private key.
func LoadIdentities(locators []string, prompter Prompter) ([]age.Identity, error) {
	var identities []age.Identity
	for _, locator := range locators {
		ids, err := loadIdentityFile(locator, prompter)
		if err != nil {
			return nil, fmt.Errorf("loading identities failed from paths %q: %w", locators, err)
		}
		identities = append(identities, ids...)
	}
	return identities, nil
}

// ValidateIdentity checks that locator parses as a usable identity file.
// Encrypted SSH keys are accepted without asking for their passphrase.
func ValidateIdentity(locator string) error {
	_, err := loadIdentityFile(locator, Prompter{})
	return err
}

func loadIdentityFile(path string, prompter Prompter) ([]age.Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", kerrors.ErrInvalidIdentity, path, err)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte(armor.Header)):
		return nil, fmt.Errorf("%w: '%s' is passphrase encrypted, which is not supported", kerrors.ErrInvalidIdentity, path)
	case bytes.HasPrefix(trimmed, []byte("-----BEGIN")):
		return parseSSHIdentity(path, data, prompter)
	default:
		return parseIdentityLines(path, data, prompter)
	}
}

func parseSSHIdentity(path string, pemBytes []byte, prompter Prompter) ([]age.Identity, error) {
	id, err := agessh.ParseIdentity(pemBytes)
	if err == nil {
		return []age.Identity{id}, nil
	}

	var missing *ssh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, fmt.Errorf("%w: '%s': %w", kerrors.ErrInvalidIdentity, path, err)
	}

	pub := missing.PublicKey
	if pub == nil {
		pub, err = readSSHPublicKey(path + ".pub")
		if err != nil {
			return nil, fmt.Errorf("%w: '%s' is encrypted and its public key is unavailable: %w", kerrors.ErrInvalidIdentity, path, err)
		}
	}

	enc, err := agessh.NewEncryptedSSHIdentity(pub, pemBytes, prompter.Passphrase(path))
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", kerrors.ErrInvalidIdentity, path, err)
	}
	return []age.Identity{enc}, nil
}

func readSSHPublicKey(path string) (ssh.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pub, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pub, nil
}

func parseIdentityLines(path string, data []byte, prompter Prompter) ([]age.Identity, error) {
	var identities []age.Identity

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "AGE-SECRET-KEY-1"):
			id, err := age.ParseX25519Identity(line)
			if err != nil {
				return nil, fmt.Errorf("%w: '%s' line %d: %w", kerrors.ErrInvalidIdentity, path, lineNo, err)
			}
			identities = append(identities, id)
		case strings.HasPrefix(line, "AGE-PLUGIN-"):
			id, err := plugin.NewIdentity(line, prompter.ClientUI())
			if err != nil {
				return nil, fmt.Errorf("%w: '%s' line %d: %w", kerrors.ErrInvalidIdentity, path, lineNo, err)
			}
			identities = append(identities, id)
		default:
			return nil, fmt.Errorf("%w: '%s' line %d is not an identity", kerrors.ErrInvalidIdentity, path, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identity file %s: %w", path, err)
	}

	if len(identities) == 0 {
		return nil, fmt.Errorf("%w: no identities found in '%s'", kerrors.ErrInvalidIdentity, path)
	}
	return identities, nil
}
