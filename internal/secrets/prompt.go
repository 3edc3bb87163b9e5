package secrets

import (
	"fmt"
	"strings"

	"filippo.io/age/plugin"

	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
	"github.com/PolarWolf314/git-agecrypt/internal/utils"
)

// Prompter carries the user interaction needed by plugins and encrypted
// SSH keys. Messages go to the logger, input comes from the terminal.
type Prompter struct {
	Logger logger.Logger

	// readSecret and readLine default to the controlling terminal.
	readSecret func(prompt string) ([]byte, error)
	readLine   func(prompt string) (string, error)
}

func (p Prompter) secret(prompt string) ([]byte, error) {
	if p.readSecret != nil {
		return p.readSecret(prompt)
	}
	return utils.ReadPassphraseFromTTY(prompt)
}

func (p Prompter) line(prompt string) (string, error) {
	if p.readLine != nil {
		return p.readLine(prompt)
	}
	return utils.ReadLineFromTTY(prompt)
}

// ClientUI adapts the prompter to the age plugin client callbacks.
func (p Prompter) ClientUI() *plugin.ClientUI {
	return &plugin.ClientUI{
		DisplayMessage: func(name, message string) error {
			p.Logger.Warnf("age-plugin-%s: %s", name, message)
			return nil
		},
		RequestValue: func(name, prompt string, secret bool) (string, error) {
			prompt = fmt.Sprintf("age-plugin-%s: %s ", name, prompt)
			if secret {
				v, err := p.secret(prompt)
				return string(v), err
			}
			return p.line(prompt)
		},
		Confirm: func(name, prompt, yes, no string) (bool, error) {
			if no == "" {
				_, err := p.line(fmt.Sprintf("age-plugin-%s: %s [%s] ", name, prompt, yes))
				return true, err
			}
			answer, err := p.line(fmt.Sprintf("age-plugin-%s: %s [%s/%s] ", name, prompt, yes, no))
			if err != nil {
				return false, err
			}
			return strings.EqualFold(strings.TrimSpace(answer), yes), nil
		},
		WaitTimer: func(name string) {
			p.Logger.Warnf("waiting on age-plugin-%s...", name)
		},
	}
}

// Passphrase returns a callback asking for the passphrase of the key at path.
func (p Prompter) Passphrase(path string) func() ([]byte, error) {
	return func() ([]byte, error) {
		return p.secret(fmt.Sprintf("Enter passphrase for %q: ", path))
	}
}
