package secrets

import (
	"errors"
	"fmt"

	"filippo.io/age"
	"filippo.io/age/agessh"
	"filippo.io/age/plugin"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
)

// RecipientKind tags the format a recipient string was parsed as.
type RecipientKind int

const (
	// RecipientX25519 is a native age1... public key.
	RecipientX25519 RecipientKind = iota
	// RecipientSSH is an ssh-ed25519 or ssh-rsa authorized key line.
	RecipientSSH
	// RecipientPlugin is an age1<name>1... key handled by an age-plugin-<name> binary.
	RecipientPlugin
)

func (k RecipientKind) String() string {
	switch k {
	case RecipientX25519:
		return "x25519"
	case RecipientSSH:
		return "ssh"
	case RecipientPlugin:
		return "plugin"
	default:
		return fmt.Sprintf("RecipientKind(%d)", int(k))
	}
}

// Recipient is a classified recipient string.
type Recipient struct {
	Kind RecipientKind
	// Raw is the string as configured.
	Raw string
	// Plugin is the plugin name for RecipientPlugin, empty otherwise.
	Plugin string

	native age.Recipient
}

// recipientParser tries one recipient format.
type recipientParser struct {
	kind  RecipientKind
	parse func(s string) (Recipient, error)
}

// recipientParsers lists the supported formats in priority order.
var recipientParsers = []recipientParser{
	{RecipientX25519, func(s string) (Recipient, error) {
		r, err := age.ParseX25519Recipient(s)
		if err != nil {
			return Recipient{}, err
		}
		return Recipient{Kind: RecipientX25519, Raw: s, native: r}, nil
	}},
	{RecipientSSH, func(s string) (Recipient, error) {
		r, err := agessh.ParseRecipient(s)
		if err != nil {
			return Recipient{}, err
		}
		return Recipient{Kind: RecipientSSH, Raw: s, native: r}, nil
	}},
	{RecipientPlugin, func(s string) (Recipient, error) {
		r, err := plugin.NewRecipient(s, nil)
		if err != nil {
			return Recipient{}, err
		}
		return Recipient{Kind: RecipientPlugin, Raw: s, Plugin: r.Name()}, nil
	}},
}

// ParseRecipient classifies s as a native, ssh or plugin recipient, in that
// order, returning the first format that accepts it.
func ParseRecipient(s string) (Recipient, error) {
	var errs []error
	for _, p := range recipientParsers {
		r, err := p.parse(s)
		if err == nil {
			return r, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.kind, err))
	}
	return Recipient{}, fmt.Errorf("%w %q: %w", kerrors.ErrInvalidRecipient, s, errors.Join(errs...))
}

// ParseRecipients classifies every string, failing on the first invalid one.
func ParseRecipients(recipients []string) ([]Recipient, error) {
	parsed := make([]Recipient, 0, len(recipients))
	for _, s := range recipients {
		r, err := ParseRecipient(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, r)
	}
	return parsed, nil
}

// ValidateRecipients reports whether every string is a usable recipient.
// It never starts plugin processes.
func ValidateRecipients(recipients []string) error {
	_, err := ParseRecipients(recipients)
	return err
}

// ResolveRecipients turns recipient strings into encryption targets.
// Plugin recipients are grouped by plugin name so each plugin runs in a
// single session receiving all of its recipients.
func ResolveRecipients(recipients []string, prompter Prompter) ([]age.Recipient, error) {
	parsed, err := ParseRecipients(recipients)
	if err != nil {
		return nil, err
	}

	var targets []age.Recipient
	sessions := map[string]*pluginRecipient{}
	for _, r := range parsed {
		if r.Kind != RecipientPlugin {
			targets = append(targets, r.native)
			continue
		}
		session, ok := sessions[r.Plugin]
		if !ok {
			session = &pluginRecipient{name: r.Plugin, prompter: prompter}
			sessions[r.Plugin] = session
			targets = append(targets, session)
		}
		session.recipients = append(session.recipients, r.Raw)
	}

	return targets, nil
}
