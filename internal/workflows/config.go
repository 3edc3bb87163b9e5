package workflows

import (
	"context"

	"github.com/PolarWolf314/git-agecrypt/internal/configs"
)

// RecipientMapping is the persisted path to recipients mapping.
type RecipientMapping interface {
	Add(recipients []string, paths []string) (bool, error)
	Remove(recipients []string, paths []string) (bool, error)
	List() []configs.Entry
	Save() error
}

// ConfigResult is the outcome of a config mutation. Changed is false when
// the entry was already present, or already absent; that is not an error.
type ConfigResult struct {
	Changed bool
}

// AddIdentity validates and stores an identity path.
func AddIdentity(ctx context.Context, store configs.IdentityStore, identity string) (*ConfigResult, error) {
	changed, err := store.Add(identity)
	if err != nil {
		return nil, err
	}
	return &ConfigResult{Changed: changed}, nil
}

// RemoveIdentity forgets an identity path.
func RemoveIdentity(ctx context.Context, store configs.IdentityStore, identity string) (*ConfigResult, error) {
	changed, err := store.Remove(identity)
	if err != nil {
		return nil, err
	}
	return &ConfigResult{Changed: changed}, nil
}

// ListIdentities returns the configured identities with their validity.
func ListIdentities(ctx context.Context, store configs.IdentityStore) ([]configs.IdentityStatus, error) {
	return store.List()
}

// RecipientOptions configures recipient mutations.
type RecipientOptions struct {
	Mapping    RecipientMapping
	Recipients []string
	// Paths are repository relative. For removal they may be patterns.
	Paths []string
}

// AddRecipients grants recipients access to paths and saves the mapping.
// Nothing is saved when validation fails or nothing changed.
func AddRecipients(ctx context.Context, opts RecipientOptions) (*ConfigResult, error) {
	changed, err := opts.Mapping.Add(opts.Recipients, opts.Paths)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := opts.Mapping.Save(); err != nil {
			return nil, err
		}
	}
	return &ConfigResult{Changed: changed}, nil
}

// RemoveRecipients revokes recipients and saves the mapping. See
// configs.RecipientConfig.Remove for how empty recipients or paths are read.
func RemoveRecipients(ctx context.Context, opts RecipientOptions) (*ConfigResult, error) {
	changed, err := opts.Mapping.Remove(opts.Recipients, opts.Paths)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := opts.Mapping.Save(); err != nil {
			return nil, err
		}
	}
	return &ConfigResult{Changed: changed}, nil
}

// ListRecipients returns the flattened mapping sorted by path and recipient.
func ListRecipients(ctx context.Context, mapping RecipientMapping) []configs.Entry {
	return mapping.List()
}
