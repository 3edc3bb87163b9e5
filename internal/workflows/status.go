package workflows

import (
	"context"

	"github.com/PolarWolf314/git-agecrypt/internal/configs"
	"github.com/PolarWolf314/git-agecrypt/internal/git"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	Repo       git.Repository
	Identities configs.IdentityStore
	Recipients RecipientMapping
}

// StatusResult contains the state of a repository's configuration.
type StatusResult struct {
	// Identities are the configured identities, each validated again.
	Identities []configs.IdentityStatus
	// FilterInstalled is true once init has run.
	FilterInstalled bool
	// Recipients is the flattened path to recipient mapping.
	Recipients []configs.Entry
}

// Status collects identities, filter registration and the recipient mapping.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	identities, err := opts.Identities.List()
	if err != nil {
		return nil, err
	}

	installed, err := FilterInstalled(opts.Repo)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		Identities:      identities,
		FilterInstalled: installed,
		Recipients:      opts.Recipients.List(),
	}, nil
}
