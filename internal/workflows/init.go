package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alessio/shellescape"

	"github.com/PolarWolf314/git-agecrypt/internal/git"
	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
	"github.com/PolarWolf314/git-agecrypt/internal/sidecar"
)

// FilterName names the git filter and diff driver. .gitattributes entries
// refer to it as filter=git-agecrypt diff=git-agecrypt.
const FilterName = "git-agecrypt"

const (
	filterSection = "filter." + FilterName
	diffSection   = "diff." + FilterName

	keyRequired = filterSection + ".required"
	keySmudge   = filterSection + ".smudge"
	keyClean    = filterSection + ".clean"
	keyTextconv = diffSection + ".textconv"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Executable is the git-agecrypt binary git should run. Defaults to the
	// running executable.
	Executable string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Settings are the config entries written, in order.
	Settings [][2]string
}

// Init registers the clean and smudge filters and the textconv diff driver
// in the repository's local config.
func Init(ctx context.Context, repo git.Repository, opts InitOptions) (*InitResult, error) {
	exe := opts.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, fmt.Errorf("failed to determine executable path: %w", err)
		}
	}

	// git runs filter commands through the shell.
	exe = shellescape.Quote(exe)

	settings := [][2]string{
		{keyRequired, "true"},
		{keySmudge, exe + " smudge -f %f"},
		{keyClean, exe + " clean -f %f"},
		{keyTextconv, exe + " textconv"},
	}
	for _, kv := range settings {
		if err := repo.ConfigSet(kv[0], kv[1]); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
	}

	return &InitResult{Settings: settings}, nil
}

// DeinitOptions configures the deinit workflow.
type DeinitOptions struct {
	// Cache is cleared after the filter is removed.
	Cache  sidecar.Cache
	Logger logger.Logger
}

// DeinitResult contains the outcome of a deinit operation.
type DeinitResult struct {
	// Missing lists config sections that were already absent.
	Missing []string
}

// Deinit removes the filter configuration and every sidecar entry. Config
// sections that are already gone are logged and skipped.
func Deinit(ctx context.Context, repo git.Repository, opts DeinitOptions) (*DeinitResult, error) {
	result := &DeinitResult{}
	for _, section := range []string{filterSection, diffSection} {
		err := repo.RemoveSection(section)
		if errors.Is(err, git.ErrSectionNotFound) {
			opts.Logger.Warnf("Config section %s was not present; this may not be an issue", section)
			result.Missing = append(result.Missing, section)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", section, err)
		}
	}

	if opts.Cache != nil {
		if err := opts.Cache.Clear(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// FilterInstalled reports whether both filter commands are configured.
func FilterInstalled(repo git.Repository) (bool, error) {
	for _, key := range []string{keyClean, keySmudge} {
		values, err := repo.ConfigGetAll(key)
		if err != nil {
			return false, err
		}
		if len(values) == 0 {
			return false, nil
		}
	}
	return true, nil
}
