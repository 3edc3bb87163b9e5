package configs

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
	"github.com/PolarWolf314/git-agecrypt/internal/secrets"
	"github.com/PolarWolf314/git-agecrypt/internal/utils"
)

// RecipientConfig is the repository-committed mapping from repository
// relative file paths to the recipients their content is encrypted for.
//
// Mutations only change the in-memory value; call Save to persist.
type RecipientConfig struct {
	Config map[string][]string `toml:"config"`

	path string
	root string
}

// Entry is one (path, recipient) pair of the flattened mapping.
type Entry struct {
	Path      string
	Recipient string
}

// LoadRecipientConfig reads the mapping file, relative to root unless
// absolute. A file that does not exist yet loads as an empty mapping.
func LoadRecipientConfig(root, file string) (*RecipientConfig, error) {
	if file == "" {
		file = DefaultRecipientFile
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(root, file)
	}

	c := &RecipientConfig{path: file, root: root}
	if _, err := LoadTOMLIfExists(file, c); err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %w", kerrors.ErrInvalidConfig, file, err)
	}
	if c.Config == nil {
		c.Config = make(map[string][]string)
	}
	return c, nil
}

// Path returns the file the mapping is loaded from and saved to.
func (c *RecipientConfig) Path() string {
	return c.path
}

// Save atomically writes the whole mapping back to its file.
func (c *RecipientConfig) Save() error {
	if err := SaveTOML(c.path, c); err != nil {
		return fmt.Errorf("failed to save recipient config: %w", err)
	}
	return nil
}

// Add grants recipients access to every path. All recipients must parse and
// all paths must be existing files, otherwise nothing changes.
func (c *RecipientConfig) Add(recipients []string, paths []string) (bool, error) {
	if err := secrets.ValidateRecipients(recipients); err != nil {
		return false, err
	}
	for _, p := range paths {
		if !utils.IsRegularFile(filepath.Join(c.root, filepath.FromSlash(p))) {
			return false, fmt.Errorf("%w: '%s'", kerrors.ErrFileNotFound, p)
		}
	}

	changed := false
	for _, p := range paths {
		before := len(c.Config[p])
		c.Config[p] = utils.AppendUnique(c.Config[p], recipients...)
		if len(c.Config[p]) != before {
			changed = true
		}
	}
	return changed, nil
}

// Remove revokes recipients.
//
// With no path filters the recipients are removed from every path. With
// path filters but no recipients every recipient of the matching paths is
// removed. Otherwise only the named recipients of the matching paths go.
// Path filters are doublestar patterns matched against configured paths.
// Paths left without recipients are dropped from the mapping.
func (c *RecipientConfig) Remove(recipients []string, paths []string) (bool, error) {
	var selected []string
	if len(paths) == 0 {
		selected = c.Paths()
	} else {
		var err error
		if selected, err = c.match(paths); err != nil {
			return false, err
		}
	}

	changed := false
	for _, p := range selected {
		current := c.Config[p]
		remaining := []string{}
		if len(paths) == 0 || len(recipients) > 0 {
			remaining = utils.Without(current, recipients)
		}
		if len(remaining) != len(current) {
			changed = true
		}
		if len(remaining) == 0 {
			delete(c.Config, p)
			continue
		}
		c.Config[p] = remaining
	}
	return changed, nil
}

func (c *RecipientConfig) match(patterns []string) ([]string, error) {
	var selected []string
	for _, key := range c.Paths() {
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, key)
			if err != nil {
				return nil, fmt.Errorf("invalid path pattern %q: %w", pattern, err)
			}
			if ok {
				selected = append(selected, key)
				break
			}
		}
	}
	return selected, nil
}

// Paths returns the configured paths in sorted order.
func (c *RecipientConfig) Paths() []string {
	paths := make([]string, 0, len(c.Config))
	for p := range c.Config {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// List returns the flattened mapping sorted by path, then recipient.
func (c *RecipientConfig) List() []Entry {
	var entries []Entry
	for _, p := range c.Paths() {
		recipients := slices.Clone(c.Config[p])
		sort.Strings(recipients)
		for _, r := range recipients {
			entries = append(entries, Entry{Path: p, Recipient: r})
		}
	}
	return entries
}

// RecipientsFor returns the recipients configured for a repository
// relative path.
func (c *RecipientConfig) RecipientsFor(path string) ([]string, error) {
	recipients := c.Config[filepath.ToSlash(path)]
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w for '%s'", kerrors.ErrNoRecipients, path)
	}
	return slices.Clone(recipients), nil
}
