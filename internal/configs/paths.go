package configs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
	"github.com/PolarWolf314/git-agecrypt/internal/utils"
)

// NormalizePath turns p, relative to cwd unless absolute, into a slash
// separated path relative to the repository root.
func NormalizePath(root, cwd, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	p = resolveSymlinks(filepath.Clean(p))
	root = resolveSymlinks(filepath.Clean(root))

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: '%s' is not inside '%s'", kerrors.ErrPathOutsideRepo, p, root)
	}
	return filepath.ToSlash(rel), nil
}

// resolveSymlinks resolves the longest existing prefix of p, so that paths
// under a symlinked temp or home directory compare equal to git's view.
func resolveSymlinks(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	dir, base := filepath.Split(p)
	dir = filepath.Clean(dir)
	if dir == p {
		return p
	}
	return filepath.Join(resolveSymlinks(dir), base)
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// ExpandPaths normalizes every path argument. Arguments containing glob
// meta characters are expanded against the working tree and must match at
// least one regular file.
func ExpandPaths(root, cwd string, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !isGlob(pattern) {
			p, err := NormalizePath(root, cwd, pattern)
			if err != nil {
				return nil, err
			}
			paths = utils.AppendUnique(paths, p)
			continue
		}

		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(cwd, pattern)
		}
		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: nothing matches '%s'", kerrors.ErrFileNotFound, pattern)
		}
		for _, m := range matches {
			p, err := NormalizePath(root, cwd, m)
			if err != nil {
				return nil, err
			}
			paths = utils.AppendUnique(paths, p)
		}
	}
	return paths, nil
}

// NormalizePatterns makes path filters relative to the repository root
// without touching the filesystem, keeping glob meta characters intact.
func NormalizePatterns(root, cwd string, patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if !isGlob(pattern) {
			p, err := NormalizePath(root, cwd, pattern)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid path pattern %q", pattern)
		}
		base, rest := cwd, pattern
		if filepath.IsAbs(pattern) {
			base, rest = splitGlobBase(pattern)
		}
		dir, err := NormalizePath(root, cwd, base)
		if err != nil {
			return nil, err
		}
		p := filepath.ToSlash(rest)
		if dir != "." {
			p = dir + "/" + p
		}
		out = append(out, p)
	}
	return out, nil
}

// splitGlobBase splits an absolute pattern into the directory before the
// first component holding meta characters and the remaining pattern.
func splitGlobBase(pattern string) (string, string) {
	parts := strings.Split(filepath.ToSlash(pattern), "/")
	for i, part := range parts {
		if isGlob(part) {
			return filepath.FromSlash(strings.Join(parts[:i], "/") + "/"), strings.Join(parts[i:], "/")
		}
	}
	return pattern, ""
}
