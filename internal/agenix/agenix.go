package agenix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
)

// rule is one entry of the evaluated rule file.
type rule struct {
	PublicKeys []string `json:"publicKeys"`
}

// Evaluator looks up recipients in a secrets.nix rule file.
type Evaluator struct {
	// RulesPath is the rule file.
	RulesPath string
	// Root is the repository root that lookups are relative to.
	Root   string
	Logger logger.Logger

	// Eval returns the JSON value of the rule file. Defaults to NixEval.
	Eval func(rulesPath string) ([]byte, error)
}

// NixEval evaluates a nix file to JSON without network access.
func NixEval(rulesPath string) ([]byte, error) {
	cmd := exec.Command("nix", "eval",
		"--experimental-features", "nix-command flakes",
		"--no-net", "--impure", "--json",
		"--expr", "import "+rulesPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("%w: please install the Nix package manager", kerrors.ErrNixNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s to JSON: %w\nOutput of nix eval: %s", rulesPath, err, stderr.String())
	}
	return output, nil
}

// RecipientsFor returns the public keys of the rule matching the repository
// relative path, or ErrNoRule.
func (e Evaluator) RecipientsFor(path string) ([]string, error) {
	eval := e.Eval
	if eval == nil {
		eval = NixEval
	}

	rulesPath, err := filepath.Abs(e.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", e.RulesPath, err)
	}
	output, err := eval(rulesPath)
	if err != nil {
		return nil, err
	}

	var rules map[string]json.RawMessage
	if err := json.Unmarshal(output, &rules); err != nil {
		return nil, fmt.Errorf("%w: %s must evaluate to an attribute set: %w", kerrors.ErrInvalidConfig, rulesPath, err)
	}

	dir := canonical(filepath.Dir(rulesPath))
	target := canonical(filepath.Join(e.Root, filepath.FromSlash(path)))

	for name, raw := range rules {
		candidate := filepath.Join(dir, filepath.FromSlash(name))
		if candidate != target {
			e.Logger.Debugf("encryption rule doesn't match; candidate=%s, target=%s", candidate, target)
			continue
		}

		var r rule
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("%w: rule %q in %s: publicKeys should be a list of strings: %w", kerrors.ErrInvalidConfig, name, rulesPath, err)
		}
		if r.PublicKeys == nil {
			return nil, fmt.Errorf("%w: rule %q in %s: publicKeys attribute missing", kerrors.ErrInvalidConfig, name, rulesPath)
		}
		e.Logger.Debugf("collected public keys; target=%s, public_keys=%q", target, r.PublicKeys)
		return r.PublicKeys, nil
	}

	return nil, fmt.Errorf("%w in %s for %s", kerrors.ErrNoRule, rulesPath, path)
}

func canonical(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}
