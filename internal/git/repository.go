package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
)

// ErrSectionNotFound is returned by RemoveSection for an absent section.
var ErrSectionNotFound = errors.New("no such section")

// Client runs the git binary against one non-bare repository.
type Client struct {
	workdir string
	gitDir  string
	Logger  logger.Logger
}

var _ Repository = (*Client)(nil)

// Discover finds the repository containing dir. Bare repositories are
// rejected since there is no working tree to filter.
func Discover(dir string, log logger.Logger) (*Client, error) {
	c := &Client{workdir: dir, Logger: log}

	bare, err := c.run("rev-parse", "--is-bare-repository")
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", kerrors.ErrNotARepository, dir, err)
	}
	if bare == "true" {
		return nil, fmt.Errorf("%w: '%s'", kerrors.ErrBareRepository, dir)
	}

	out, err := c.run("rev-parse", "--show-toplevel", "--absolute-git-dir")
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", kerrors.ErrNotARepository, dir, err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		return nil, fmt.Errorf("unexpected git rev-parse output %q", out)
	}

	c.workdir, c.gitDir = lines[0], lines[1]
	log.Debugf("discovered repository %s (git dir %s)", c.workdir, c.gitDir)
	return c, nil
}

func (c *Client) Workdir() string { return c.workdir }

func (c *Client) GitDir() string { return c.gitDir }

// exitError is a failed git invocation.
type exitError struct {
	args   []string
	code   int
	stderr string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("git %s failed with exit code %d: %s", strings.Join(e.args, " "), e.code, e.stderr)
}

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return -1
}

// run executes git in the working directory and returns its trimmed stdout.
func (c *Client) run(args ...string) (string, error) {
	c.Logger.Debugf("executing git %s in %s", strings.Join(args, " "), c.workdir)

	cmd := exec.Command("git", args...)
	cmd.Dir = c.workdir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return "", &exitError{args: args, code: ee.ExitCode(), stderr: strings.TrimSpace(stderr.String())}
		}
		return "", fmt.Errorf("failed to run git: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (c *Client) ConfigGetAll(key string) ([]string, error) {
	out, err := c.run("config", "--local", "--get-all", key)
	if exitCode(err) == 1 {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func (c *Client) ConfigAdd(key, value string) error {
	_, err := c.run("config", "--local", "--add", key, value)
	return err
}

func (c *Client) ConfigUnset(key, value string) error {
	_, err := c.run("config", "--local", "--unset-all", key, "^"+regexp.QuoteMeta(value)+"$")
	if exitCode(err) == 5 {
		return nil
	}
	return err
}

func (c *Client) ConfigSet(key, value string) error {
	_, err := c.run("config", "--local", key, value)
	return err
}

func (c *Client) RemoveSection(section string) error {
	_, err := c.run("config", "--local", "--get-regexp", "^"+regexp.QuoteMeta(section)+`\.`)
	if exitCode(err) == 1 {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, section)
	}
	if err != nil {
		return err
	}

	_, err = c.run("config", "--local", "--remove-section", section)
	return err
}
