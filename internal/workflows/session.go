package workflows

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/git-agecrypt/internal/agenix"
	"github.com/PolarWolf314/git-agecrypt/internal/configs"
	"github.com/PolarWolf314/git-agecrypt/internal/git"
	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
	"github.com/PolarWolf314/git-agecrypt/internal/secrets"
	"github.com/PolarWolf314/git-agecrypt/internal/sidecar"
)

// Session ties the stores of one repository together for a command.
type Session struct {
	Repo     git.Repository
	Settings configs.Settings
	Logger   logger.Logger
	// Cwd is the directory relative paths given by the user start from.
	Cwd string
}

// OpenSession discovers the repository containing the working directory.
func OpenSession(settings configs.Settings, log logger.Logger) (*Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine current directory: %w", err)
	}
	repo, err := git.Discover(cwd, log)
	if err != nil {
		return nil, err
	}
	return &Session{Repo: repo, Settings: settings, Logger: log, Cwd: cwd}, nil
}

// Identities returns the identity store in the repository's local config.
func (s *Session) Identities() configs.IdentityStore {
	return configs.IdentityStore{Store: s.Repo}
}

// Recipients loads the recipient mapping file.
func (s *Session) Recipients() (*configs.RecipientConfig, error) {
	return configs.LoadRecipientConfig(s.Repo.Workdir(), s.Settings.ConfigFile)
}

// Cache returns the sidecar store in the git directory.
func (s *Session) Cache() *sidecar.Store {
	return sidecar.New(s.Repo.GitDir())
}

// RelPath makes a user supplied path relative to the repository root.
func (s *Session) RelPath(p string) (string, error) {
	return configs.NormalizePath(s.Repo.Workdir(), s.Cwd, p)
}

// Filter builds the filter for this repository. A non-empty rule file, or
// GIT_AGECRYPT_SECRETS_NIX, switches recipient lookup to agenix rules.
func (s *Session) Filter(secretsNix string) *Filter {
	if secretsNix == "" {
		secretsNix = s.Settings.SecretsNix
	}

	var recipients RecipientSource = &recipientFile{session: s}
	if secretsNix != "" {
		s.Logger.Debugf("Resolving recipients with rules from %s", secretsNix)
		recipients = agenix.Evaluator{RulesPath: secretsNix, Root: s.Repo.Workdir(), Logger: s.Logger}
	}

	return &Filter{
		Cache:      s.Cache(),
		Recipients: recipients,
		Identities: s.Identities(),
		Cipher:     secrets.Age{Prompter: secrets.Prompter{Logger: s.Logger}},
		Logger:     s.Logger,
	}
}

// recipientFile loads the mapping file on first use, so smudge and
// textconv never read it.
type recipientFile struct {
	session *Session
	config  *configs.RecipientConfig
}

func (r *recipientFile) RecipientsFor(path string) ([]string, error) {
	if r.config == nil {
		config, err := r.session.Recipients()
		if err != nil {
			return nil, err
		}
		r.config = config
	}
	return r.config.RecipientsFor(path)
}
