package git

//go:generate mockgen -source=interfaces.go -destination=../mock/repository_mock.go -package=mock

// Repository is the part of a git repository git-agecrypt works with: its
// location on disk and its local (per-clone) configuration.
type Repository interface {
	// Workdir is the absolute path of the working tree root.
	Workdir() string
	// GitDir is the absolute path of the git directory.
	GitDir() string

	// ConfigGetAll returns every value of key. A missing key yields no values.
	ConfigGetAll(key string) ([]string, error)
	// ConfigAdd appends a value to a multi-valued key.
	ConfigAdd(key, value string) error
	// ConfigUnset removes the values of key equal to value.
	ConfigUnset(key, value string) error
	// ConfigSet replaces the value of key.
	ConfigSet(key, value string) error
	// RemoveSection deletes a config section. Returns ErrSectionNotFound if
	// the section holds no keys.
	RemoveSection(section string) error
}
