package configs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/PolarWolf314/git-agecrypt/internal/utils"
)

// SaveTOML atomically replaces filePath with the TOML encoding of data.
func SaveTOML(filePath string, data interface{}) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filePath, err)
	}
	return utils.WriteFileAtomic(filePath, buf.Bytes(), 0644)
}

// LoadTOML loads a TOML file into a struct.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}

// LoadTOMLIfExists is LoadTOML that reports a missing file as found == false
// instead of an error.
func LoadTOMLIfExists(filePath string, data interface{}) (bool, error) {
	err := LoadTOML(filePath, data)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
