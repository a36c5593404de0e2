package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadSystemConfig reads settings.toml, writing the commented template on
// first run.
func LoadSystemConfig() (*SystemConfig, error) {
	cfg := DefaultSystemConfig()
	if err := loadOrCreate(GetSettingsFilePath(), GenerateSystemConfigTemplate, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUserConfig reads <dataDir>/config.toml, writing the commented template
// on first run.
func LoadUserConfig(dataDir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	if err := loadOrCreate(GetUserConfigPath(dataDir), GenerateUserConfigTemplate, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadOrCreate decodes path over the defaults already in into. A missing
// file is created from template and leaves the defaults untouched.
func loadOrCreate(path string, template func() string, into any) error {
	_, err := toml.DecodeFile(path, into)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(template()), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
