// Package config implements the optional .elm-i18n.yaml project file.
//
// When the file exists in the working directory it pins the translation
// file path and the language list used by init. Without it the tool falls
// back to defaults (src/I18n.elm, en+fr). The effective language set of
// an existing document is always discovered from the document itself, not
// from configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file name.
const FileName = ".elm-i18n.yaml"

// DefaultFile is the translation file path used when nothing is configured.
const DefaultFile = "src/I18n.elm"

// Config holds the .elm-i18n.yaml contents.
type Config struct {
	// File is the I18n.elm path relative to the project root.
	File string `yaml:"file,omitempty"`
	// Languages is the language list used by init.
	Languages []string `yaml:"languages,omitempty"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{File: DefaultFile, Languages: []string{"en", "fr"}}
}

// Load reads .elm-i18n.yaml from rootDir. A missing file yields the
// defaults, not an error.
func Load(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.File == "" {
		cfg.File = DefaultFile
	}
	for i, lang := range cfg.Languages {
		cfg.Languages[i] = strings.ToLower(strings.TrimSpace(lang))
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"en", "fr"}
	}
	return cfg, nil
}

// Save writes the configuration to rootDir/.elm-i18n.yaml.
func (c *Config) Save(rootDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(rootDir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
