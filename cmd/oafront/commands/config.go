package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "oafront.toml"

// FileConfig holds generate defaults loaded from a TOML file. Command-line
// flags take precedence over every field.
//
//	name = "petstore"
//	language = "js"
//	url = "https://petstore.example.com/openapi.yaml"
//	output = "src/api"
//	strict = true
type FileConfig struct {
	Name     string `toml:"name"`
	Language string `toml:"language"`
	URL      string `toml:"url"`
	Output   string `toml:"output"`
	Strict   bool   `toml:"strict"`
}

// LoadFileConfig reads the config at path. An empty path falls back to
// DefaultConfigFile, which may be absent; an explicit path must exist.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFileConfig(path string) (FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is supplied by the CLI user
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return FileConfig{}, nil
	}
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg FileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return FileConfig{}, fmt.Errorf("parse config %q: %s", path, missing.String())
		}
		return FileConfig{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// firstNonEmpty returns the first argument that is not "".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
