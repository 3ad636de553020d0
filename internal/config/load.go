package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is read from the working directory when no
// explicit path is given and the file exists.
const DefaultConfigFilename = "nfsensor.yaml"

// Load builds the full runtime configuration: defaults, then the YAML file
// (if any), then credentials from the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the optional YAML file on top of the defaults.
// An empty path falls back to DefaultConfigFilename when it exists;
// an explicit path that cannot be read is an error.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFilename); err != nil {
			return Default(), nil
		}
		path = DefaultConfigFilename
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Field: "config file " + path, Reason: fmt.Sprintf("cannot be read: %v", err)}
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, &ConfigurationError{Field: "config file " + path, Reason: err.Error()}
	}
	return cfg, nil
}

// LoadFromBytes parses YAML onto the defaults. Unknown keys are rejected.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv copies credentials from the environment into the configuration.
func (c *Config) ApplyEnv() {
	c.Host = os.Getenv(EnvHost)
	c.Username = os.Getenv(EnvUsername)
	c.Password = os.Getenv(EnvPassword)
	c.Report.S3.AccessKey = os.Getenv(EnvS3AccessKey)
	c.Report.S3.SecretKey = os.Getenv(EnvS3SecretKey)
}
