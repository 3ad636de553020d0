package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or invalid setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) true.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Config holds the application configuration.
type Config struct {
	// Credentials are never read from the YAML file.
	Host     string `yaml:"-"`
	Username string `yaml:"-"`
	Password string `yaml:"-"`

	Port int `yaml:"port"`
	// VerifyTLS enables certificate verification. Prism Central ships with a
	// self-signed certificate, so verification is off unless asked for.
	VerifyTLS bool `yaml:"verify_tls"`

	Category CategoryConfig `yaml:"category"`
	Chain    ChainConfig    `yaml:"chain"`
	Report   ReportConfig   `yaml:"report"`

	Timeouts *Timeouts `yaml:"-"`
}

// CategoryConfig names the provider category key and value.
type CategoryConfig struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

// ChainConfig describes the network function chain created per cluster.
type ChainConfig struct {
	Name         string `yaml:"name"`
	FunctionType string `yaml:"function_type"`
}

// ReportConfig controls where run reports are archived.
type ReportConfig struct {
	S3 S3Config `yaml:"s3"`
}

// S3Config points at an S3-compatible bucket for report uploads.
// Upload is disabled when Bucket is empty.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Prefix   string `yaml:"prefix"`

	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Enabled reports whether report upload is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Default returns a configuration with every default applied and no credentials.
func Default() *Config {
	return &Config{
		Port: DefaultPort,
		Category: CategoryConfig{
			Name:        DefaultCategoryName,
			Value:       DefaultCategoryValue,
			Description: "Network function provider for the network sensor",
		},
		Chain: ChainConfig{
			Name:         DefaultChainName,
			FunctionType: DefaultFunctionType,
		},
		Report: ReportConfig{
			S3: S3Config{Region: "us-east-1"},
		},
		Timeouts: LoadTimeouts(),
	}
}

// Endpoint returns host:port for the Prism Central API. A port already
// present in Host wins over Port.
func (c *Config) Endpoint() string {
	if _, _, err := net.SplitHostPort(c.Host); err == nil {
		return c.Host
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BaseURL returns the v3 API root, with a trailing slash.
func (c *Config) BaseURL() string {
	return "https://" + c.Endpoint() + "/api/nutanix/v3/"
}
