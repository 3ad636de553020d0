package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Host = "10.0.0.10"
	cfg.Username = "admin"
	cfg.Password = "secret"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"whitespace host", func(c *Config) { c.Host = "  " }, EnvHost},
		{"port zero", func(c *Config) { c.Port = 0 }, "port"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "port"},
		{"empty category name", func(c *Config) { c.Category.Name = "" }, "category.name"},
		{"slash in category value", func(c *Config) { c.Category.Value = "a/b" }, "category.value"},
		{"empty chain name", func(c *Config) { c.Chain.Name = "" }, "chain.name"},
		{"empty function type", func(c *Config) { c.Chain.FunctionType = "" }, "chain.function_type"},
		{"s3 without keys", func(c *Config) { c.Report.S3.Bucket = "audit" }, "report.s3"},
		{"s3 with keys", func(c *Config) {
			c.Report.S3.Bucket = "audit"
			c.Report.S3.AccessKey = "ak"
			c.Report.S3.SecretKey = "sk"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.Equal(t, "10.0.0.10:9440", cfg.Endpoint())

	cfg.Host = "prism.local:443"
	assert.Equal(t, "prism.local:443", cfg.Endpoint())
	assert.Equal(t, "https://prism.local:443/api/nutanix/v3/", cfg.BaseURL())

	cfg.Host = "fd00::10"
	assert.Equal(t, "[fd00::10]:9440", cfg.Endpoint())
}

func TestConfigurationError_Message(t *testing.T) {
	t.Parallel()

	err := &ConfigurationError{Field: EnvPassword, Reason: "is not set"}
	assert.Equal(t, "configuration error: PC_PASSWORD is not set", err.Error())
	assert.True(t, errors.Is(err, ErrConfiguration))
}
