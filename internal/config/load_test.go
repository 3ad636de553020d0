package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv(EnvHost, "prism.example.com")
	t.Setenv(EnvUsername, "admin")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvS3AccessKey, "")
	t.Setenv(EnvS3SecretKey, "")
}

func TestLoadFromBytes_Defaults(t *testing.T) {
	cfg, err := LoadFromBytes(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCategoryName, cfg.Category.Name)
	assert.Equal(t, DefaultCategoryValue, cfg.Category.Value)
	assert.Equal(t, DefaultChainName, cfg.Chain.Name)
	assert.Equal(t, DefaultFunctionType, cfg.Chain.FunctionType)
	assert.False(t, cfg.VerifyTLS)
	assert.NotNil(t, cfg.Timeouts)
}

func TestLoadFromBytes_Overrides(t *testing.T) {
	data := []byte(`
port: 443
verify_tls: true
category:
  value: other_vendor
chain:
  name: other_tap
report:
  s3:
    bucket: reports
    endpoint: https://s3.example.com
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, 443, cfg.Port)
	assert.True(t, cfg.VerifyTLS)
	assert.Equal(t, DefaultCategoryName, cfg.Category.Name, "unset keys keep defaults")
	assert.Equal(t, "other_vendor", cfg.Category.Value)
	assert.Equal(t, "other_tap", cfg.Chain.Name)
	assert.Equal(t, DefaultFunctionType, cfg.Chain.FunctionType)
	assert.Equal(t, "reports", cfg.Report.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.Report.S3.Region)
}

func TestLoadFromBytes_UnknownKey(t *testing.T) {
	_, err := LoadFromBytes([]byte("cluster: prod\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_FromEnvOnly(t *testing.T) {
	setCredentials(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prism.example.com", cfg.Host)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "https://prism.example.com:9440/api/nutanix/v3/", cfg.BaseURL())
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	setCredentials(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFilename), []byte("port: 8443\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8443, cfg.Port)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	setCredentials(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestLoad_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantKey string
	}{
		{"host", EnvHost, EnvHost},
		{"username", EnvUsername, EnvUsername},
		{"password", EnvPassword, EnvPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv(tt.unset, "")
			t.Chdir(t.TempDir())

			_, err := Load("")
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Field)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestLoad_S3KeysFromEnv(t *testing.T) {
	setCredentials(t)
	t.Setenv(EnvS3AccessKey, "ak")
	t.Setenv(EnvS3SecretKey, "sk")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  s3:\n    bucket: audit\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ak", cfg.Report.S3.AccessKey)
	assert.Equal(t, "sk", cfg.Report.S3.SecretKey)
	assert.True(t, cfg.Report.S3.Enabled())
}
