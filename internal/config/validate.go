package config

import (
	"strings"
)

// Validate checks the configuration and returns a *ConfigurationError for
// the first problem found. Credentials are checked first so that a shell
// without PC_* variables fails with the most useful message.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{EnvHost, c.Host},
		{EnvUsername, c.Username},
		{EnvPassword, c.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigurationError{Field: r.name, Reason: "is not set"}
		}
	}

	if c.Port < 1 || c.Port > 65535 {
		return &ConfigurationError{Field: "port", Reason: "must be between 1 and 65535"}
	}

	if err := validatePathSegment("category.name", c.Category.Name); err != nil {
		return err
	}
	if err := validatePathSegment("category.value", c.Category.Value); err != nil {
		return err
	}
	if c.Chain.Name == "" {
		return &ConfigurationError{Field: "chain.name", Reason: "is required"}
	}
	if c.Chain.FunctionType == "" {
		return &ConfigurationError{Field: "chain.function_type", Reason: "is required"}
	}

	if c.Report.S3.Enabled() {
		if c.Report.S3.AccessKey == "" || c.Report.S3.SecretKey == "" {
			return &ConfigurationError{
				Field:  "report.s3",
				Reason: "requires " + EnvS3AccessKey + " and " + EnvS3SecretKey,
			}
		}
	}

	if c.Timeouts == nil {
		c.Timeouts = LoadTimeouts()
	}
	return nil
}

// validatePathSegment rejects values that cannot be placed in a
// categories/{name}/{value} URL path.
func validatePathSegment(field, value string) error {
	if value == "" {
		return &ConfigurationError{Field: field, Reason: "is required"}
	}
	if strings.ContainsAny(value, "/?#") {
		return &ConfigurationError{Field: field, Reason: "must not contain '/', '?' or '#'"}
	}
	return nil
}
