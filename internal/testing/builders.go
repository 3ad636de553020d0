package testing

import (
	"time"

	"github.com/imamik/nfsensor/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with valid credentials and
// fast task polling.
func NewConfigBuilder() *ConfigBuilder {
	cfg := *config.Default()
	cfg.Host = "10.0.0.10"
	cfg.Username = "admin"
	cfg.Password = "secret"
	cfg.Timeouts = &config.Timeouts{
		Request:         5 * time.Second,
		Task:            5 * time.Second,
		TaskPoll:        time.Millisecond,
		TaskPollMax:     5 * time.Millisecond,
		TaskPollMaxRuns: 10,
	}
	return &ConfigBuilder{cfg: cfg}
}

// WithHost sets the Prism Central address.
func (b *ConfigBuilder) WithHost(host string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Host = host
	return newBuilder
}

// WithCategory sets the provider category key and value.
func (b *ConfigBuilder) WithCategory(name, value string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Category.Name = name
	newBuilder.cfg.Category.Value = value
	return newBuilder
}

// WithChainName sets the name given to created chains.
func (b *ConfigBuilder) WithChainName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Chain.Name = name
	return newBuilder
}

// WithS3 enables report upload.
func (b *ConfigBuilder) WithS3(bucket, endpoint string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Report.S3.Bucket = bucket
	newBuilder.cfg.Report.S3.Endpoint = endpoint
	newBuilder.cfg.Report.S3.AccessKey = "test-access"
	newBuilder.cfg.Report.S3.SecretKey = "test-secret"
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg // copy
	if b.cfg.Timeouts != nil {
		timeouts := *b.cfg.Timeouts
		cfg.Timeouts = &timeouts
	}
	return &cfg
}

// clone creates a copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: *b.Build()}
}
