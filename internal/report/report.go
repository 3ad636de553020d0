package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/provisioning"
)

// Format is a report serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .yaml or .yml is written as JSON.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ContentType returns the MIME type used for uploads.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Marshal encodes the report in the given format.
func Marshal(r *provisioning.Report, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteFile writes the report to filename, in the format its extension implies.
func WriteFile(filename string, r *provisioning.Report) error {
	data, err := Marshal(r, FormatFor(filename))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", filename, err)
	}
	return nil
}

// ObjectStore stores report objects. *s3.Client satisfies it.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// Key returns the object key for a report: <prefix>/<stage>-<started>.json.
func Key(prefix string, r *provisioning.Report) string {
	name := fmt.Sprintf("%s-%s.json", r.Stage, r.StartedAt.UTC().Format("20060102T150405Z"))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Upload stores the report as JSON in the configured bucket and returns its key.
// The bucket must already exist.
func Upload(ctx context.Context, store ObjectStore, cfg config.S3Config, r *provisioning.Report) (string, error) {
	exists, err := store.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("failed to upload report: bucket %s does not exist", cfg.Bucket)
	}

	data, err := Marshal(r, FormatJSON)
	if err != nil {
		return "", err
	}

	key := Key(cfg.Prefix, r)
	if err := store.PutObject(ctx, cfg.Bucket, key, data, FormatJSON.ContentType()); err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	return key, nil
}
