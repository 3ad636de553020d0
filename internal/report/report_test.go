package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/provisioning"
	testutil "github.com/imamik/nfsensor/internal/testing"
)

func sampleReport() *provisioning.Report {
	r := provisioning.NewReport("network", false, nil)
	r.StartedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	r.Add(provisioning.ItemResult{
		Kind:    provisioning.KindSubnet,
		Name:    "vlan-100",
		UUID:    testutil.UUID(1),
		Cluster: "alpha",
		Action:  provisioning.ActionUpdated,
		Detail:  "attached chain " + testutil.UUID(9),
	})
	r.Add(provisioning.Failed(provisioning.KindSubnet, "vlan-100-b", testutil.UUID(2), "beta", errors.New("409 conflict")))
	r.Finish(nil)
	return r
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     Format
	}{
		{"report.json", FormatJSON},
		{"report.yaml", FormatYAML},
		{"REPORT.YML", FormatYAML},
		{"report", FormatJSON},
		{"report.txt", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatFor(tt.filename))
		})
	}
}

func TestMarshal_JSON(t *testing.T) {
	t.Parallel()

	data, err := Marshal(sampleReport(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "network", decoded["stage"])
	assert.Equal(t, false, decoded["dry_run"])

	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	failed := items[1].(map[string]any)
	assert.Equal(t, "failed", failed["action"])
	assert.Equal(t, "409 conflict", failed["error"])
}

func TestMarshal_YAML(t *testing.T) {
	t.Parallel()

	data, err := Marshal(sampleReport(), FormatYAML)
	require.NoError(t, err)

	var decoded struct {
		Stage string `yaml:"stage"`
		Items []struct {
			Name   string `yaml:"name"`
			Action string `yaml:"action"`
		} `yaml:"items"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "network", decoded.Stage)
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, "updated", decoded.Items[0].Action)
}

func TestMarshal_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Marshal(sampleReport(), Format("toml"))
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"run.json", "run.yaml"} {
		filename := filepath.Join(dir, name)
		require.NoError(t, WriteFile(filename, sampleReport()))

		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Contains(t, string(data), "vlan-100-b")
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	t.Parallel()

	err := WriteFile(filepath.Join(t.TempDir(), "missing", "run.json"), sampleReport())
	assert.ErrorContains(t, err, "failed to write report")
}

func TestKey(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	assert.Equal(t, "network-20260314T092653Z.json", Key("", r))
	assert.Equal(t, "nfsensor/runs/network-20260314T092653Z.json", Key("/nfsensor/runs/", r))
}

func TestUpload(t *testing.T) {
	t.Parallel()

	store := new(testutil.MockObjectStore)
	cfg := config.S3Config{Bucket: "audit", Prefix: "nfsensor"}
	wantKey := "nfsensor/network-20260314T092653Z.json"

	store.On("BucketExists", mock.Anything, "audit").Return(true, nil)
	store.On("PutObject", mock.Anything, "audit", wantKey,
		mock.MatchedBy(func(data []byte) bool { return json.Valid(data) }),
		"application/json").Return(nil)

	key, err := Upload(context.Background(), store, cfg, sampleReport())

	require.NoError(t, err)
	assert.Equal(t, wantKey, key)
	store.AssertExpectations(t)
}

func TestUpload_MissingBucket(t *testing.T) {
	t.Parallel()

	store := new(testutil.MockObjectStore)
	store.On("BucketExists", mock.Anything, "audit").Return(false, nil)

	_, err := Upload(context.Background(), store, config.S3Config{Bucket: "audit"}, sampleReport())

	assert.ErrorContains(t, err, "bucket audit does not exist")
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_PutFails(t *testing.T) {
	t.Parallel()

	store := new(testutil.MockObjectStore)
	store.On("BucketExists", mock.Anything, "audit").Return(true, nil)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("access denied"))

	_, err := Upload(context.Background(), store, config.S3Config{Bucket: "audit"}, sampleReport())

	assert.ErrorContains(t, err, "access denied")
}

func TestUpload_BucketCheckFails(t *testing.T) {
	t.Parallel()

	store := new(testutil.MockObjectStore)
	store.On("BucketExists", mock.Anything, "audit").Return(false, errors.New("forbidden"))

	_, err := Upload(context.Background(), store, config.S3Config{Bucket: "audit"}, sampleReport())

	assert.ErrorContains(t, err, "forbidden")
}
