package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	t.Parallel()
	r := New()

	r.ObserveRequest("POST", "vms", false, 200, 0.1)
	r.ObserveRequest("PUT", "vms", true, 202, 0.2)
	r.ObserveRequest("PUT", "subnets", true, 0, 0.2)

	counter, err := r.apiRequests.GetMetricWithLabelValues("PUT", "subnets", "error")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))

	assert.Equal(t, float64(1), testutil.ToFloat64(r.apiMutations.WithLabelValues("vms")))
	assert.Equal(t, 2, r.TotalMutations())
}

func TestObserveItem(t *testing.T) {
	t.Parallel()
	r := New()

	r.ObserveItem("network", "updated")
	r.ObserveItem("network", "updated")
	r.ObserveItem("network", "exists")

	assert.Equal(t, float64(2), testutil.ToFloat64(r.stageItems.WithLabelValues("network", "updated")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.stageItems))
}

func TestNilRecorder(t *testing.T) {
	t.Parallel()
	var r *Recorder

	r.ObserveRequest("GET", "tasks", false, 200, 0)
	r.ObserveItem("sensor", "exists")
	assert.Equal(t, 0, r.TotalMutations())
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "never.prom")))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	r := New()
	r.ObserveRequest("POST", "network_function_chains", true, 202, 0.3)

	path := filepath.Join(t.TempDir(), "nfsensor.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `nfsensor_api_mutations_total{resource="network_function_chains"} 1`)
}
