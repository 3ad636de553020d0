package prism

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imamik/nfsensor/internal/config"
)

const apiRoot = "/api/nutanix/v3/"

// testServer creates an httptest server that can be used to mock Prism Central API responses.
type testServer struct {
	server *httptest.Server
	mux    *http.ServeMux
}

// newTestServer creates a new test server for mocking the Prism Central API.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &testServer{
		server: server,
		mux:    mux,
	}
}

// testConfig returns a valid configuration with fast task polling.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Host = "prism.test"
	cfg.Username = "admin"
	cfg.Password = "secret"
	cfg.Timeouts = &config.Timeouts{
		Request:         5 * time.Second,
		Task:            5 * time.Second,
		TaskPoll:        5 * time.Millisecond,
		TaskPollMax:     20 * time.Millisecond,
		TaskPollMaxRuns: 20,
	}
	return cfg
}

// realClient returns a RealClient configured to use the test server.
func (ts *testServer) realClient(opts ...ClientOption) *RealClient {
	opts = append([]ClientOption{
		WithBaseURL(ts.server.URL + apiRoot),
		WithHTTPClient(ts.server.Client()),
	}, opts...)
	return NewRealClient(testConfig(), opts...)
}

// handle registers a handler for a method and a path below the API root.
func (ts *testServer) handle(method, path string, handler http.HandlerFunc) {
	ts.mux.HandleFunc(method+" "+apiRoot+path, handler)
}

// jsonResponse writes a JSON response with the given status code and body.
func jsonResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody decodes a request body into a generic map.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

// listPage builds a v3 list response.
func listPage(total int, entities ...any) map[string]any {
	if entities == nil {
		entities = []any{}
	}
	return map[string]any{
		"metadata": map[string]any{"total_matches": total, "length": len(entities)},
		"entities": entities,
	}
}

// pending builds the response of an accepted mutation.
func pending(entityUUID, taskUUID string) map[string]any {
	return map[string]any{
		"status": map[string]any{
			"state":             "PENDING",
			"execution_context": map[string]any{"task_uuid": taskUUID},
		},
		"metadata": map[string]any{"uuid": entityUUID},
	}
}

// succeededTask registers a task that is RUNNING on the first poll and
// SUCCEEDED afterwards.
func (ts *testServer) succeededTask(taskUUID string) {
	polls := 0
	ts.handle(http.MethodGet, "tasks/"+taskUUID, func(w http.ResponseWriter, _ *http.Request) {
		polls++
		status := "RUNNING"
		if polls > 1 {
			status = "SUCCEEDED"
		}
		jsonResponse(w, http.StatusOK, map[string]any{"uuid": taskUUID, "status": status})
	})
}
