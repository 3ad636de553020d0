package prism

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
		conflict     bool
	}{
		{"nil", nil, false, false, false},
		{"plain", errors.New("boom"), false, false, false},
		{"404", &APIError{StatusCode: http.StatusNotFound}, true, false, false},
		{"401", &APIError{StatusCode: http.StatusUnauthorized}, false, true, false},
		{"403 wrapped", fmt.Errorf("ctx: %w", &APIError{StatusCode: http.StatusForbidden}), false, true, false},
		{"409", &APIError{StatusCode: http.StatusConflict}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
			assert.Equal(t, tt.conflict, IsConflict(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not found", errorMessage([]byte(`{"message_list":[{"message":"not found"}]}`)))
	assert.Equal(t, "a: b; c", errorMessage([]byte(`{"message_list":[{"reason":"a","message":"b"},{"reason":"c"}]}`)))
	assert.Equal(t, "upstream timeout", errorMessage([]byte("  upstream timeout\n")))

	long := errorMessage([]byte(strings.Repeat("x", 400)))
	assert.Len(t, long, 259)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestErrorStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET vms/1: 404 Not Found", (&APIError{Method: "GET", Path: "vms/1", StatusCode: 404}).Error())
	assert.Equal(t, "task t-1 failed: quota", (&TaskError{TaskUUID: "t-1", Status: "FAILED", Detail: "quota"}).Error())
	assert.Equal(t, "task t-1 aborted", (&TaskError{TaskUUID: "t-1", Status: "ABORTED"}).Error())

	err := &ConnectivityError{Endpoint: "pc:9440", Err: errors.New("refused")}
	assert.Equal(t, "cannot connect to Prism Central at pc:9440: refused", err.Error())
	assert.True(t, errors.Is(err, ErrConnectivity))
}
