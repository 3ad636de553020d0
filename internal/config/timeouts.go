package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Request         time.Duration // Timeout for a single API request
	Task            time.Duration // Timeout for waiting on a Prism task
	TaskPoll        time.Duration // Initial delay between task status polls
	TaskPollMax     time.Duration // Upper bound for the task poll delay
	TaskPollMaxRuns int           // Maximum number of task status polls
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - NFSENSOR_TIMEOUT_REQUEST (default: 30s)
//   - NFSENSOR_TIMEOUT_TASK (default: 5m)
//   - NFSENSOR_TASK_POLL_INTERVAL (default: 2s)
//   - NFSENSOR_TASK_POLL_MAX_INTERVAL (default: 15s)
//   - NFSENSOR_TASK_POLL_MAX_RUNS (default: 100)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:         parseDuration("NFSENSOR_TIMEOUT_REQUEST", 30*time.Second),
		Task:            parseDuration("NFSENSOR_TIMEOUT_TASK", 5*time.Minute),
		TaskPoll:        parseDuration("NFSENSOR_TASK_POLL_INTERVAL", 2*time.Second),
		TaskPollMax:     parseDuration("NFSENSOR_TASK_POLL_MAX_INTERVAL", 15*time.Second),
		TaskPollMaxRuns: parseInt("NFSENSOR_TASK_POLL_MAX_RUNS", 100),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i <= 0 {
		return defaultVal
	}

	return i
}
