package provisioning

import (
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/imamik/nfsensor/internal/metrics"
)

// Action is the outcome recorded for one item.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionExists  Action = "exists"
	ActionSkipped Action = "skipped"
	ActionPlanned Action = "planned"
	ActionFailed  Action = "failed"
)

// Item kinds.
const (
	KindCategory = "category"
	KindCluster  = "cluster"
	KindChain    = "network_function_chain"
	KindVM       = "vm"
	KindSubnet   = "subnet"
)

// ItemResult is the outcome for a single entity.
type ItemResult struct {
	Kind    string `json:"kind" yaml:"kind"`
	Name    string `json:"name" yaml:"name"`
	UUID    string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Action  Action `json:"action" yaml:"action"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the error of a failed item.
func (i ItemResult) Err() error {
	return i.err
}

// Failed builds a failed item carrying err.
func Failed(kind, name, uuid, cluster string, err error) ItemResult {
	return ItemResult{
		Kind:    kind,
		Name:    name,
		UUID:    uuid,
		Cluster: cluster,
		Action:  ActionFailed,
		Error:   err.Error(),
		err:     err,
	}
}

// Report accumulates the per-item results of one stage run. The exit
// decision is taken once, from Err, after the stage returns.
type Report struct {
	Stage      string       `json:"stage" yaml:"stage"`
	DryRun     bool         `json:"dry_run" yaml:"dry_run"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Items      []ItemResult `json:"items" yaml:"items"`
	// Outcome holds the stage-level error, if any.
	Outcome string `json:"outcome,omitempty" yaml:"outcome,omitempty"`

	metrics *metrics.Recorder
}

// NewReport starts a report for stage. rec may be nil.
func NewReport(stage string, dryRun bool, rec *metrics.Recorder) *Report {
	return &Report{
		Stage:     stage,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
		Items:     make([]ItemResult, 0),
		metrics:   rec,
	}
}

// Add appends an item.
func (r *Report) Add(item ItemResult) {
	if item.Action == ActionFailed && item.err == nil && item.Error != "" {
		item.err = errors.New(item.Error)
	}
	r.Items = append(r.Items, item)
	r.metrics.ObserveItem(r.Stage, string(item.Action))
}

// Finish stamps the end time and the stage-level outcome.
func (r *Report) Finish(err error) {
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.Outcome = err.Error()
	}
}

// Count returns the number of items with the given action.
func (r *Report) Count(action Action) int {
	n := 0
	for _, item := range r.Items {
		if item.Action == action {
			n++
		}
	}
	return n
}

// Failures returns the failed items.
func (r *Report) Failures() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Action == ActionFailed {
			failed = append(failed, item)
		}
	}
	return failed
}

// Err aggregates the errors of all failed items, or returns nil.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, item := range r.Failures() {
		result = multierror.Append(result, item.err)
	}
	return result.ErrorOrNil()
}
