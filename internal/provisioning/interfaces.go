package provisioning

// Phase defines the interface for a stage run against Prism Central.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the logic of this phase. Per-item failures are
	// recorded on the report; a returned error ends the run.
	Provision(ctx *Context) error
}
