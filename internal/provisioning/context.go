package provisioning

import (
	"context"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/platform/prism"
)

// Context wraps all dependencies needed by a stage.
type Context struct {
	context.Context
	Config   *config.Config
	Client   prism.PrismManager
	Observer Observer
	Report   *Report
}

// NewContext creates a new provisioning context logging to the console.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	client prism.PrismManager,
	report *Report,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Client:   client,
		Observer: NewConsoleObserver(),
		Report:   report,
	}
}

// DryRun reports whether the run must not mutate anything.
func (c *Context) DryRun() bool {
	return c.Report != nil && c.Report.DryRun
}

// Record adds item to the report and emits the matching event.
func (c *Context) Record(phase string, item ItemResult) {
	c.Report.Add(item)

	switch item.Action {
	case ActionCreated:
		LogResourceCreated(c.Observer, phase, item.Kind, item.Name, item.UUID)
	case ActionUpdated:
		LogResourceUpdated(c.Observer, phase, item.Kind, item.Name, item.UUID)
	case ActionExists:
		LogResourceExists(c.Observer, phase, item.Kind, item.Name, item.UUID)
	case ActionSkipped:
		LogResourceSkipped(c.Observer, phase, item.Kind, item.Name, item.Detail)
	case ActionPlanned:
		LogResourcePlanned(c.Observer, phase, item.Kind, item.Name, item.Detail)
	case ActionFailed:
		LogResourceFailed(c.Observer, phase, item.Kind, item.Name, item.Err())
	}
}
