package provisioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(observer Observer) *Context {
	return &Context{
		Context:  context.Background(),
		Observer: observer,
		Report:   NewReport("test", false, nil),
	}
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	observer := NewMockObserver()
	ctx := newTestContext(observer)

	err := RunPhases(ctx, []Phase{
		phaseFunc("provider", func(_ *Context) error { executed = append(executed, "provider"); return nil }),
		phaseFunc("network", func(_ *Context) error { executed = append(executed, "network"); return nil }),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"provider", "network"}, executed)
	assert.Equal(t, []EventType{
		EventPhaseStarted, EventPhaseCompleted,
		EventPhaseStarted, EventPhaseCompleted,
	}, observer.eventTypes())
	assert.False(t, ctx.Report.FinishedAt.IsZero())
	assert.Empty(t, ctx.Report.Outcome)
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)
	observer := NewMockObserver()
	ctx := newTestContext(observer)

	err := RunPhases(ctx, []Phase{
		phaseFunc("provider", func(_ *Context) error { return fmt.Errorf("out of capacity") }),
		phaseFunc("network", func(_ *Context) error { executed = append(executed, "network"); return nil }),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider stage failed")
	assert.Contains(t, err.Error(), "out of capacity")
	assert.Empty(t, executed)
	assert.Equal(t, []EventType{EventPhaseStarted, EventPhaseFailed}, observer.eventTypes())
	assert.Equal(t, err.Error(), ctx.Report.Outcome)
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(NewMockObserver())

	require.NoError(t, RunPhases(ctx, nil))
}

// phaseFunc creates a Phase from a function for testing.
type phaseFuncImpl struct {
	name string
	fn   func(*Context) error
}

func phaseFunc(name string, fn func(*Context) error) Phase {
	return &phaseFuncImpl{name: name, fn: fn}
}

func (p *phaseFuncImpl) Name() string                 { return p.name }
func (p *phaseFuncImpl) Provision(ctx *Context) error { return p.fn(ctx) }
