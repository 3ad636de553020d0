package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/platform/prism"
)

func TestNewContext(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	client := &prism.MockClient{}
	report := NewReport("sensor", true, nil)

	ctx := NewContext(context.Background(), cfg, client, report)

	require.NotNil(t, ctx)
	assert.Same(t, cfg, ctx.Config)
	assert.Equal(t, client, ctx.Client)
	assert.Same(t, report, ctx.Report)
	assert.IsType(t, &ConsoleObserver{}, ctx.Observer)
	assert.True(t, ctx.DryRun())
}

func TestContext_DryRunWithoutReport(t *testing.T) {
	t.Parallel()
	ctx := &Context{}
	assert.False(t, ctx.DryRun())
}

func TestContext_Record(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := newTestContext(observer)

	ctx.Record("network", ItemResult{Kind: KindSubnet, Name: "vlan-100", UUID: "s-1", Action: ActionUpdated})
	ctx.Record("network", ItemResult{Kind: KindSubnet, Name: "vlan-101", Action: ActionSkipped, Detail: "already configured"})
	ctx.Record("network", Failed(KindSubnet, "vlan-102", "s-3", "alpha", assert.AnError))

	assert.Len(t, ctx.Report.Items, 3)
	assert.Equal(t, []EventType{EventResourceUpdated, EventResourceSkipped, EventResourceFailed}, observer.eventTypes())
	assert.Error(t, ctx.Report.Err())
}
