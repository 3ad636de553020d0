package sensor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/provisioning"
	testutil "github.com/imamik/nfsensor/internal/testing"
)

const (
	catName  = "network_function_provider"
	catValue = "vectra_ai"
)

func run(t *testing.T, client prism.PrismManager, vmName string, dryRun bool) (*provisioning.Context, *testutil.RecordingObserver, error) {
	t.Helper()
	cfg := testutil.NewConfigBuilder().Build()
	ctx, observer := testutil.NewStageContext(t, cfg, client, phase, dryRun)
	err := NewProvisioner(vmName).Provision(ctx)
	return ctx, observer, err
}

func TestProvision_TagsVM(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	id := fake.AddVM("sensor-01", map[string]string{"Environment": "prod"})

	ctx, _, err := run(t, fake, "sensor-01", false)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Mutations("UpdateVM"))
	assert.Equal(t, map[string]string{"Environment": "prod", catName: catValue}, fake.VM(id).Categories)
	assert.Equal(t, 1, ctx.Report.Count(provisioning.ActionUpdated))
}

func TestProvision_Idempotent(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	id := fake.AddVM("sensor-01", nil)

	_, _, err := run(t, fake, "sensor-01", false)
	require.NoError(t, err)
	first := fake.VM(id).Categories

	ctx, _, err := run(t, fake, "sensor-01", false)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Mutations("UpdateVM"), "second run performs no mutation")
	assert.Equal(t, first, fake.VM(id).Categories)
	assert.Equal(t, 1, ctx.Report.Count(provisioning.ActionExists))
}

func TestProvision_VMNotFound(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	fake.AddVM("sensor-010", nil)

	_, _, err := run(t, fake, "sensor-01", false)

	var notFound *provisioning.VMNotFoundError
	require.True(t, errors.As(err, &notFound), "expected VMNotFoundError, got %v", err)
	assert.Equal(t, "sensor-01", notFound.Name)
	assert.Zero(t, fake.TotalMutations())
}

func TestProvision_DryRunIsPure(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	fake.ReadOnly = true
	id := fake.AddVM("sensor-01", nil)

	ctx, _, err := run(t, fake, "sensor-01", true)
	require.NoError(t, err)

	assert.Zero(t, fake.TotalMutations())
	require.Len(t, ctx.Report.Items, 1)
	assert.Equal(t, provisioning.ActionPlanned, ctx.Report.Items[0].Action)
	assert.Equal(t, id, ctx.Report.Items[0].UUID)
}

func TestProvision_DuplicateNamesPickSmallestUUID(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	fake.VMs = []prism.VM{
		{UUID: testutil.UUID(30), Name: "sensor-01", Categories: map[string]string{}},
		{UUID: testutil.UUID(10), Name: "sensor-01", Categories: map[string]string{}},
		{UUID: testutil.UUID(20), Name: "sensor-01", Categories: map[string]string{}},
	}

	ctx, observer, err := run(t, fake, "sensor-01", false)
	require.NoError(t, err)

	assert.Equal(t, testutil.UUID(10), ctx.Report.Items[0].UUID)
	assert.True(t, fake.VM(testutil.UUID(10)).HasCategory(catName, catValue))
	assert.False(t, fake.VM(testutil.UUID(20)).HasCategory(catName, catValue))
	assert.Len(t, observer.EventsOf(provisioning.EventValidationWarning), 1)
}

func TestProvision_ReplacesOtherValueWithWarning(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	id := fake.AddVM("sensor-01", map[string]string{catName: "other_vendor"})

	_, observer, err := run(t, fake, "sensor-01", false)
	require.NoError(t, err)

	assert.Equal(t, catValue, fake.VM(id).Categories[catName])
	warnings := observer.EventsOf(provisioning.EventValidationWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "other_vendor")
}

func TestProvision_CategoriesMapping(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	fake.VMs = []prism.VM{{
		UUID:                 testutil.UUID(1),
		Name:                 "sensor-01",
		UseCategoriesMapping: true,
		CategoriesMapping:    map[string][]string{catName: {"other_vendor"}},
	}}

	_, _, err := run(t, fake, "sensor-01", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"other_vendor", catValue}, fake.VM(testutil.UUID(1)).CategoriesMapping[catName])
	assert.Nil(t, fake.VM(testutil.UUID(1)).Categories)
}

func TestProvision_UpdateRejected(t *testing.T) {
	t.Parallel()
	fake := testutil.NewPrismFake()
	fake.AddVM("sensor-01", nil)
	fake.VMErr = &prism.TaskError{TaskUUID: "t-1", Status: "FAILED", Detail: "spec_version mismatch"}

	ctx, _, err := run(t, fake, "sensor-01", false)

	var updateErr *provisioning.UpdateError
	require.True(t, errors.As(err, &updateErr), "expected UpdateError, got %v", err)
	var taskErr *prism.TaskError
	assert.True(t, errors.As(err, &taskErr))
	assert.Len(t, ctx.Report.Failures(), 1)
}

func TestProvision_LookupError(t *testing.T) {
	t.Parallel()
	mock := &prism.MockClient{
		ListVMsFunc: func(context.Context, string) ([]prism.VM, error) {
			return nil, &prism.ConnectivityError{Endpoint: "pc:9440", Err: errors.New("timeout")}
		},
	}

	_, _, err := run(t, mock, "sensor-01", false)
	assert.ErrorIs(t, err, prism.ErrConnectivity)
}
