package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/nfsensor/internal/config"
	testutil "github.com/imamik/nfsensor/internal/testing"
)

func TestNetwork(t *testing.T) {
	fake := testutil.NewPrismFake()
	cfg := testutil.NewConfigBuilder().Build()
	alpha := fake.AddCluster("alpha")
	chain := fake.AddChain(alpha, cfg.Category.Name, cfg.Category.Value)
	subnet := fake.AddSubnet("vlan-100", alpha, 100)
	stubStage(t, cfg, fake)

	require.NoError(t, Network(context.Background(), Options{Yes: true}, 100))

	ref := fake.Subnet(subnet).ChainReference
	require.NotNil(t, ref)
	assert.Equal(t, chain, ref.UUID)
}

func TestNetwork_NoChainsIsSuccess(t *testing.T) {
	fake := testutil.NewPrismFake()
	alpha := fake.AddCluster("alpha")
	fake.AddSubnet("vlan-100", alpha, 100)
	stubStage(t, testutil.NewConfigBuilder().Build(), fake)

	err := Network(context.Background(), Options{Yes: true}, 100)

	require.NoError(t, err)
	assert.Zero(t, fake.TotalMutations())
}

func TestNetwork_ItemFailureIsNonZero(t *testing.T) {
	fake := testutil.NewPrismFake()
	cfg := testutil.NewConfigBuilder().Build()
	alpha := fake.AddCluster("alpha")
	fake.AddChain(alpha, cfg.Category.Name, cfg.Category.Value)
	broken := fake.AddSubnet("vlan-100-a", alpha, 100)
	healthy := fake.AddSubnet("vlan-100-b", alpha, 100)
	fake.SubnetErr[broken] = errors.New("spec_version mismatch")
	out := stubStage(t, cfg, fake)

	err := Network(context.Background(), Options{Yes: true}, 100)

	assert.ErrorContains(t, err, "1 item(s) failed")
	assert.NotNil(t, fake.Subnet(healthy).ChainReference, "the failure does not stop other subnets")
	assert.Contains(t, out.String(), "1 updated, 1 failed")
}

func TestNetwork_TestMode(t *testing.T) {
	fake := testutil.NewPrismFake()
	cfg := testutil.NewConfigBuilder().Build()
	alpha := fake.AddCluster("alpha")
	fake.AddChain(alpha, cfg.Category.Name, cfg.Category.Value)
	fake.AddSubnet("vlan-100", alpha, 100)
	out := stubStage(t, cfg, fake)

	require.NoError(t, Network(context.Background(), Options{Test: true}, 100))

	assert.Zero(t, fake.TotalMutations())
	assert.Contains(t, out.String(), "would attach chain")
}

func TestNetwork_InvalidVLAN(t *testing.T) {
	for _, id := range []int{-1, 4095} {
		err := Network(context.Background(), Options{Yes: true}, id)
		assert.ErrorIs(t, err, config.ErrConfiguration, "vlan %d", id)
	}
}
