package network

import (
	"fmt"
	"time"

	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/provisioning"
)

const phase = "network"

// Provisioner attaches chain references to the subnets of one VLAN.
type Provisioner struct {
	VLANID int
}

// NewProvisioner creates a new network provisioner for a VLAN.
func NewProvisioner(vlanID int) *Provisioner {
	return &Provisioner{VLANID: vlanID}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. Per-subnet failures
// are recorded on the report and do not stop the remaining subnets.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Chains by cluster
	chains, err := p.ProviderChains(ctx)
	if err != nil {
		return err
	}

	// 2. Candidate subnets
	candidates, err := p.CandidateSubnets(ctx, chains)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		ctx.Observer.Printf("[%s] No subnet with VLAN %d in a cluster with a chain", phase, p.VLANID)
		return nil
	}

	// 3. Attach
	for i, subnet := range candidates {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted after %d of %d subnet(s): %w", i, len(candidates), err)
		}
		p.attach(ctx, subnet, chains[subnet.Cluster.UUID])
		ctx.Observer.Progress(phase, i+1, len(candidates))
	}
	return nil
}

// ProviderChains returns the chains selecting the provider value, grouped by
// cluster UUID.
func (p *Provisioner) ProviderChains(ctx *provisioning.Context) (map[string][]prism.Chain, error) {
	cat := ctx.Config.Category

	all, err := ctx.Client.ListNetworkFunctionChains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list network function chains: %w", err)
	}

	byCluster := make(map[string][]prism.Chain)
	for _, chain := range all {
		if !chain.HasProviderValue(cat.Name, cat.Value) {
			continue
		}
		byCluster[chain.Cluster.UUID] = append(byCluster[chain.Cluster.UUID], chain)

		if ctx.DryRun() {
			ctx.Record(phase, provisioning.ItemResult{
				Kind:    provisioning.KindChain,
				Name:    chain.Name,
				UUID:    chain.UUID,
				Cluster: chain.Cluster.Name,
				Action:  provisioning.ActionExists,
				Detail:  "created " + chain.CreationTime.Format(time.RFC3339),
			})
		}
	}

	if len(byCluster) == 0 {
		return nil, &provisioning.NoChainsFoundError{CategoryName: cat.Name, CategoryValue: cat.Value}
	}
	return byCluster, nil
}

// CandidateSubnets returns the subnets carrying the VLAN whose cluster has a
// chain, in the order Prism Central lists them.
func (p *Provisioner) CandidateSubnets(ctx *provisioning.Context, chains map[string][]prism.Chain) ([]prism.Subnet, error) {
	subnets, err := ctx.Client.ListSubnets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}

	var candidates []prism.Subnet
	for _, subnet := range subnets {
		if !subnet.HasVLAN(p.VLANID) {
			continue
		}
		if !prism.ValidUUID(subnet.UUID) {
			provisioning.LogWarning(ctx.Observer, phase, subnet.Name,
				fmt.Sprintf("skipping subnet with invalid uuid %q", subnet.UUID))
			continue
		}
		if _, ok := chains[subnet.Cluster.UUID]; !ok {
			provisioning.LogWarning(ctx.Observer, phase, subnet.Name,
				fmt.Sprintf("cluster %s has no network function chain, subnet excluded", clusterLabel(subnet.Cluster)))
			continue
		}
		candidates = append(candidates, subnet)
	}
	return candidates, nil
}

// attach records the outcome for one candidate subnet.
func (p *Provisioner) attach(ctx *provisioning.Context, subnet prism.Subnet, chains []prism.Chain) {
	cluster := clusterLabel(subnet.Cluster)
	item := provisioning.ItemResult{
		Kind:    provisioning.KindSubnet,
		Name:    subnet.Name,
		UUID:    subnet.UUID,
		Cluster: cluster,
	}

	if len(chains) > 1 {
		uuids := make([]string, 0, len(chains))
		for _, c := range chains {
			uuids = append(uuids, c.UUID)
		}
		ctx.Record(phase, provisioning.Failed(item.Kind, item.Name, item.UUID, cluster, &provisioning.DuplicateChainError{
			ClusterUUID: subnet.Cluster.UUID,
			ClusterName: cluster,
			ChainUUIDs:  uuids,
		}))
		return
	}
	chain := chains[0]

	if ref := subnet.ChainReference; ref != nil {
		p.skipConfigured(ctx, item, ref, chain)
		return
	}

	if ctx.DryRun() {
		item.Action = provisioning.ActionPlanned
		item.Detail = "would attach chain " + chain.UUID
		ctx.Record(phase, item)
		return
	}

	fail := func(err error) {
		ctx.Record(phase, provisioning.Failed(item.Kind, item.Name, item.UUID, cluster, &provisioning.NetworkUpdateError{
			Subnet: subnet.Name,
			UUID:   subnet.UUID,
			Err:    err,
		}))
	}

	// The list may be stale; another run can attach a chain in the meantime.
	current, err := ctx.Client.GetSubnet(ctx, subnet.UUID)
	if err != nil {
		fail(err)
		return
	}
	if ref := current.ChainReference; ref != nil {
		p.skipConfigured(ctx, item, ref, chain)
		return
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, provisioning.KindSubnet, subnet.Name)
	if err := p.update(ctx, current, chain); err != nil {
		fail(err)
		return
	}

	item.Action = provisioning.ActionUpdated
	item.Detail = "attached chain " + chain.UUID
	ctx.Record(phase, item)
}

// skipConfigured records a subnet that already carries a chain reference.
func (p *Provisioner) skipConfigured(ctx *provisioning.Context, item provisioning.ItemResult, ref *prism.Reference, chain prism.Chain) {
	if ref.UUID != chain.UUID {
		provisioning.LogWarning(ctx.Observer, phase, item.Name,
			fmt.Sprintf("already references chain %s, not %s", ref.UUID, chain.UUID))
	}
	item.Action = provisioning.ActionSkipped
	item.Detail = "already configured with chain " + ref.UUID
	ctx.Record(phase, item)
}

// update writes the subnet, as read by GetSubnet, back with the chain reference.
func (p *Provisioner) update(ctx *provisioning.Context, subnet *prism.Subnet, chain prism.Chain) error {
	subnet.ChainReference = &prism.Reference{
		Kind: "network_function_chain",
		Name: chain.Name,
		UUID: chain.UUID,
	}
	return ctx.Client.UpdateSubnet(ctx, subnet)
}

func clusterLabel(ref prism.Reference) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.UUID
}
