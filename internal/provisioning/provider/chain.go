package provider

import (
	"fmt"

	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/provisioning"
)

// TargetClusters returns the clusters that receive a chain, in the order
// Prism Central lists them. The Prism Central pseudo-cluster is never a
// target.
func (p *Provisioner) TargetClusters(ctx *provisioning.Context) ([]prism.Cluster, error) {
	listed, err := ctx.Client.ListClusters(ctx, p.ClusterName)
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	var clusters []prism.Cluster
	for _, c := range listed {
		if c.IsPrismCentral() {
			ctx.Observer.Printf("[%s] Ignoring Prism Central entry %s (%s)", phase, c.Name, c.UUID)
			continue
		}
		// The server-side filter is not guaranteed to be an exact match.
		if p.ClusterName != "" && c.Name != p.ClusterName {
			continue
		}
		clusters = append(clusters, c)
	}

	if len(clusters) == 0 {
		return nil, &provisioning.ClusterNotFoundError{Name: p.ClusterName}
	}

	ctx.Observer.Printf("[%s] %d target cluster(s)", phase, len(clusters))
	return clusters, nil
}

// ProvisionChains creates one chain per cluster. Without a cluster name a
// failure is recorded and the remaining clusters are still processed.
func (p *Provisioner) ProvisionChains(ctx *provisioning.Context, clusters []prism.Cluster) error {
	cat := ctx.Config.Category
	existing := p.existingChains(ctx)

	for i, cluster := range clusters {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted after %d of %d cluster(s): %w", i, len(clusters), err)
		}

		item := provisioning.ItemResult{
			Kind:    provisioning.KindChain,
			Name:    ctx.Config.Chain.Name,
			Cluster: cluster.Name,
		}

		if chains := existing[cluster.UUID]; len(chains) > 0 {
			provisioning.LogWarning(ctx.Observer, phase, cluster.Name,
				fmt.Sprintf("cluster already has %d chain(s) selecting %s=%s, creating another", len(chains), cat.Name, cat.Value))
		}

		if ctx.DryRun() {
			item.Action = provisioning.ActionPlanned
			item.Detail = fmt.Sprintf("would create chain on cluster %s (%s)", cluster.Name, cluster.UUID)
			ctx.Record(phase, item)
			continue
		}

		provisioning.LogResourceCreating(ctx.Observer, phase, provisioning.KindChain, cluster.Name)
		chain, err := ctx.Client.CreateNetworkFunctionChain(ctx, prism.ChainCreateOpts{
			Name:          ctx.Config.Chain.Name,
			ClusterUUID:   cluster.UUID,
			ClusterName:   cluster.Name,
			CategoryName:  cat.Name,
			CategoryValue: cat.Value,
			FunctionType:  ctx.Config.Chain.FunctionType,
		})
		if err != nil {
			ctx.Record(phase, provisioning.Failed(item.Kind, item.Name, "", cluster.Name, err))
			if p.ClusterName != "" {
				return fmt.Errorf("failed to create network function chain on cluster %s: %w", cluster.Name, err)
			}
			continue
		}

		item.UUID = chain.UUID
		item.Action = provisioning.ActionCreated
		ctx.Record(phase, item)
		ctx.Observer.Progress(phase, i+1, len(clusters))
	}
	return nil
}

// existingChains groups the chains selecting the provider value by cluster
// UUID. It only feeds warnings, so a listing failure is logged and ignored.
func (p *Provisioner) existingChains(ctx *provisioning.Context) map[string][]prism.Chain {
	cat := ctx.Config.Category
	chains, err := ctx.Client.ListNetworkFunctionChains(ctx)
	if err != nil {
		provisioning.LogWarning(ctx.Observer, phase, "", fmt.Sprintf("could not list existing chains: %v", err))
		return nil
	}

	byCluster := make(map[string][]prism.Chain)
	for _, c := range chains {
		if c.HasProviderValue(cat.Name, cat.Value) {
			byCluster[c.Cluster.UUID] = append(byCluster[c.Cluster.UUID], c)
		}
	}
	return byCluster
}
