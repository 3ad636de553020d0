package provider

import (
	"github.com/imamik/nfsensor/internal/provisioning"
)

const phase = "provider"

// Provisioner installs the provider category and network function chains.
type Provisioner struct {
	// ClusterName limits chain creation to the named cluster. When set, a
	// creation failure is fatal.
	ClusterName string
}

// NewProvisioner creates a new provider provisioner. An empty clusterName
// targets every cluster.
func NewProvisioner(clusterName string) *Provisioner {
	return &Provisioner{ClusterName: clusterName}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Category
	if err := p.ProvisionCategory(ctx); err != nil {
		return err
	}

	// 2. Target clusters
	clusters, err := p.TargetClusters(ctx)
	if err != nil {
		return err
	}

	// 3. Chains
	return p.ProvisionChains(ctx, clusters)
}
