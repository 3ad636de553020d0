package prism

import (
	"context"
)

// ChainCreateOpts holds all parameters for creating a network function chain.
type ChainCreateOpts struct {
	Name          string
	ClusterUUID   string
	ClusterName   string
	CategoryName  string
	CategoryValue string
	FunctionType  string
}

// CategoryManager defines the interface for managing categories.
type CategoryManager interface {
	// ListCategoryValues returns the values registered under the category key.
	// A missing key is not an error: it yields an empty list.
	ListCategoryValues(ctx context.Context, name string) ([]CategoryValue, error)
	// EnsureCategoryKey creates or updates the category key.
	EnsureCategoryKey(ctx context.Context, name, description string) error
	// CreateCategoryValue creates or updates a value under an existing key.
	CreateCategoryValue(ctx context.Context, name, value, description string) error
}

// ClusterManager defines the interface for enumerating clusters.
type ClusterManager interface {
	// ListClusters returns all clusters, or those matching the name filter.
	// The filter is passed to Prism as-is; callers must still compare names.
	ListClusters(ctx context.Context, name string) ([]Cluster, error)
}

// ChainManager defines the interface for managing network function chains.
type ChainManager interface {
	ListNetworkFunctionChains(ctx context.Context) ([]Chain, error)
	// CreateNetworkFunctionChain creates a chain and waits for its task.
	CreateNetworkFunctionChain(ctx context.Context, opts ChainCreateOpts) (*Chain, error)
}

// VMManager defines the interface for managing virtual machines.
type VMManager interface {
	// ListVMs returns all VMs, or those matching the name filter.
	ListVMs(ctx context.Context, name string) ([]VM, error)
	GetVM(ctx context.Context, uuid string) (*VM, error)
	// UpdateVM writes the VM's categories back to Prism and waits for the task.
	// The VM must come from GetVM.
	UpdateVM(ctx context.Context, vm *VM) error
}

// SubnetManager defines the interface for managing subnets.
type SubnetManager interface {
	ListSubnets(ctx context.Context) ([]Subnet, error)
	GetSubnet(ctx context.Context, uuid string) (*Subnet, error)
	// UpdateSubnet writes the subnet's chain reference back to Prism and waits
	// for the task. The subnet must come from GetSubnet.
	UpdateSubnet(ctx context.Context, subnet *Subnet) error
}

// PrismManager combines all Prism Central interfaces.
type PrismManager interface {
	CategoryManager
	ClusterManager
	ChainManager
	VMManager
	SubnetManager
	// Connect verifies that Prism Central is reachable with the configured
	// credentials.
	Connect(ctx context.Context) error
}
