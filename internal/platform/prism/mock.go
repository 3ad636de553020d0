package prism

import (
	"context"
)

// MockClient is a mock implementation of PrismManager. Every method falls
// back to an empty, successful result when its Func field is nil.
type MockClient struct {
	ConnectFunc func(ctx context.Context) error

	// Category
	ListCategoryValuesFunc  func(ctx context.Context, name string) ([]CategoryValue, error)
	EnsureCategoryKeyFunc   func(ctx context.Context, name, description string) error
	CreateCategoryValueFunc func(ctx context.Context, name, value, description string) error

	// Cluster
	ListClustersFunc func(ctx context.Context, name string) ([]Cluster, error)

	// Chain
	ListNetworkFunctionChainsFunc  func(ctx context.Context) ([]Chain, error)
	CreateNetworkFunctionChainFunc func(ctx context.Context, opts ChainCreateOpts) (*Chain, error)

	// VM
	ListVMsFunc  func(ctx context.Context, name string) ([]VM, error)
	GetVMFunc    func(ctx context.Context, uuid string) (*VM, error)
	UpdateVMFunc func(ctx context.Context, vm *VM) error

	// Subnet
	ListSubnetsFunc  func(ctx context.Context) ([]Subnet, error)
	GetSubnetFunc    func(ctx context.Context, uuid string) (*Subnet, error)
	UpdateSubnetFunc func(ctx context.Context, subnet *Subnet) error
}

// Connect mocks connectivity verification.
func (m *MockClient) Connect(ctx context.Context) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	return nil
}

// ListCategoryValues mocks category value listing.
func (m *MockClient) ListCategoryValues(ctx context.Context, name string) ([]CategoryValue, error) {
	if m.ListCategoryValuesFunc != nil {
		return m.ListCategoryValuesFunc(ctx, name)
	}
	return nil, nil
}

// EnsureCategoryKey mocks category key creation.
func (m *MockClient) EnsureCategoryKey(ctx context.Context, name, description string) error {
	if m.EnsureCategoryKeyFunc != nil {
		return m.EnsureCategoryKeyFunc(ctx, name, description)
	}
	return nil
}

// CreateCategoryValue mocks category value creation.
func (m *MockClient) CreateCategoryValue(ctx context.Context, name, value, description string) error {
	if m.CreateCategoryValueFunc != nil {
		return m.CreateCategoryValueFunc(ctx, name, value, description)
	}
	return nil
}

// ListClusters mocks cluster listing.
func (m *MockClient) ListClusters(ctx context.Context, name string) ([]Cluster, error) {
	if m.ListClustersFunc != nil {
		return m.ListClustersFunc(ctx, name)
	}
	return nil, nil
}

// ListNetworkFunctionChains mocks chain listing.
func (m *MockClient) ListNetworkFunctionChains(ctx context.Context) ([]Chain, error) {
	if m.ListNetworkFunctionChainsFunc != nil {
		return m.ListNetworkFunctionChainsFunc(ctx)
	}
	return nil, nil
}

// CreateNetworkFunctionChain mocks chain creation.
func (m *MockClient) CreateNetworkFunctionChain(ctx context.Context, opts ChainCreateOpts) (*Chain, error) {
	if m.CreateNetworkFunctionChainFunc != nil {
		return m.CreateNetworkFunctionChainFunc(ctx, opts)
	}
	return &Chain{
		UUID:           "mock-chain-uuid",
		Name:           opts.Name,
		Cluster:        Reference{Kind: "cluster", Name: opts.ClusterName, UUID: opts.ClusterUUID},
		CategoryFilter: map[string][]string{opts.CategoryName: {opts.CategoryValue}},
	}, nil
}

// ListVMs mocks VM listing.
func (m *MockClient) ListVMs(ctx context.Context, name string) ([]VM, error) {
	if m.ListVMsFunc != nil {
		return m.ListVMsFunc(ctx, name)
	}
	return nil, nil
}

// GetVM mocks VM retrieval.
func (m *MockClient) GetVM(ctx context.Context, uuid string) (*VM, error) {
	if m.GetVMFunc != nil {
		return m.GetVMFunc(ctx, uuid)
	}
	return &VM{UUID: uuid}, nil
}

// UpdateVM mocks VM update.
func (m *MockClient) UpdateVM(ctx context.Context, vm *VM) error {
	if m.UpdateVMFunc != nil {
		return m.UpdateVMFunc(ctx, vm)
	}
	return nil
}

// ListSubnets mocks subnet listing.
func (m *MockClient) ListSubnets(ctx context.Context) ([]Subnet, error) {
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx)
	}
	return nil, nil
}

// GetSubnet mocks subnet retrieval.
func (m *MockClient) GetSubnet(ctx context.Context, uuid string) (*Subnet, error) {
	if m.GetSubnetFunc != nil {
		return m.GetSubnetFunc(ctx, uuid)
	}
	return &Subnet{UUID: uuid}, nil
}

// UpdateSubnet mocks subnet update.
func (m *MockClient) UpdateSubnet(ctx context.Context, subnet *Subnet) error {
	if m.UpdateSubnetFunc != nil {
		return m.UpdateSubnetFunc(ctx, subnet)
	}
	return nil
}
