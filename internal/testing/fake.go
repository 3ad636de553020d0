package testing

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/imamik/nfsensor/internal/platform/prism"
)

// UUID returns a well-formed, deterministic UUID for fixture entity n.
func UUID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

// PrismFake is a stateful in-memory implementation of prism.PrismManager.
// Mutations change the stored state so that a second run observes the
// effect of the first. Every mutating call is counted, including refused
// and failing ones.
type PrismFake struct {
	Categories map[string][]prism.CategoryValue
	Clusters   []prism.Cluster
	Chains     []prism.Chain
	VMs        []prism.VM
	Subnets    []prism.Subnet

	// ReadOnly makes every mutating call fail with prism.ErrReadOnly.
	ReadOnly bool

	// Failure injection.
	ConnectErr        error
	CategoryErr       error
	DropCategoryValue bool             // accept the value but never store it
	ChainErr          map[string]error // by cluster UUID
	VMErr             error
	SubnetErr         map[string]error // by subnet UUID

	mutations map[string]int
	nextID    int
}

var _ prism.PrismManager = (*PrismFake)(nil)

// NewPrismFake creates an empty fake.
func NewPrismFake() *PrismFake {
	return &PrismFake{
		Categories: make(map[string][]prism.CategoryValue),
		ChainErr:   make(map[string]error),
		SubnetErr:  make(map[string]error),
		mutations:  make(map[string]int),
		nextID:     9000,
	}
}

// Fixture helpers

// AddCluster registers a cluster and returns its UUID.
func (f *PrismFake) AddCluster(name string) string {
	id := f.newID()
	f.Clusters = append(f.Clusters, prism.Cluster{UUID: id, Name: name, Services: []string{"AOS"}})
	return id
}

// AddPrismCentral registers the Prism Central pseudo-cluster.
func (f *PrismFake) AddPrismCentral() string {
	id := f.newID()
	f.Clusters = append(f.Clusters, prism.Cluster{UUID: id, Name: "Unnamed", Services: []string{"PRISM_CENTRAL"}})
	return id
}

// AddCategoryValue registers name=value.
func (f *PrismFake) AddCategoryValue(name, value string) {
	f.Categories[name] = append(f.Categories[name], prism.CategoryValue{Name: name, Value: value})
}

// AddChain registers a chain on a cluster selecting name=value and returns its UUID.
func (f *PrismFake) AddChain(clusterUUID, categoryName, categoryValue string) string {
	id := f.newID()
	f.Chains = append(f.Chains, prism.Chain{
		UUID:           id,
		Name:           "vectra_tap",
		Cluster:        prism.Reference{Kind: "cluster", Name: f.clusterName(clusterUUID), UUID: clusterUUID},
		CreationTime:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		CategoryFilter: map[string][]string{categoryName: {categoryValue}},
	})
	return id
}

// AddVM registers a VM and returns its UUID.
func (f *PrismFake) AddVM(name string, categories map[string]string) string {
	id := f.newID()
	if categories == nil {
		categories = make(map[string]string)
	}
	f.VMs = append(f.VMs, prism.VM{UUID: id, Name: name, Categories: categories})
	return id
}

// AddSubnet registers a subnet on a cluster with a VLAN and returns its UUID.
func (f *PrismFake) AddSubnet(name, clusterUUID string, vlanID int) string {
	id := f.newID()
	f.Subnets = append(f.Subnets, prism.Subnet{
		UUID:    id,
		Name:    name,
		Cluster: prism.Reference{Kind: "cluster", Name: f.clusterName(clusterUUID), UUID: clusterUUID},
		VLANID:  &vlanID,
	})
	return id
}

// Subnet returns the stored subnet with the given UUID.
func (f *PrismFake) Subnet(uuid string) *prism.Subnet {
	for i := range f.Subnets {
		if f.Subnets[i].UUID == uuid {
			s := copySubnet(f.Subnets[i])
			return &s
		}
	}
	return nil
}

// VM returns the stored VM with the given UUID.
func (f *PrismFake) VM(uuid string) *prism.VM {
	for i := range f.VMs {
		if f.VMs[i].UUID == uuid {
			vm := copyVM(f.VMs[i])
			return &vm
		}
	}
	return nil
}

// Mutations returns the number of mutating calls made for op.
func (f *PrismFake) Mutations(op string) int {
	return f.mutations[op]
}

// TotalMutations returns the number of mutating calls of any kind.
func (f *PrismFake) TotalMutations() int {
	total := 0
	for _, n := range f.mutations {
		total += n
	}
	return total
}

// PrismManager implementation

func (f *PrismFake) Connect(_ context.Context) error {
	return f.ConnectErr
}

func (f *PrismFake) ListCategoryValues(_ context.Context, name string) ([]prism.CategoryValue, error) {
	return slices.Clone(f.Categories[name]), nil
}

func (f *PrismFake) EnsureCategoryKey(_ context.Context, name, _ string) error {
	if err := f.mutate("EnsureCategoryKey"); err != nil {
		return err
	}
	if f.CategoryErr != nil {
		return f.CategoryErr
	}
	if _, ok := f.Categories[name]; !ok {
		f.Categories[name] = nil
	}
	return nil
}

func (f *PrismFake) CreateCategoryValue(_ context.Context, name, value, description string) error {
	if err := f.mutate("CreateCategoryValue"); err != nil {
		return err
	}
	if f.CategoryErr != nil {
		return f.CategoryErr
	}
	if _, ok := f.Categories[name]; !ok {
		return fmt.Errorf("category %s does not exist", name)
	}
	if f.DropCategoryValue {
		return nil
	}
	f.Categories[name] = append(f.Categories[name], prism.CategoryValue{Name: name, Value: value, Description: description})
	return nil
}

func (f *PrismFake) ListClusters(_ context.Context, name string) ([]prism.Cluster, error) {
	if name == "" {
		return slices.Clone(f.Clusters), nil
	}
	var matched []prism.Cluster
	for _, c := range f.Clusters {
		if c.Name == name {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (f *PrismFake) ListNetworkFunctionChains(_ context.Context) ([]prism.Chain, error) {
	return slices.Clone(f.Chains), nil
}

func (f *PrismFake) CreateNetworkFunctionChain(_ context.Context, opts prism.ChainCreateOpts) (*prism.Chain, error) {
	if err := f.mutate("CreateNetworkFunctionChain"); err != nil {
		return nil, err
	}
	if err := f.ChainErr[opts.ClusterUUID]; err != nil {
		return nil, err
	}
	chain := prism.Chain{
		UUID:           f.newID(),
		Name:           opts.Name,
		Cluster:        prism.Reference{Kind: "cluster", Name: opts.ClusterName, UUID: opts.ClusterUUID},
		CreationTime:   time.Now().UTC(),
		CategoryFilter: map[string][]string{opts.CategoryName: {opts.CategoryValue}},
	}
	f.Chains = append(f.Chains, chain)
	return &chain, nil
}

func (f *PrismFake) ListVMs(_ context.Context, name string) ([]prism.VM, error) {
	var vms []prism.VM
	for _, vm := range f.VMs {
		if name == "" || vm.Name == name {
			vms = append(vms, copyVM(vm))
		}
	}
	return vms, nil
}

func (f *PrismFake) GetVM(_ context.Context, uuid string) (*prism.VM, error) {
	if vm := f.VM(uuid); vm != nil {
		return vm, nil
	}
	return nil, &prism.APIError{Method: "GET", Path: "vms/" + uuid, StatusCode: 404}
}

func (f *PrismFake) UpdateVM(_ context.Context, vm *prism.VM) error {
	if err := f.mutate("UpdateVM"); err != nil {
		return err
	}
	if f.VMErr != nil {
		return f.VMErr
	}
	for i := range f.VMs {
		if f.VMs[i].UUID == vm.UUID {
			f.VMs[i] = copyVM(*vm)
			return nil
		}
	}
	return &prism.APIError{Method: "PUT", Path: "vms/" + vm.UUID, StatusCode: 404}
}

func (f *PrismFake) ListSubnets(_ context.Context) ([]prism.Subnet, error) {
	subnets := make([]prism.Subnet, 0, len(f.Subnets))
	for _, s := range f.Subnets {
		subnets = append(subnets, copySubnet(s))
	}
	return subnets, nil
}

func (f *PrismFake) GetSubnet(_ context.Context, uuid string) (*prism.Subnet, error) {
	if s := f.Subnet(uuid); s != nil {
		return s, nil
	}
	return nil, &prism.APIError{Method: "GET", Path: "subnets/" + uuid, StatusCode: 404}
}

func (f *PrismFake) UpdateSubnet(_ context.Context, subnet *prism.Subnet) error {
	if err := f.mutate("UpdateSubnet"); err != nil {
		return err
	}
	if err := f.SubnetErr[subnet.UUID]; err != nil {
		return err
	}
	for i := range f.Subnets {
		if f.Subnets[i].UUID == subnet.UUID {
			f.Subnets[i] = copySubnet(*subnet)
			return nil
		}
	}
	return &prism.APIError{Method: "PUT", Path: "subnets/" + subnet.UUID, StatusCode: 404}
}

// internals

func (f *PrismFake) mutate(op string) error {
	f.mutations[op]++
	if f.ReadOnly {
		return fmt.Errorf("%s: %w", op, prism.ErrReadOnly)
	}
	return nil
}

func (f *PrismFake) newID() string {
	f.nextID++
	return UUID(f.nextID)
}

func (f *PrismFake) clusterName(uuid string) string {
	for _, c := range f.Clusters {
		if c.UUID == uuid {
			return c.Name
		}
	}
	return ""
}

func copyVM(vm prism.VM) prism.VM {
	vm.Categories = maps.Clone(vm.Categories)
	if vm.CategoriesMapping != nil {
		mapping := make(map[string][]string, len(vm.CategoriesMapping))
		for k, v := range vm.CategoriesMapping {
			mapping[k] = slices.Clone(v)
		}
		vm.CategoriesMapping = mapping
	}
	return vm
}

func copySubnet(s prism.Subnet) prism.Subnet {
	if s.ChainReference != nil {
		ref := *s.ChainReference
		s.ChainReference = &ref
	}
	if s.VLANID != nil {
		vlan := *s.VLANID
		s.VLANID = &vlan
	}
	return s
}
