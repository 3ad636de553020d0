package sensor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/provisioning"
)

const phase = "sensor"

// Provisioner attaches the provider category to one VM.
type Provisioner struct {
	VMName string
}

// NewProvisioner creates a new sensor provisioner for the named VM.
func NewProvisioner(vmName string) *Provisioner {
	return &Provisioner{VMName: vmName}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	vm, err := p.FindVM(ctx)
	if err != nil {
		return err
	}

	cat := ctx.Config.Category
	item := provisioning.ItemResult{
		Kind:    provisioning.KindVM,
		Name:    vm.Name,
		UUID:    vm.UUID,
		Cluster: clusterName(vm),
	}

	if ctx.DryRun() {
		if vm.HasCategory(cat.Name, cat.Value) {
			item.Action = provisioning.ActionExists
		} else {
			item.Action = provisioning.ActionPlanned
			item.Detail = fmt.Sprintf("would attach %s=%s", cat.Name, cat.Value)
		}
		ctx.Record(phase, item)
		return nil
	}

	return p.TagVM(ctx, vm.UUID, item)
}

// FindVM looks the VM up by exact name. When several VMs share the name the
// one with the smallest UUID is chosen, so repeated runs pick the same VM.
func (p *Provisioner) FindVM(ctx *provisioning.Context) (*prism.VM, error) {
	listed, err := ctx.Client.ListVMs(ctx, p.VMName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vm %s: %w", p.VMName, err)
	}

	var matches []prism.VM
	for _, vm := range listed {
		if vm.Name == p.VMName {
			matches = append(matches, vm)
		}
	}

	if len(matches) == 0 {
		return nil, &provisioning.VMNotFoundError{Name: p.VMName}
	}

	slices.SortFunc(matches, func(a, b prism.VM) int {
		return strings.Compare(a.UUID, b.UUID)
	})

	if len(matches) > 1 {
		uuids := make([]string, 0, len(matches))
		for _, vm := range matches {
			uuids = append(uuids, vm.UUID)
		}
		provisioning.LogWarning(ctx.Observer, phase, p.VMName,
			fmt.Sprintf("%d vms share this name (%s), using %s", len(matches), strings.Join(uuids, ", "), matches[0].UUID))
	}

	vm := matches[0]
	ctx.Observer.Printf("[%s] Found vm %s (%s)", phase, vm.Name, vm.UUID)
	return &vm, nil
}

// TagVM reads the full VM and attaches the provider value unless present.
func (p *Provisioner) TagVM(ctx *provisioning.Context, uuid string, item provisioning.ItemResult) error {
	cat := ctx.Config.Category

	vm, err := ctx.Client.GetVM(ctx, uuid)
	if err != nil {
		return fmt.Errorf("failed to read vm %s: %w", item.Name, err)
	}

	if vm.HasCategory(cat.Name, cat.Value) {
		item.Action = provisioning.ActionExists
		ctx.Record(phase, item)
		return nil
	}

	if vm.UseCategoriesMapping {
		if vm.CategoriesMapping == nil {
			vm.CategoriesMapping = make(map[string][]string)
		}
		vm.CategoriesMapping[cat.Name] = append(vm.CategoriesMapping[cat.Name], cat.Value)
	} else {
		if vm.Categories == nil {
			vm.Categories = make(map[string]string)
		}
		if old := vm.Categories[cat.Name]; old != "" {
			provisioning.LogWarning(ctx.Observer, phase, item.Name,
				fmt.Sprintf("replacing %s=%s with %s", cat.Name, old, cat.Value))
		}
		vm.Categories[cat.Name] = cat.Value
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, provisioning.KindVM, item.Name)
	if err := ctx.Client.UpdateVM(ctx, vm); err != nil {
		updateErr := &provisioning.UpdateError{VM: item.Name, UUID: uuid, Err: err}
		ctx.Record(phase, provisioning.Failed(item.Kind, item.Name, uuid, item.Cluster, updateErr))
		return updateErr
	}

	item.Action = provisioning.ActionUpdated
	item.Detail = fmt.Sprintf("attached %s=%s", cat.Name, cat.Value)
	ctx.Record(phase, item)
	return nil
}

func clusterName(vm *prism.VM) string {
	if vm.Cluster == nil {
		return ""
	}
	if vm.Cluster.Name != "" {
		return vm.Cluster.Name
	}
	return vm.Cluster.UUID
}
