package prism

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListVMs returns the VMs, optionally narrowed by name server-side. Entries
// returned by a list cannot be passed to UpdateVM.
func (c *RealClient) ListVMs(ctx context.Context, name string) ([]VM, error) {
	filter := ""
	if name != "" {
		filter = equalsFilter("vm_name", name)
	}

	raws, err := c.list(ctx, "vms/list", "vm", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vms: %w", err)
	}

	vms := make([]VM, 0, len(raws))
	for _, raw := range raws {
		vm, err := decodeVM(raw)
		if err != nil {
			return nil, err
		}
		vm.raw = nil
		vms = append(vms, *vm)
	}
	return vms, nil
}

// GetVM reads the full VM entity.
func (c *RealClient) GetVM(ctx context.Context, uuid string) (*VM, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "vms/"+url.PathEscape(uuid), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get vm %s: %w", uuid, err)
	}
	return decodeVM(raw)
}

// UpdateVM sends the VM back with its current categories.
func (c *RealClient) UpdateVM(ctx context.Context, vm *VM) error {
	if vm.raw == nil {
		return fmt.Errorf("vm %s was not read with GetVM", vm.UUID)
	}

	body := vm.raw.forUpdate()
	if vm.UseCategoriesMapping {
		body.Metadata["use_categories_mapping"] = true
		body.Metadata["categories_mapping"] = vm.CategoriesMapping
		delete(body.Metadata, "categories")
	} else {
		body.Metadata["categories"] = vm.Categories
	}

	if _, err := c.mutate(ctx, http.MethodPut, "vms/"+url.PathEscape(vm.UUID), body); err != nil {
		return fmt.Errorf("failed to update vm %s: %w", vm.Name, err)
	}
	return nil
}
