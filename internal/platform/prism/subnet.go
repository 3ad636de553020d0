package prism

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListSubnets returns every subnet. Entries returned by a list cannot be
// passed to UpdateSubnet.
func (c *RealClient) ListSubnets(ctx context.Context) ([]Subnet, error) {
	raws, err := c.list(ctx, "subnets/list", "subnet", "")
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}

	subnets := make([]Subnet, 0, len(raws))
	for _, raw := range raws {
		subnet, err := decodeSubnet(raw)
		if err != nil {
			return nil, err
		}
		subnet.raw = nil
		subnets = append(subnets, *subnet)
	}
	return subnets, nil
}

// GetSubnet reads the full subnet entity.
func (c *RealClient) GetSubnet(ctx context.Context, uuid string) (*Subnet, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "subnets/"+url.PathEscape(uuid), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get subnet %s: %w", uuid, err)
	}
	return decodeSubnet(raw)
}

// UpdateSubnet sends the subnet back with its current chain reference.
// A nil ChainReference removes the reference.
func (c *RealClient) UpdateSubnet(ctx context.Context, subnet *Subnet) error {
	if subnet.raw == nil {
		return fmt.Errorf("subnet %s was not read with GetSubnet", subnet.UUID)
	}

	body := subnet.raw.forUpdate()
	resources := childMap(body.Spec, "resources")
	if subnet.ChainReference != nil {
		resources["network_function_chain_reference"] = subnet.ChainReference
	} else {
		delete(resources, "network_function_chain_reference")
	}

	if _, err := c.mutate(ctx, http.MethodPut, "subnets/"+url.PathEscape(subnet.UUID), body); err != nil {
		return fmt.Errorf("failed to update subnet %s: %w", subnet.Name, err)
	}
	return nil
}
