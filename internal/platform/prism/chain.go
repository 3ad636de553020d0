package prism

import (
	"context"
	"fmt"
	"net/http"
)

// chainAPIVersion is the API version network function chains require.
const chainAPIVersion = "3.1.0"

// ListNetworkFunctionChains returns every network function chain.
func (c *RealClient) ListNetworkFunctionChains(ctx context.Context) ([]Chain, error) {
	raws, err := c.list(ctx, "network_function_chains/list", "network_function_chain", "")
	if err != nil {
		return nil, fmt.Errorf("failed to list network function chains: %w", err)
	}

	chains := make([]Chain, 0, len(raws))
	for _, raw := range raws {
		chain, err := decodeChain(raw)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

// CreateNetworkFunctionChain creates a single-function chain on a cluster
// whose category filter selects VMs tagged CategoryName=CategoryValue.
func (c *RealClient) CreateNetworkFunctionChain(ctx context.Context, opts ChainCreateOpts) (*Chain, error) {
	cluster := Reference{Kind: "cluster", Name: opts.ClusterName, UUID: opts.ClusterUUID}
	params := map[string][]string{opts.CategoryName: {opts.CategoryValue}}

	body := map[string]any{
		"api_version": chainAPIVersion,
		"metadata": map[string]any{
			"kind": "network_function_chain",
		},
		"spec": map[string]any{
			"name":              opts.Name,
			"cluster_reference": cluster,
			"resources": map[string]any{
				"network_function_list": []map[string]any{{
					"network_function_type": opts.FunctionType,
					"category_filter": map[string]any{
						"type":   "CATEGORIES_MATCH_ANY",
						"params": params,
					},
				}},
			},
		},
	}

	resp, err := c.mutate(ctx, http.MethodPost, "network_function_chains", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create network function chain on cluster %s: %w", opts.ClusterName, err)
	}

	return &Chain{
		UUID:           resp.Metadata.UUID,
		Name:           opts.Name,
		Cluster:        cluster,
		CategoryFilter: params,
	}, nil
}
