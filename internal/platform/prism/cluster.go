package prism

import (
	"context"
	"fmt"
)

// ListClusters returns the registered clusters, including Prism Central
// itself. A non-empty name narrows the query server-side.
func (c *RealClient) ListClusters(ctx context.Context, name string) ([]Cluster, error) {
	filter := ""
	if name != "" {
		filter = equalsFilter("name", name)
	}

	raws, err := c.list(ctx, "clusters/list", "cluster", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	clusters := make([]Cluster, 0, len(raws))
	for _, raw := range raws {
		cluster, err := decodeCluster(raw)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}
