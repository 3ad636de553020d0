package prism

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Entity is the full v3 representation of a resource. Metadata and Spec
// are kept as generic maps so that an update can send back every field,
// including the ones this package does not model.
type Entity struct {
	APIVersion string         `json:"api_version,omitempty"`
	Metadata   map[string]any `json:"metadata"`
	Spec       map[string]any `json:"spec"`
	Status     map[string]any `json:"status,omitempty"`
}

// forUpdate returns a copy of the entity suitable for a PUT body: the
// status section is read-only in the v3 API and must be dropped.
func (e *Entity) forUpdate() *Entity {
	return &Entity{
		APIVersion: e.APIVersion,
		Metadata:   e.Metadata,
		Spec:       e.Spec,
	}
}

// Reference points at another Prism entity.
type Reference struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	UUID string `json:"uuid"`
}

// CategoryValue is one value registered under a category key.
type CategoryValue struct {
	Name          string `json:"name"`
	Value         string `json:"value"`
	Description   string `json:"description,omitempty"`
	SystemDefined bool   `json:"system_defined"`
}

// Cluster is a Prism Element cluster registered with Prism Central.
type Cluster struct {
	UUID     string
	Name     string
	Services []string
}

// IsPrismCentral reports whether the entry is Prism Central itself, which
// the clusters list includes but which cannot host network function chains.
func (c Cluster) IsPrismCentral() bool {
	return slices.Contains(c.Services, "PRISM_CENTRAL")
}

// Chain is a network function chain scoped to one cluster.
type Chain struct {
	UUID         string
	Name         string
	Cluster      Reference
	CreationTime time.Time
	// CategoryFilter holds the category_filter params of every network
	// function in the chain, keyed by category name.
	CategoryFilter map[string][]string
}

// HasProviderValue reports whether the chain selects the given category value.
func (c Chain) HasProviderValue(name, value string) bool {
	return slices.Contains(c.CategoryFilter[name], value)
}

// VM is a virtual machine with its categories.
type VM struct {
	UUID                 string
	Name                 string
	Cluster              *Reference
	Categories           map[string]string
	CategoriesMapping    map[string][]string
	UseCategoriesMapping bool

	raw *Entity
}

// HasCategory reports whether the VM carries name=value.
func (v *VM) HasCategory(name, value string) bool {
	if v.Categories[name] == value {
		return true
	}
	return slices.Contains(v.CategoriesMapping[name], value)
}

// Subnet is a logical network with its optional chain reference.
type Subnet struct {
	UUID           string
	Name           string
	Cluster        Reference
	VLANID         *int
	ChainReference *Reference

	raw *Entity
}

// HasVLAN reports whether the subnet carries the given VLAN ID.
func (s *Subnet) HasVLAN(id int) bool {
	return s.VLANID != nil && *s.VLANID == id
}

// ValidUUID reports whether s is a well-formed UUID.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Wire formats.

type listMetadata struct {
	TotalMatches int `json:"total_matches"`
	Offset       int `json:"offset"`
	Length       int `json:"length"`
}

type listResponse struct {
	Metadata listMetadata      `json:"metadata"`
	Entities []json.RawMessage `json:"entities"`
}

type metadataWire struct {
	UUID                 string              `json:"uuid"`
	CreationTime         string              `json:"creation_time"`
	Categories           map[string]string   `json:"categories"`
	CategoriesMapping    map[string][]string `json:"categories_mapping"`
	UseCategoriesMapping bool                `json:"use_categories_mapping"`
}

type clusterWire struct {
	Metadata metadataWire `json:"metadata"`
	Spec     struct {
		Name string `json:"name"`
	} `json:"spec"`
	Status struct {
		Resources struct {
			Config struct {
				ServiceList []string `json:"service_list"`
			} `json:"config"`
		} `json:"resources"`
	} `json:"status"`
}

type chainWire struct {
	Metadata metadataWire `json:"metadata"`
	Spec     struct {
		Name             string    `json:"name"`
		ClusterReference Reference `json:"cluster_reference"`
		Resources        struct {
			NetworkFunctionList []struct {
				NetworkFunctionType string `json:"network_function_type"`
				CategoryFilter      struct {
					Type   string              `json:"type"`
					Params map[string][]string `json:"params"`
				} `json:"category_filter"`
			} `json:"network_function_list"`
		} `json:"resources"`
	} `json:"spec"`
}

type vmWire struct {
	Metadata metadataWire `json:"metadata"`
	Spec     struct {
		Name             string     `json:"name"`
		ClusterReference *Reference `json:"cluster_reference"`
	} `json:"spec"`
}

type subnetWire struct {
	Metadata metadataWire `json:"metadata"`
	Spec     struct {
		Name             string    `json:"name"`
		ClusterReference Reference `json:"cluster_reference"`
		Resources        struct {
			VLANID                        *int       `json:"vlan_id"`
			NetworkFunctionChainReference *Reference `json:"network_function_chain_reference"`
		} `json:"resources"`
	} `json:"spec"`
}

// mutationResponse is returned by v3 create and update calls.
type mutationResponse struct {
	Status struct {
		State            string `json:"state"`
		ExecutionContext struct {
			TaskUUID string `json:"task_uuid"`
		} `json:"execution_context"`
		MessageList []struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		} `json:"message_list"`
	} `json:"status"`
	Metadata metadataWire `json:"metadata"`
}

func decodeCluster(raw json.RawMessage) (Cluster, error) {
	var w clusterWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Cluster{}, fmt.Errorf("failed to decode cluster: %w", err)
	}
	return Cluster{
		UUID:     w.Metadata.UUID,
		Name:     w.Spec.Name,
		Services: w.Status.Resources.Config.ServiceList,
	}, nil
}

func decodeChain(raw json.RawMessage) (Chain, error) {
	var w chainWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Chain{}, fmt.Errorf("failed to decode network function chain: %w", err)
	}

	filter := make(map[string][]string)
	for _, fn := range w.Spec.Resources.NetworkFunctionList {
		for name, values := range fn.CategoryFilter.Params {
			filter[name] = append(filter[name], values...)
		}
	}

	chain := Chain{
		UUID:           w.Metadata.UUID,
		Name:           w.Spec.Name,
		Cluster:        w.Spec.ClusterReference,
		CategoryFilter: filter,
	}
	if t, err := time.Parse(time.RFC3339, w.Metadata.CreationTime); err == nil {
		chain.CreationTime = t
	}
	return chain, nil
}

func decodeVM(raw json.RawMessage) (*VM, error) {
	var w vmWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to decode vm: %w", err)
	}
	entity, err := decodeEntity(raw)
	if err != nil {
		return nil, err
	}
	return &VM{
		UUID:                 w.Metadata.UUID,
		Name:                 w.Spec.Name,
		Cluster:              w.Spec.ClusterReference,
		Categories:           w.Metadata.Categories,
		CategoriesMapping:    w.Metadata.CategoriesMapping,
		UseCategoriesMapping: w.Metadata.UseCategoriesMapping,
		raw:                  entity,
	}, nil
}

func decodeSubnet(raw json.RawMessage) (*Subnet, error) {
	var w subnetWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to decode subnet: %w", err)
	}
	entity, err := decodeEntity(raw)
	if err != nil {
		return nil, err
	}
	return &Subnet{
		UUID:           w.Metadata.UUID,
		Name:           w.Spec.Name,
		Cluster:        w.Spec.ClusterReference,
		VLANID:         w.Spec.Resources.VLANID,
		ChainReference: w.Spec.Resources.NetworkFunctionChainReference,
		raw:            entity,
	}, nil
}

// decodeEntity keeps numbers as json.Number so that a round trip does not
// turn integers into floats.
func decodeEntity(raw json.RawMessage) (*Entity, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var e Entity
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	if e.Spec == nil {
		e.Spec = make(map[string]any)
	}
	return &e, nil
}

// childMap returns m[key] as a map, creating it when absent.
func childMap(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	child := make(map[string]any)
	m[key] = child
	return child
}
