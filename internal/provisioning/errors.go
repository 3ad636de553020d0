package provisioning

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed stage errors via errors.Is.
var (
	ErrClusterNotFound  = errors.New("cluster not found")
	ErrVMNotFound       = errors.New("vm not found")
	ErrNoChainsFound    = errors.New("no network function chains found")
	ErrProviderCategory = errors.New("provider category could not be created")
	ErrVerification     = errors.New("provider category verification failed")
	ErrUpdate           = errors.New("vm update failed")
	ErrNetworkUpdate    = errors.New("network update failed")
	ErrDuplicateChain   = errors.New("duplicate network function chain")
)

// ClusterNotFoundError reports that no target cluster was found. An empty
// Name means Prism Central has no clusters at all.
type ClusterNotFoundError struct {
	Name string
}

func (e *ClusterNotFoundError) Error() string {
	if e.Name == "" {
		return "no clusters registered in Prism Central"
	}
	return fmt.Sprintf("cluster %q not found", e.Name)
}

func (e *ClusterNotFoundError) Is(target error) bool { return target == ErrClusterNotFound }

// VMNotFoundError reports that no VM carries the requested name.
type VMNotFoundError struct {
	Name string
}

func (e *VMNotFoundError) Error() string {
	return fmt.Sprintf("vm %q not found", e.Name)
}

func (e *VMNotFoundError) Is(target error) bool { return target == ErrVMNotFound }

// NoChainsFoundError reports that no chain selects the provider category
// value. It is a clean outcome: there is nothing to attach.
type NoChainsFoundError struct {
	CategoryName  string
	CategoryValue string
}

func (e *NoChainsFoundError) Error() string {
	return fmt.Sprintf("no network function chains found for %s=%s", e.CategoryName, e.CategoryValue)
}

func (e *NoChainsFoundError) Is(target error) bool { return target == ErrNoChainsFound }

// ProviderCategoryError reports a failure to read or create the provider
// category.
type ProviderCategoryError struct {
	Name  string
	Value string
	Op    string
	Err   error
}

func (e *ProviderCategoryError) Error() string {
	return fmt.Sprintf("failed to %s provider category %s=%s: %v", e.Op, e.Name, e.Value, e.Err)
}

func (e *ProviderCategoryError) Unwrap() error { return e.Err }

func (e *ProviderCategoryError) Is(target error) bool { return target == ErrProviderCategory }

// VerificationError reports that the provider category is absent right
// after it was created.
type VerificationError struct {
	Name  string
	Value string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("provider category %s=%s not found after creation", e.Name, e.Value)
}

func (e *VerificationError) Is(target error) bool { return target == ErrVerification }

// UpdateError reports that the sensor VM could not be tagged.
type UpdateError struct {
	VM   string
	UUID string
	Err  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to attach provider category to vm %s (%s): %v", e.VM, e.UUID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

func (e *UpdateError) Is(target error) bool { return target == ErrUpdate }

// NetworkUpdateError reports that a subnet could not be attached to its
// cluster's chain.
type NetworkUpdateError struct {
	Subnet string
	UUID   string
	Err    error
}

func (e *NetworkUpdateError) Error() string {
	return fmt.Sprintf("failed to attach network function chain to subnet %s (%s): %v", e.Subnet, e.UUID, e.Err)
}

func (e *NetworkUpdateError) Unwrap() error { return e.Err }

func (e *NetworkUpdateError) Is(target error) bool { return target == ErrNetworkUpdate }

// DuplicateChainError reports a cluster with more than one chain selecting
// the provider value, which makes the target chain ambiguous.
type DuplicateChainError struct {
	ClusterUUID string
	ClusterName string
	ChainUUIDs  []string
}

func (e *DuplicateChainError) Error() string {
	return fmt.Sprintf("cluster %s (%s) has %d matching network function chains: %s",
		e.ClusterName, e.ClusterUUID, len(e.ChainUUIDs), strings.Join(e.ChainUUIDs, ", "))
}

func (e *DuplicateChainError) Is(target error) bool { return target == ErrDuplicateChain }
