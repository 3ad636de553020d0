// Package prism provides a client for the Nutanix Prism Central v3 REST API,
// limited to the resources needed to wire a network function provider into
// cluster networking.
//
// # Architecture
//
// The package is organized into resource-specific files:
//
//   - client.go: Interfaces consumed by the provisioning stages
//   - real_client.go: HTTP client construction, request plumbing and pagination
//   - types.go: Entity model and typed views of Prism resources
//   - category.go: Category keys and values
//   - cluster.go: Cluster enumeration
//   - chain.go: Network function chains
//   - vm.go: Virtual machines and their categories
//   - subnet.go: Subnets and their chain reference
//   - task.go: Asynchronous task tracking
//   - errors.go: API and connectivity errors, classification helpers
//   - mock.go: Function-field mock of PrismManager for tests
//
// # Behaviour
//
//   - Connect-once: [RealClient.Connect] checks reachability and credentials
//     and returns a [ConnectivityError] on failure.
//   - No retries: a failed request is returned to the caller immediately.
//     Only task status is polled, until the task reaches a terminal state.
//   - Read-only mode: a client built with [WithReadOnly] refuses every
//     mutating request with [ErrReadOnly].
//   - Updates are read-modify-write: the full entity returned by a GET is sent
//     back with the status section removed, so fields this package does not
//     model are preserved.
//
// # Example Usage
//
//	client := prism.NewRealClient(cfg)
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	clusters, err := client.ListClusters(ctx, "")
package prism
