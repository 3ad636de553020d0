// Package provisioning provides shared types and orchestration for the
// stages that wire a network function provider into Prism Central.
//
// # Subpackages
//
//   - provider/: category value and per-cluster network function chains
//   - sensor/: provider category on the sensor VM
//   - network/: chain reference on subnets of a VLAN
//
// # Core Types
//
// Context carries configuration, the Prism client, the observer and the report.
// Phase defines a stage with Name() and Provision() methods.
// Report accumulates per-item results; Report.Err decides the exit status.
package provisioning
