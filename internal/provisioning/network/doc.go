// Package network attaches subnets of a VLAN to the network function chain
// of their cluster.
//
// Subnets are matched to chains by cluster UUID. A cluster with more than
// one chain selecting the provider value is a configuration error for all of
// its subnets; none of them is assigned an arbitrary chain.
package network
