// Package provider declares the network function provider in Prism Central.
//
// It makes sure the provider category value exists, then creates one network
// function chain per target cluster whose category filter selects that value.
// Chains are created on every run; existing ones only produce a warning.
package provider
