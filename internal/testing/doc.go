// Package testing provides test utilities, builders, and fakes for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - PrismFake: Stateful in-memory Prism Central that counts mutating calls
//   - RecordingObserver: Observer that keeps events for assertions
//   - MockObjectStore: testify mock for report uploads
//
// Usage:
//
//	fake := testing.NewPrismFake()
//	alpha := fake.AddCluster("alpha")
//	fake.AddSubnet("vlan-100", alpha, 100)
//
//	cfg := testing.NewConfigBuilder().Build()
//	ctx, observer := testing.NewStageContext(t, cfg, fake, "network", false)
package testing
