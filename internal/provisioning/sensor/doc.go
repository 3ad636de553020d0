// Package sensor tags the sensor VM with the network function provider
// category value, so that the provider's chains select its traffic.
package sensor
