// Package config defines the runtime configuration shared by every nfsensor
// subcommand.
//
// Prism Central credentials always come from the environment (PC_IP,
// PC_USERNAME, PC_PASSWORD). Everything else has a default and can be
// overridden by an optional YAML file (nfsensor.yaml) and by NFSENSOR_*
// environment variables for timeouts. A missing or empty credential is
// reported as a [ConfigurationError] before any network call is made.
package config
