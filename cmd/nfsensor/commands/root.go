// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/nfsensor/cmd/nfsensor/handlers"
)

// Root returns the root command for the nfsensor CLI.
//
// Flags shared by the three stages are persistent and bound once here.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:   "nfsensor",
		Short: "Prepare Nutanix AHV for a network traffic sensor",
		Long: `nfsensor configures Prism Central so that a network sensor VM receives
mirrored traffic. Run the stages in order: provider, sensor, network.

Prism Central credentials are read from PC_IP, PC_USERNAME and PC_PASSWORD.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: nfsensor.yaml if present)")
	flags.StringVar(&opts.LogFormat, "log-format", handlers.LogFormatText, "Log format: text or json")
	flags.StringVar(&opts.ReportFile, "report-file", "", "Write the run report to this file (.json, .yaml or .yml)")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write API metrics in Prometheus textfile format")
	flags.BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation before making changes")
	flags.BoolVar(&opts.Test, "test", false, "Connect and report what would change, without making changes")

	// Stage commands
	cmd.AddCommand(Provider(opts))
	cmd.AddCommand(Sensor(opts))
	cmd.AddCommand(Network(opts))

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
