package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/nfsensor/cmd/nfsensor/handlers"
)

// Sensor returns the sensor command.
func Sensor(opts *handlers.Options) *cobra.Command {
	var vmName string

	cmd := &cobra.Command{
		Use:   "sensor",
		Short: "Tag the sensor VM with the provider category value",
		Long: `Sensor looks up the sensor VM by exact name and adds the provider category
value to it. A VM that already carries the value is left untouched.

Example:
  nfsensor sensor --vm-name vectra-sensor-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Sensor(cmd.Context(), *opts, vmName)
		},
	}

	cmd.Flags().StringVar(&vmName, "vm-name", "", "Name of the sensor VM (required)")
	_ = cmd.MarkFlagRequired("vm-name")

	return cmd
}
