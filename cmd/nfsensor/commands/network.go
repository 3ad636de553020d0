package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/nfsensor/cmd/nfsensor/handlers"
)

// Network returns the network command.
func Network(opts *handlers.Options) *cobra.Command {
	var vlanID int

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Attach network function chains to the subnets of a VLAN",
		Long: `Network finds the provider's chains, then attaches to every subnet on the
given VLAN the chain of the subnet's own cluster. Subnets in clusters
without a chain are left alone, as are subnets that already reference a chain.

Example:
  nfsensor network --vlan-id 100 --test`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Network(cmd.Context(), *opts, vlanID)
		},
	}

	cmd.Flags().IntVar(&vlanID, "vlan-id", 0, "VLAN ID whose subnets receive the chain (required)")
	_ = cmd.MarkFlagRequired("vlan-id")

	return cmd
}
