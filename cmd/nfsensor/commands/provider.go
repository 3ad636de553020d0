package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/nfsensor/cmd/nfsensor/handlers"
)

// Provider returns the provider command.
//
// The provider command registers the provider category value and creates a
// network function chain in every cluster, or only in the one named by
// --cluster.
func Provider(opts *handlers.Options) *cobra.Command {
	var clusterName string

	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Install the network function provider category and chains",
		Long: `Provider registers the provider category value in Prism Central and creates
one network function chain per cluster that selects it.

Chains are not deduplicated: running this command twice creates a second
chain in each cluster. A warning is printed when a matching chain exists.

Example:
  nfsensor provider --test
  nfsensor provider --cluster prod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provider(cmd.Context(), *opts, clusterName)
		},
	}

	cmd.Flags().StringVar(&clusterName, "cluster", "", "Only create a chain in the cluster with this exact name")

	return cmd
}
