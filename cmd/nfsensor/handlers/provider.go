package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/nfsensor/internal/provisioning"
	"github.com/imamik/nfsensor/internal/provisioning/provider"
)

var newProviderProvisioner = func(clusterName string) provisioning.Phase {
	return provider.NewProvisioner(clusterName)
}

// Provider handles the provider command.
func Provider(ctx context.Context, opts Options, clusterName string) error {
	target := "every cluster"
	if clusterName != "" {
		target = fmt.Sprintf("cluster %q", clusterName)
	}
	return runStage(ctx, opts, stageRun{
		phase:  newProviderProvisioner(clusterName),
		prompt: "Create the provider category and a network function chain in " + target + "?",
	})
}
