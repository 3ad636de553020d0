package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/provisioning"
	"github.com/imamik/nfsensor/internal/provisioning/network"
)

// maxVLANID is the highest VLAN ID usable on AHV subnets.
const maxVLANID = 4094

var newNetworkProvisioner = func(vlanID int) provisioning.Phase {
	return network.NewProvisioner(vlanID)
}

// Network handles the network command.
func Network(ctx context.Context, opts Options, vlanID int) error {
	if vlanID < 0 || vlanID > maxVLANID {
		return &config.ConfigurationError{Field: "--vlan-id", Reason: fmt.Sprintf("must be between 0 and %d", maxVLANID)}
	}
	return runStage(ctx, opts, stageRun{
		phase:  newNetworkProvisioner(vlanID),
		prompt: fmt.Sprintf("Attach network function chains to the subnets on VLAN %d?", vlanID),
	})
}
