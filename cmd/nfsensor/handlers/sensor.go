package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/provisioning"
	"github.com/imamik/nfsensor/internal/provisioning/sensor"
)

var newSensorProvisioner = func(vmName string) provisioning.Phase {
	return sensor.NewProvisioner(vmName)
}

// Sensor handles the sensor command.
func Sensor(ctx context.Context, opts Options, vmName string) error {
	if strings.TrimSpace(vmName) == "" {
		return &config.ConfigurationError{Field: "--vm-name", Reason: "is required"}
	}
	return runStage(ctx, opts, stageRun{
		phase:  newSensorProvisioner(vmName),
		prompt: fmt.Sprintf("Tag VM %q with the network function provider category?", vmName),
	})
}
