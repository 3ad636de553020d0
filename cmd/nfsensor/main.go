// Package main is the entry point for the nfsensor CLI.
//
// nfsensor prepares a Nutanix AHV environment, through the Prism Central v3
// API, for a network sensor that receives mirrored traffic. The work is
// split in three independently runnable stages:
//
//	nfsensor provider   install the provider category and network function chains
//	nfsensor sensor     tag the sensor VM with the provider category value
//	nfsensor network    attach the chains to the subnets of a VLAN
//
// Every stage supports --test, which connects and reports what would change
// without mutating anything.
//
// For detailed usage information, run:
//
//	nfsensor --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/nfsensor/cmd/nfsensor/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
