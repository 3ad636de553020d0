package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// prismAPI is the Prism Central API generation the stages talk to.
const prismAPI = "v3"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the build metadata injected by main.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the version command.
func Version() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build and API version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}
			fmt.Fprintf(out, "nfsensor %s (commit %s, built %s)\n", version, commit, date)
			fmt.Fprintf(out, "  prism api: %s\n", prismAPI)
			fmt.Fprintf(out, "  go:        %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
