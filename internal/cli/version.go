package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the registrar release, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/registrar/internal/cli.Version=...".
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/registrar"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the registrar version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "registrar v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
