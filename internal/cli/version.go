package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the ftag release version.
const Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ftag version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ftag v%s\n", Version)
			return nil
		},
	}
}
