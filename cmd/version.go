package cmd

import (
	"fmt"

	"ovh-ddns/internal/pkg/version"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nCommit: %s\nBuilt: %s\n", version.String(), info.Commit, info.BuildDate)
		},
	}
}
