package cmd

import (
	"fmt"

	"github.com/mittwald/ai-alpha/pkg/api"
	"github.com/spf13/cobra"
)

var (
	Version string
	Commit  string
	BuiltAt string
)

func init() {
	rootCmd.AddCommand(version)
}

var version = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ai-alpha",
	Long:  `All software has versions. This is ai-alpha's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "AI-Alpha, version %s (commit %s), built at %s; serving API version %s\n", Version, Commit, BuiltAt, api.Version)
	},
}
