package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at release time via -ldflags; "dev" for local builds.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the jobsift version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
