package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/hpkotak/termuxbud/cmd.version=v0.1.0" -o tb .
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tb version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(ioOut, "tb %s\n", version)
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(versionCmd)
}
