package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"mediascribe/internal/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}
