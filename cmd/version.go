package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gofluid",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gofluid v%s\n", version.Version)
		fmt.Println("Fluid Mechanics Calculator Suite")
		fmt.Printf("Built %s from commit %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
