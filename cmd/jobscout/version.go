package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jobscout version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("jobscout", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
