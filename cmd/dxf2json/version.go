package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of dxf2json",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dxf2json %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
