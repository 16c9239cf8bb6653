package main

import (
	"fmt"

	"github.com/aretw0/sileo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sileo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sileo version %s\n", sileo.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
