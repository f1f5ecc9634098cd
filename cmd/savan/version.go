package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drwadu/savan"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of savan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("savan version %s\n", strings.TrimSpace(savan.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
