package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/idx"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of idx-api",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "idx-api version %s\n", strings.TrimSpace(idx.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
