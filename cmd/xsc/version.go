package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xsclang/xsc"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the compiler version",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "xsc version %s\n", xsc.Version)
	return nil
}
