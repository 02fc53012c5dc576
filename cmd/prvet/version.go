package main

import (
	"fmt"

	"github.com/prvet-dev/prvet/internal/version"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show prvet version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("prvet %s\n", version.Version)
		},
	}
}
