package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pscsCmd = &cobra.Command{
	Use:     "pscs <company-number>",
	Short:   "List persons with significant control over a company",
	GroupID: "lookups",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pscs, err := chClient.GetPSCs(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(pscs)
		} else {
			printPSCListTable(pscs)
		}
		return nil
	},
}
