package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alfredjeanlab/corpnet/internal/model"
	"github.com/spf13/cobra"
)

var officersCmd = &cobra.Command{
	Use:     "officers <company-number>",
	Short:   "List the officers of a company",
	GroupID: "lookups",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		activeOnly, _ := cmd.Flags().GetBool("active")

		officers, err := chClient.GetOfficers(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if activeOnly {
			var active []*model.Officer
			for _, o := range officers {
				if !o.Resigned() {
					active = append(active, o)
				}
			}
			officers = active
		}

		if jsonOutput {
			printJSON(officers)
		} else {
			printOfficerListTable(officers)
		}
		return nil
	},
}

func init() {
	officersCmd.Flags().Bool("active", false, "only show officers who have not resigned")
}
