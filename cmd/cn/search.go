package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search companies by name or number",
	GroupID: "lookups",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		max, _ := cmd.Flags().GetInt("max")

		companies, err := chClient.SearchCompanies(context.Background(), query, max)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(companies)
		} else {
			printCompanyListTable(companies)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("max", 20, "maximum number of results")
}
