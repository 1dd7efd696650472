package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
	"github.com/alfredjeanlab/corpnet/internal/ui"
	"github.com/spf13/cobra"
)

var (
	apiKey     string
	baseURL    string
	jsonOutput bool

	chClient companieshouse.Client
)

// resolveAPIKey picks the API key: flag, then environment, then the active
// profile.
func resolveAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	if k := os.Getenv("CORPNET_API_KEY"); k != "" {
		return k
	}
	return activeProfileAPIKey()
}

// resolveBaseURL picks the API base URL: flag, then environment, then the
// active profile, then the live or sandbox default.
func resolveBaseURL() string {
	if baseURL != "" {
		return baseURL
	}
	if u := os.Getenv("CORPNET_API_BASE_URL"); u != "" {
		return u
	}
	if u := activeProfileBaseURL(); u != "" {
		return u
	}
	if sandbox, _ := strconv.ParseBool(os.Getenv("CORPNET_SANDBOX")); sandbox {
		return companieshouse.SandboxBaseURL
	}
	return companieshouse.LiveBaseURL
}

var rootCmd = &cobra.Command{
	Use:   "cn <command>",
	Short: "Explore UK companies and their officer networks",
	Long: `cn looks up companies, officers, and persons with significant control in the
UK Companies House register, and builds shared-officer network graphs from
live registry data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Init(jsonOutput)

		key := resolveAPIKey()
		if key == "" {
			return fmt.Errorf("no API key: set --api-key, CORPNET_API_KEY, or add a profile with 'cn profile add'")
		}
		chClient = companieshouse.NewHTTPClient(resolveBaseURL(), key)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if chClient != nil {
			chClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Companies House API key")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (overrides sandbox/live selection)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "lookups", Title: "Lookups:"},
		&cobra.Group{ID: "analysis", Title: "Analysis:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Lookups
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(officersCmd)
	rootCmd.AddCommand(pscsCmd)

	// Analysis
	rootCmd.AddCommand(networkCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
