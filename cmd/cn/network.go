package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alfredjeanlab/corpnet/internal/config"
	"github.com/alfredjeanlab/corpnet/internal/events"
	"github.com/alfredjeanlab/corpnet/internal/export"
	"github.com/alfredjeanlab/corpnet/internal/graph"
	"github.com/alfredjeanlab/corpnet/internal/model"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:     "network <query-or-number>",
	Short:   "Build a shared-officer network around a company",
	GroupID: "analysis",
	Long: `network resolves a seed company (by name search or company number), fetches
its officers and persons with significant control, then expands through each
officer's other appointments to find companies sharing board members. The
result is a bounded, deterministic graph.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		maxCompanies, _ := cmd.Flags().GetInt("max-companies")
		maxOfficers, _ := cmd.Flags().GetInt("max-officers")
		workers, _ := cmd.Flags().GetInt("workers")

		builder := graph.NewBuilder(chClient)
		network, err := builder.Build(context.Background(), query, graph.Options{
			MaxCompanies: maxCompanies,
			MaxOfficers:  maxOfficers,
			Workers:      workers,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := exportNetwork(cmd, network); err != nil {
			return err
		}

		if jsonOutput {
			printJSON(network)
		} else {
			printNetworkSummary(network)
		}
		return nil
	},
}

// exportNetwork writes the network to the destinations selected by flags.
func exportNetwork(cmd *cobra.Command, network *model.Network) error {
	outDir, _ := cmd.Flags().GetString("out")
	s3Bucket, _ := cmd.Flags().GetString("s3-bucket")

	var dests []export.Destination
	if outDir != "" {
		d, err := export.NewFileDestination(outDir)
		if err != nil {
			return err
		}
		dests = append(dests, d)
	}
	if s3Bucket != "" {
		prefix, _ := cmd.Flags().GetString("s3-prefix")
		region, _ := cmd.Flags().GetString("s3-region")
		endpoint, _ := cmd.Flags().GetString("s3-endpoint")
		d, err := export.NewS3Destination(context.Background(), s3Bucket, prefix, region, endpoint)
		if err != nil {
			return err
		}
		dests = append(dests, d)
	}

	if len(dests) == 0 {
		return nil
	}

	publisher := exportPublisher()
	defer publisher.Close()

	for _, d := range dests {
		key, size, err := export.Network(context.Background(), d, network)
		if err != nil {
			return fmt.Errorf("export network: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", d.Describe(key), size)

		_ = publisher.Publish(context.Background(), events.TopicExportCompleted, events.ExportCompleted{
			BuildID:     network.Meta.BuildID,
			Destination: d.Describe(key),
			Bytes:       size,
		})
	}
	return nil
}

// exportPublisher returns a NATS publisher when a bus is configured, and a
// no-op otherwise. Export notifications are best-effort.
func exportPublisher() events.Publisher {
	url := defaultNATSURL()
	if url == "" {
		return &events.NoopPublisher{}
	}
	pub, err := events.NewNATSPublisher(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: NATS unavailable, export event skipped: %v\n", err)
		return &events.NoopPublisher{}
	}
	return pub
}

func init() {
	bucket, endpoint, region, prefix := config.ExportDefaults()

	networkCmd.Flags().Int("max-companies", 10, "maximum companies to expand to")
	networkCmd.Flags().Int("max-officers", 10, "maximum officers to follow from the seed")
	networkCmd.Flags().Int("workers", 4, "concurrent appointment fetches")
	networkCmd.Flags().String("out", "", "directory to write the network JSON to")
	networkCmd.Flags().String("s3-bucket", bucket, "S3 bucket to upload the network JSON to")
	networkCmd.Flags().String("s3-prefix", prefix, "S3 key prefix")
	networkCmd.Flags().String("s3-region", region, "S3 region")
	networkCmd.Flags().String("s3-endpoint", endpoint, "custom S3 endpoint (for MinIO and similar)")
}
