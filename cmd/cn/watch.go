package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/alfredjeanlab/corpnet/internal/events"
	"github.com/alfredjeanlab/corpnet/internal/ui"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

func defaultNATSURL() string {
	if u := os.Getenv("CORPNET_NATS_URL"); u != "" {
		return u
	}
	return activeProfileNATSURL()
}

var watchCmd = &cobra.Command{
	Use:     "watch [<topic-pattern>]",
	Short:   "Tail corpnet events from NATS",
	GroupID: "system",
	Long: `watch subscribes to the event bus and prints events as they arrive.
The optional topic pattern supports NATS wildcards, e.g. "corpnet.network.*".
The default pattern matches everything.`,
	Args: cobra.MaximumNArgs(1),
	// No API client needed; watch only talks to NATS.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Init(jsonOutput)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "corpnet.>"
		if len(args) == 1 {
			pattern = args[0]
		}

		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = defaultNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL: set --nats, CORPNET_NATS_URL, or a profile nats_url")
		}

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.SubscribeMessages(pattern)
		if err != nil {
			return err
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "watching %s on %s\n", pattern, natsURL)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				printEvent(msg)
			}
		}
	},
}

// printEvent prints a single bus event, one line per event.
func printEvent(msg events.Message) {
	ts := time.Now().Format("15:04:05")
	if jsonOutput {
		fmt.Printf(`{"time":%q,"topic":%q,"event":%s}`+"\n", ts, msg.Topic, msg.Data)
		return
	}
	fmt.Printf("%s %s %s\n", ui.RenderMuted(ts), ui.RenderAccent(msg.Topic), msg.Data)
}

func init() {
	watchCmd.Flags().String("nats", "", "NATS server URL")
}
