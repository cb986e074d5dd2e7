package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/salesdash/internal/events"
	"github.com/alfredjeanlab/salesdash/internal/ui"
)

var eventsCmd = &cobra.Command{
	Use:               "events",
	Short:             "Follow import events on the NATS bus",
	GroupID:           "data",
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		topic, _ := cmd.Flags().GetString("topic")
		if natsURL == "" {
			return fmt.Errorf("--nats-url or SALES_NATS_URL is required")
		}

		sub, err := events.NewNATSSubscriber(natsURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintln(os.Stderr, ui.RenderMuted("Listening on "+topic+" (Ctrl-C to stop)"))
		return followEvents(ctx, sub, topic, os.Stdout)
	},
}

// followEvents prints every message on topic until ctx is done or the
// subscription channel closes.
func followEvents(ctx context.Context, sub events.Subscriber, topic string, out io.Writer) error {
	ch, cancel, err := sub.Subscribe(topic)
	if err != nil {
		return err
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if jsonOutput {
				fmt.Fprintln(out, string(msg.Data))
				continue
			}
			fmt.Fprintf(out, "%s %s\n", ui.RenderHeader(msg.Topic), string(msg.Data))
		}
	}
}

func init() {
	eventsCmd.Flags().String("nats-url", os.Getenv("SALES_NATS_URL"), "NATS server URL")
	eventsCmd.Flags().String("topic", events.TopicAll, "subject to follow (NATS wildcards allowed)")
}
