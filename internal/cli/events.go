package cli

import (
	"context"
	"fmt"
	"time"

	"henna-assistant-be/pkg/events"
	pktNats "henna-assistant-be/pkg/nats"

	"github.com/spf13/cobra"
)

func newEventsCommand(a *app) *cobra.Command {
	var natsURL, durable string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail assistant events published to NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if natsURL == "" {
				natsURL = a.cfg.App.NatsURL
			}
			if natsURL == "" {
				return fmt.Errorf("no NATS url: pass --nats or set NATS_URL")
			}

			sub, err := pktNats.NewSubscriber(natsURL, pktNats.WithLogger(a.log.Zap()), pktNats.WithName("henna-chat"))
			if err != nil {
				return err
			}
			defer sub.Close()

			out := cmd.OutOrStdout()
			err = sub.Subscribe(cmd.Context(), pktNats.SubjectPrefix+">", durable, func(ctx context.Context, e events.Event) error {
				headerColor.Fprintf(out, "%s ", e.Timestamp().Local().Format(time.TimeOnly))
				faqColor.Fprintf(out, "%-18s", e.EventType())
				fmt.Fprintf(out, " %v\n", e.Payload())
				return nil
			})
			if err != nil {
				return err
			}

			noticeColor.Fprintln(out, "Listening for events, Ctrl+C to stop.")
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS server url (defaults to NATS_URL)")
	cmd.Flags().StringVar(&durable, "durable", "", "durable consumer name to resume from")
	return cmd
}
