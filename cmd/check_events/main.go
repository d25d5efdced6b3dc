package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	spannerDB := flag.String("database", cfg.SpannerDB, "Spanner database")
	status := flag.String("status", "", "Only show events with this status (pending, completed, failed)")
	limit := flag.Int64("limit", 10, "Number of events to show")
	flag.Parse()

	if *spannerDB == "" {
		log.Fatal("-database flag or SPANNER_DATABASE is required")
	}
	switch *status {
	case "", m_outbox.StatusPending, m_outbox.StatusCompleted, m_outbox.StatusFailed:
	default:
		log.Fatalf("unknown status %q", *status)
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, *spannerDB)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	events, err := outbox.NewStore(client).ListRecent(ctx, *status, *limit)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}
	if err := printEvents(os.Stdout, events); err != nil {
		log.Fatalf("Failed to print events: %v", err)
	}
}

func printEvents(out io.Writer, events []*m_outbox.Data) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(out, "No events found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tTYPE\tAGGREGATE\tSTATUS\tRETRIES\tEVENT\tERROR")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%d\t%s\t%s\n",
			ev.CreatedAt.UTC().Format(time.RFC3339),
			ev.EventType,
			ev.AggregateType, ev.AggregateID,
			ev.Status,
			ev.RetryCount,
			ev.EventID,
			oneLine(ev.ErrorMessage.StringVal))
	}
	return w.Flush()
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
