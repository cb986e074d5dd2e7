package events

import "context"

// NoopPublisher discards every event. The importer falls back to it when
// SALES_NATS_URL is unset.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (*NoopPublisher) Close() error { return nil }
