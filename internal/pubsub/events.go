// Package pubsub is a small generic publish/subscribe broker. Documents use it
// to announce re-scans and the logger uses it to fan out entries.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	CreatedEvent   EventType = "created"   // something new exists (log entry, document)
	RescannedEvent EventType = "rescanned" // a document re-scanned some of its lines
	ReloadedEvent  EventType = "reloaded"  // a watched source was read again from disk
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed payloads.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
