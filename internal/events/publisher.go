package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	id "kycshare/pkg/domain"
)

// Store persists the append-only event journal.
//
// Error Contract:
//   - Append returns nil on success or a wrapped error on failure
//   - ListByCustomer returns events in append order
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]Event, error)
}

// Sink forwards events to an external broker. Delivery is best-effort; the
// journal is the source of truth.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher captures ledger observations. It is append-only and uses the
// journal store for persistence so tests can swap sinks easily.
type Publisher struct {
	store  Store
	sink   Sink
	events chan Event
	wg     sync.WaitGroup
	logger *slog.Logger
	async  bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithSink attaches a broker sink that receives every journaled event.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) {
		p.sink = sink
	}
}

// WithAsyncBuffer enables async processing with the specified buffer size.
// Events are queued and persisted in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan Event, size)
			p.async = true
		}
	}
}

// WithPublisherLogger sets a logger for async error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

// processEvents runs in a goroutine and persists events from the channel.
func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for event := range p.events {
		p.deliver(context.Background(), event)
	}
}

func (p *Publisher) deliver(ctx context.Context, event Event) {
	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.Error("failed to journal ledger event",
				"error", err,
				"type", event.Type,
				"customer_id", event.CustomerID,
			)
		}
	}
	if p.sink == nil {
		return
	}
	if err := p.sink.Publish(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.Warn("failed to publish ledger event to sink",
				"error", err,
				"type", event.Type,
				"customer_id", event.CustomerID,
			)
		}
	}
}

// Close shuts down the async publisher and waits for pending events to drain.
func (p *Publisher) Close() {
	if p.async && p.events != nil {
		close(p.events)
		p.wg.Wait()
	}
}

// Emit journals the event and forwards it to the sink when configured.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.async {
		// Non-blocking send; drop event if buffer is full to avoid blocking hot path
		select {
		case p.events <- event:
		default:
			if p.logger != nil {
				p.logger.Warn("event buffer full, event dropped",
					"type", event.Type,
					"customer_id", event.CustomerID,
				)
			}
		}
		return
	}
	p.deliver(ctx, event)
}

// List returns the journaled events for one customer in append order.
func (p *Publisher) List(ctx context.Context, customerID id.CustomerID) ([]Event, error) {
	return p.store.ListByCustomer(ctx, customerID)
}
