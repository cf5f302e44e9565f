package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "kycshare/pkg/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) seen() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestPublisher_SyncDelivery(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{}
	p := NewPublisher(store, WithSink(sink))

	ctx := context.Background()
	p.Emit(ctx, NewKYCUpdateRequired("cust-1", time.Now()))
	p.Emit(ctx, NewDebtAlert("cust-1", "acct-a", "addr-a", "acct-b", 50, time.Now()))

	journaled, err := p.List(ctx, id.CustomerID("cust-1"))
	require.NoError(t, err)
	require.Len(t, journaled, 2)
	assert.Equal(t, TypeKYCUpdateRequired, journaled[0].Type)
	assert.Equal(t, TypeDebtAlert, journaled[1].Type)
	assert.Equal(t, int64(50), journaled[1].Value)

	assert.Len(t, sink.seen(), 2)
}

func TestPublisher_SinkFailureDoesNotDropJournal(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{err: errors.New("broker down")}
	p := NewPublisher(store, WithSink(sink))

	ctx := context.Background()
	p.Emit(ctx, NewKYCUpdateRequired("cust-1", time.Now()))

	journaled, err := p.List(ctx, id.CustomerID("cust-1"))
	require.NoError(t, err)
	assert.Len(t, journaled, 1)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{}
	p := NewPublisher(store, WithAsyncBuffer(16), WithSink(sink))

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		p.Emit(ctx, NewKYCUpdateRequired("cust-1", time.Now()))
	}
	p.Close()

	journaled, err := store.ListByCustomer(ctx, id.CustomerID("cust-1"))
	require.NoError(t, err)
	assert.Len(t, journaled, 10)
	assert.Len(t, sink.seen(), 10)
}

func TestPublisher_FillsZeroTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)

	p.Emit(context.Background(), Event{Type: TypeDebtAlert, CustomerID: "cust-1"})

	journaled, err := p.List(context.Background(), id.CustomerID("cust-1"))
	require.NoError(t, err)
	require.Len(t, journaled, 1)
	assert.False(t, journaled[0].Timestamp.IsZero())
}
