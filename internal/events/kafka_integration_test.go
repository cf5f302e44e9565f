//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"kycshare/internal/events"
	"kycshare/internal/platform/kafka/producer"
	"kycshare/pkg/testutil/containers"
)

func TestKafkaSink_PublishesJournalEvents(t *testing.T) {
	ctx := context.Background()
	kc := containers.GetManager().GetKafka(t)

	const topic = "kycshare.ledger.events.test"
	require.NoError(t, kc.CreateTopic(ctx, topic, 1, 1))

	prod, err := producer.New(producer.Config{Brokers: kc.Brokers, Retries: 3})
	require.NoError(t, err)
	t.Cleanup(prod.Close)

	sink := events.NewKafkaSink(prod, topic)

	event := events.NewDebtAlert("cust-1", "acct-a", "addr-a", "acct-b", 50, time.Now().UTC())
	require.NoError(t, sink.Publish(ctx, event))

	consumer, err := kc.NewConsumer(ctx, "kycshare-sink-test", topic)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	record := kc.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "cust-1"
	})
	require.NotNil(t, record, "expected the debt alert on the topic")

	var got events.Event
	require.NoError(t, json.Unmarshal(record.Value, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, events.TypeDebtAlert, got.Type)
	assert.Equal(t, int64(50), got.Value)

	var eventType string
	for _, h := range record.Headers {
		if h.Key == "event_type" {
			eventType = string(h.Value)
		}
	}
	assert.Equal(t, string(events.TypeDebtAlert), eventType)
}
