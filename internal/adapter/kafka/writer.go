// Package kafka publishes aggregation snapshots to a Kafka topic for
// downstream persistence and UI consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/crisismap/signal-aggregator/internal/store"
)

// Writer produces one message per canonical record in a snapshot.
// It implements aggregate.SnapshotPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSnapshot serializes every record of the snapshot and publishes the
// batch in a single WriteMessages call. An empty snapshot publishes nothing.
func (w *Writer) PublishSnapshot(ctx context.Context, snap store.Snapshot) error {
	msgs := make([]kafkago.Message, 0, len(snap.Outages)+len(snap.Hotspots)+len(snap.Arcs))

	for _, o := range snap.Outages {
		msg, err := serializeRecord(snap.RunID, "outage", o.ID, o)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	for _, h := range snap.Hotspots {
		msg, err := serializeRecord(snap.RunID, "hotspot", h.ID, h)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	for _, a := range snap.Arcs {
		msg, err := serializeRecord(snap.RunID, "arc", a.ID, a)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if len(msgs) == 0 {
		return nil
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRecord marshals a canonical record into a Kafka message keyed by
// record id, with the record kind and run id carried as headers.
func serializeRecord(runID, kind, id string, record any) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s record: %w", kind, err)
	}
	return kafkago.Message{
		Key:   []byte(id),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(kind)},
			{Key: "run_id", Value: []byte(runID)},
		},
	}, nil
}
