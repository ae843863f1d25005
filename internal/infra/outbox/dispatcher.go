package outbox

import (
	"context"
	"log/slog"

	"booking-orchestrator/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "booking-orchestrator/outbox"

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Dispatcher struct {
	log      *slog.Logger
	producer Producer
	topic    string
	tracer   trace.Tracer
}

func NewDispatcher(log *slog.Logger, producer Producer, topic string) *Dispatcher {
	return &Dispatcher{log: log, producer: producer, topic: topic, tracer: otel.Tracer(tracerName)}
}

// NewWriter builds the kafka producer used by the dispatcher; Topic is set per message
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Message keys by aggregate so events of one reservation stay ordered within a partition
func (d *Dispatcher) Message(evt shared.OutboxEvent) kafka.Message {
	headers := make([]kafka.Header, 0, len(evt.Headers)+1)
	hasType := false
	for k, v := range evt.Headers {
		if k == shared.HeaderEventType {
			hasType = true
		}
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	if !hasType {
		headers = append(headers, kafka.Header{Key: shared.HeaderEventType, Value: []byte(evt.EventType)})
	}

	return kafka.Message{
		Topic:   d.topic,
		Key:     []byte(evt.AggregateID.String()),
		Value:   evt.Payload,
		Headers: headers,
		Time:    evt.CreatedAt,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, events ...shared.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	// The first event's traceparent parents the publish span
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(events[0].Headers))
	ctx, span := d.tracer.Start(ctx, "outbox.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.destination", d.topic),
			attribute.Int("messaging.batch.size", len(events)),
		),
	)
	defer span.End()

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, d.Message(e))
	}
	if err := d.producer.WriteMessages(ctx, msgs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.log.ErrorContext(ctx, "outbox dispatch failed", "count", len(events), "err", err)
		return err
	}
	for _, e := range events {
		d.log.InfoContext(ctx, "outbox dispatched", "event_id", e.ID, "type", e.EventType)
	}
	return nil
}
