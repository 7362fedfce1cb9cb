package mq

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
	err      error
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return a.err
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return a.err
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.err
}

func newTestConsumer(handler Handler) *Consumer {
	return NewConsumer(nil, slog.New(slog.DiscardHandler), ConsumerConfig{
		Queue:   "test",
		Handler: handler,
	})
}

func TestConsumer_HandleDeliveryAcksOnSuccess(t *testing.T) {
	var gotBody []byte
	c := newTestConsumer(func(ctx context.Context, d *Delivery) error {
		gotBody = d.Body
		return nil
	})

	ack := &fakeAcknowledger{}
	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"ticketId":7}`),
	})

	if string(gotBody) != `{"ticketId":7}` {
		t.Errorf("handler got body %q", gotBody)
	}
	if !ack.acked {
		t.Error("successful handling must ack the message")
	}
	if ack.nacked {
		t.Error("successful handling must not nack")
	}
}

func TestConsumer_HandleDeliveryRequeuesOnError(t *testing.T) {
	c := newTestConsumer(func(ctx context.Context, d *Delivery) error {
		return errors.New("db down")
	})

	ack := &fakeAcknowledger{}
	c.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack})

	if !ack.nacked || !ack.requeued {
		t.Error("handler error must nack with requeue")
	}
	if ack.acked {
		t.Error("handler error must not ack")
	}
}

func TestConsumer_HandleDeliverySurvivesAckFailure(t *testing.T) {
	// Умерший канал: ack падает, но consumer не должен паниковать —
	// брокер сам вернёт неподтверждённое сообщение
	c := newTestConsumer(func(ctx context.Context, d *Delivery) error {
		return nil
	})

	ack := &fakeAcknowledger{err: errors.New("channel closed")}
	c.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack})

	if !ack.acked {
		t.Error("ack must still be attempted")
	}
}
