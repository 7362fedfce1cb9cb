package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Топология ticketd.
const (
	// ExchangeTickets — обменник событий тикетов.
	ExchangeTickets Exchange = "ticketd.tickets"

	// QueueTicketTriage — очередь triage-заданий. Потребитель: Worker.
	QueueTicketTriage Queue = "tickets.triage"

	// RoutingKeyTriage — ключ маршрутизации triage-заданий.
	RoutingKeyTriage RoutingKey = "triage"
)

// SetupTopology объявляет обменник, очередь и binding.
// Все объекты durable: очередь переживает рестарт RabbitMQ.
//
// DLQ не объявляется: битые сообщения воркер подтверждает и отбрасывает
// сам (retry «ядовитому» сообщению не поможет), а инфраструктурные ошибки
// возвращают сообщение в ту же очередь.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeTickets), // name
			"direct",                // type
			true,                    // durable
			false,                   // auto-deleted
			false,                   // internal
			false,                   // no-wait
			nil,                     // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeTickets, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueTicketTriage), // name
			true,                      // durable
			false,                     // delete when unused
			false,                     // exclusive
			false,                     // no-wait
			nil,                       // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueTicketTriage, err)
		}

		err = ch.QueueBind(
			string(QueueTicketTriage), // queue name
			string(RoutingKeyTriage),  // routing key
			string(ExchangeTickets),   // exchange
			false,                     // no-wait
			nil,                       // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueTicketTriage, ExchangeTickets, err)
		}

		return nil
	})
}
