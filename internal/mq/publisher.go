package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// TriageJob — тело triage-сообщения.
//
// Формат зафиксирован: ровно {"ticketId": N}. Всё остальное воркер
// читает из БД по этому id.
type TriageJob struct {
	TicketID int64 `json:"ticketId"`
}

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// PublishTicketTriage публикует triage-задание для тикета.
// Потребитель: Worker. Сообщение persistent — переживёт рестарт RabbitMQ.
func (p *Publisher) PublishTicketTriage(ctx context.Context, ticketID int64) error {
	body, err := json.Marshal(TriageJob{TicketID: ticketID})
	if err != nil {
		return fmt.Errorf("marshal triage job: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeTickets),  // exchange
			string(RoutingKeyTriage), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    uuid.New().String(),
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeTickets, RoutingKeyTriage, err)
		}

		p.logger.Debug("published triage job", "ticket_id", ticketID)

		return nil
	})
}
