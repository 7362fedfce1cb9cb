package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mc-theer/ticketd/internal/domain"
	"github.com/mc-theer/ticketd/internal/mq"
	"github.com/mc-theer/ticketd/internal/repo"
	"github.com/mc-theer/ticketd/internal/telemetry"
	"github.com/mc-theer/ticketd/internal/triage"
)

// maxRetriesError — текст ошибки при исчерпании лимита попыток.
const maxRetriesError = "Max retries exceeded"

// handleTriageJob обрабатывает triage-задание из очереди tickets.triage.
//
// Возврат nil подтверждает сообщение — в том числе для «ядовитых»
// сообщений (битый payload, несуществующий тикет): redelivery им
// не поможет. Возврат ошибки возвращает сообщение в очередь.
func (w *Worker) handleTriageJob(ctx context.Context, delivery *mq.Delivery) error {
	var job mq.TriageJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil || job.TicketID <= 0 {
		w.logger.Warn("dropping malformed triage job",
			"body", string(delivery.Body),
			"error", err,
		)
		telemetry.TriageTotal.WithLabelValues("poison").Inc()
		return nil
	}

	w.logger.Debug("received triage job", "ticket_id", job.TicketID)

	if err := w.processTicket(ctx, job.TicketID); err != nil {
		// Ожидаемые ситуации — не возвращаем ошибку (ack)
		if errors.Is(err, ErrTicketNotFound) {
			w.logger.Warn("dropping triage job for missing ticket", "ticket_id", job.TicketID)
			telemetry.TriageTotal.WithLabelValues("poison").Inc()
			return nil
		}
		if errors.Is(err, ErrTicketTerminal) {
			w.logger.Debug("skipping triage job", "ticket_id", job.TicketID, "reason", err)
			return nil
		}
		w.logger.Error("failed to process ticket", "ticket_id", job.TicketID, "error", err)
		telemetry.TriageTotal.WithLabelValues("requeued").Inc()
		return err
	}

	return nil
}

// processTicket загружает тикет из БД, выполняет triage и фиксирует результат.
func (w *Worker) processTicket(ctx context.Context, ticketID int64) error {
	logger := telemetry.WithTicketID(w.logger, ticketID)

	// 1. Загружаем тикет из БД
	ticket, err := w.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrTicketNotFound, ticketID)
		}
		return fmt.Errorf("get ticket: %w", err)
	}

	// 2. Терминальные статусы пропускаем: failed_triage требует человека,
	// resolved/closed уже не нуждаются в черновике
	if ticket.Status.TriageTerminal() {
		return fmt.Errorf("%w: %s", ErrTicketTerminal, ticket.Status)
	}

	// 3. Проверяем лимит попыток ДО вызова AI: redelivery после исчерпания
	// не должен жечь внешние вызовы
	attempt := ticket.Audit.RetryCount + 1
	if attempt > maxTriageAttempts {
		audit := ticket.Audit
		audit.LastError = maxRetriesError

		if err := w.tickets.MarkTriageFailed(ctx, ticket.ID, audit); err != nil {
			return fmt.Errorf("mark triage failed: %w", err)
		}

		logger.Warn("triage attempts exhausted",
			"attempts", ticket.Audit.RetryCount,
			"max_attempts", maxTriageAttempts,
		)
		telemetry.TriageTotal.WithLabelValues("exhausted").Inc()
		return nil
	}

	logger.Info("triage started", "attempt", attempt, "status", ticket.Status)

	// 4. Вызываем AI. Triage никогда не возвращает ошибку —
	// сбой выражается fallback-результатом
	started := time.Now()
	result := w.triager.Triage(ctx, ticket.Title, ticket.Content)
	elapsed := time.Since(started)
	telemetry.TriageDuration.Observe(elapsed.Seconds())

	now := time.Now().UTC()
	audit := ticket.Audit
	audit.RetryCount = attempt
	audit.ProcessingTimeMs = elapsed.Milliseconds()
	audit.AISuggestedCategory = result.Category
	audit.LastTriageAt = &now

	fallback := result.IsFallback()
	if fallback {
		audit.LastError = "ai triage call failed"
	} else {
		audit.LastError = ""
	}

	// 5. Резолвим категорию. GetOrCreate переживает гонку двух воркеров
	// за счёт уникального индекса
	var categoryID *int64
	if result.Category != "" {
		category, err := w.categories.GetOrCreate(ctx, result.Category)
		if err != nil {
			return w.failAttempt(ctx, logger, ticket.ID, audit, fmt.Errorf("resolve category: %w", err))
		}
		categoryID = &category.ID
	}

	// 6. Фиксируем результат одним UPDATE
	commit := domain.TriageCommit{
		Status:         domain.StatusProcessed,
		CategoryID:     categoryID,
		SentimentScore: result.SentimentScore,
		Urgency:        result.Urgency,
		AIDraft:        result.Draft,
		AITriageFailed: fallback || triage.IsPlaceholder(result.Draft),
		Audit:          audit,
	}
	if err := w.tickets.UpdateTriageResult(ctx, ticket.ID, commit); err != nil {
		return w.failAttempt(ctx, logger, ticket.ID, audit, fmt.Errorf("commit triage result: %w", err))
	}

	logger.Info("triage finished",
		"attempt", attempt,
		"category", result.Category,
		"urgency", result.Urgency,
		"fallback", fallback,
		"duration_ms", elapsed.Milliseconds(),
	)
	telemetry.TriageTotal.WithLabelValues("processed").Inc()
	return nil
}

// failAttempt best-effort записывает неудачную попытку в аудит тикета
// и возвращает исходную ошибку — сообщение уйдёт обратно в очередь.
// Инкрементированный retry_count сохраняется даже при requeue, поэтому
// вечный цикл redelivery невозможен.
func (w *Worker) failAttempt(ctx context.Context, logger *slog.Logger, ticketID int64, audit domain.TriageAudit, cause error) error {
	audit.LastError = cause.Error()

	if err := w.tickets.UpdateAudit(ctx, ticketID, audit); err != nil {
		logger.Warn("failed to record triage attempt", "error", err)
	}

	return cause
}
