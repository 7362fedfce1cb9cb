package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mc-theer/ticketd/internal/mq"
	"github.com/mc-theer/ticketd/internal/triage"
)

// Default configuration values.
const (
	defaultPollInterval = 30 * time.Second
	defaultStaleAfter   = 5 * time.Minute
	defaultBatchSize    = 25
	defaultPrefetch     = 1
)

// maxTriageAttempts — лимит AI-вызовов на тикет. Попытка сверх лимита
// переводит тикет в failed_triage без обращения к AI.
const maxTriageAttempts = 3

// Worker обрабатывает triage-задания.
//
// Worker — stateless компонент, который:
//   - Получает задания из очереди RabbitMQ (event-driven)
//   - Периодически подхватывает «застрявшие» open-тикеты из БД
//     (polling fallback)
//   - Вызывает AI-сервис классификации и фиксирует результат в тикете
//
// Workers масштабируются горизонтально — несколько экземпляров
// могут потреблять из одной очереди.
type Worker struct {
	// Stores
	tickets    TicketStore
	categories CategoryStore

	// Triage
	triager triage.Triager

	// MQ
	conn     *mq.Connection
	consumer *mq.Consumer

	// Configuration
	pollInterval time.Duration
	staleAfter   time.Duration
	batchSize    int

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

// Config — конфигурация Worker.
type Config struct {
	// Stores
	Tickets    TicketStore
	Categories CategoryStore

	// Triager — клиент AI-сервиса.
	Triager triage.Triager

	// MQ
	Conn *mq.Connection

	// Polling configuration
	PollInterval time.Duration // интервал polling (default: 30s)
	StaleAfter   time.Duration // возраст open-тикета для подхвата (default: 5m)
	BatchSize    int           // количество тикетов за один poll (default: 25)

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Worker.
func New(cfg Config) *Worker {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		tickets:      cfg.Tickets,
		categories:   cfg.Categories,
		triager:      cfg.Triager,
		conn:         cfg.Conn,
		pollInterval: pollInterval,
		staleAfter:   staleAfter,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start запускает Worker.
//
// Запускает:
//   - Consumer для tickets.triage
//   - Polling горутину для fallback
func (w *Worker) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	w.logger.Info("starting worker",
		"poll_interval", w.pollInterval,
		"stale_after", w.staleAfter,
		"batch_size", w.batchSize,
	)

	// Без соединения с брокером работаем в polling-only режиме:
	// consumer не создаётся, тикеты подхватывает только poll по БД
	if w.conn == nil {
		w.logger.Warn("no queue connection, running in polling-only mode")
	} else {
		w.consumer = mq.NewConsumer(w.conn, w.logger, mq.ConsumerConfig{
			Queue:    string(mq.QueueTicketTriage),
			Handler:  w.handleTriageJob,
			Prefetch: defaultPrefetch,
		})

		// Запускаем consumer
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error("triage consumer error", "error", err)
			}
		}()
	}

	// Запускаем polling
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx)
	}()

	w.logger.Info("worker started")
	return nil
}

// Stop останавливает Worker.
func (w *Worker) Stop() {
	w.stoppedMu.Lock()
	w.stopped = true
	w.stoppedMu.Unlock()

	w.logger.Info("stopping worker...")

	if w.cancelFunc != nil {
		w.cancelFunc()
	}

	if w.consumer != nil {
		w.consumer.Stop()
	}

	// Ждём завершения горутин
	w.wg.Wait()

	w.logger.Info("worker stopped")
}

// IsStopped проверяет, остановлен ли Worker.
func (w *Worker) IsStopped() bool {
	w.stoppedMu.RLock()
	defer w.stoppedMu.RUnlock()
	return w.stopped
}

// pollLoop — цикл polling для fallback.
func (w *Worker) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Первый poll сразу при старте (подхватываем тикеты, созданные пока были выключены)
	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll выполняет один цикл polling.
//
// Подхватываются только open-тикеты старше staleAfter: свежие open-тикеты
// почти наверняка уже едут через очередь, и порог отсекает двойную
// обработку. Сама обработка от двойного запуска не ломается — commit
// идемпотентен.
func (w *Worker) poll(ctx context.Context) {
	cutoff := time.Now().Add(-w.staleAfter)

	tickets, err := w.tickets.ListStaleOpen(ctx, cutoff, w.batchSize)
	if err != nil {
		w.logger.Error("failed to list stale open tickets", "error", err)
		return
	}

	if len(tickets) == 0 {
		return
	}

	w.logger.Debug("poll found stale open tickets", "count", len(tickets))

	for i := range tickets {
		ticket := &tickets[i]

		if err := w.processTicket(ctx, ticket.ID); err != nil {
			w.logger.Error("failed to process ticket from poll",
				"ticket_id", ticket.ID,
				"error", err,
			)
		}
	}
}
