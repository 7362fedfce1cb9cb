// ticketd Worker — выполняет AI-triage тикетов.
//
// Worker:
//   - Получает triage-задания из RabbitMQ
//   - Периодически подхватывает застрявшие open-тикеты из БД
//   - Вызывает внешний AI-сервис классификации
//   - Фиксирует результат (категория, срочность, sentiment, черновик)
//
// Workers масштабируются горизонтально.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mc-theer/ticketd/internal/mq"
	"github.com/mc-theer/ticketd/internal/repo"
	"github.com/mc-theer/ticketd/internal/telemetry"
	"github.com/mc-theer/ticketd/internal/triage"
	"github.com/mc-theer/ticketd/internal/worker"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting ticketd-worker")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	// Создаём репозитории
	ticketRepo := repo.NewTicketRepo(pool)
	categoryRepo := repo.NewCategoryRepo(pool)

	// RabbitMQ
	var mqConn *mq.Connection
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err = mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in polling-only mode", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		// Создаём топологию
		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}
	}

	// AI-клиент. Пустой TRIAGE_API_URL — допустимая конфигурация:
	// каждый triage даст fallback, тикеты уйдут в ручную обработку
	triager := triage.NewClient(triage.ClientConfig{
		Endpoint: os.Getenv("TRIAGE_API_URL"),
		APIKey:   os.Getenv("TRIAGE_API_KEY"),
		Logger:   logger,
	})

	// Создаём worker
	w := worker.New(worker.Config{
		Tickets:    ticketRepo,
		Categories: categoryRepo,
		Triager:    triager,
		Conn:       mqConn,
		Logger:     logger,
	})

	// Запускаем worker
	if err := w.Start(ctx); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8082"
	if v := os.Getenv("WORKER_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	// Останавливаем worker
	w.Stop()
	logger.Info("ticketd-worker stopped")
}
