package api

import (
	"log/slog"

	"github.com/mc-theer/ticketd/internal/mq"
	"github.com/mc-theer/ticketd/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	ticketRepo   *repo.TicketRepo
	categoryRepo *repo.CategoryRepo
	publisher    *mq.Publisher
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	TicketRepo   *repo.TicketRepo
	CategoryRepo *repo.CategoryRepo
	Publisher    *mq.Publisher
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		ticketRepo:   cfg.TicketRepo,
		categoryRepo: cfg.CategoryRepo,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
	}
}
