package worker

import (
	"context"
	"time"

	"github.com/mc-theer/ticketd/internal/domain"
)

// TicketStore — подмножество операций репозитория тикетов,
// нужное воркеру. Реализуется *repo.TicketRepo.
type TicketStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListStaleOpen(ctx context.Context, cutoff time.Time, limit int) ([]domain.Ticket, error)
	UpdateTriageResult(ctx context.Context, id int64, commit domain.TriageCommit) error
	MarkTriageFailed(ctx context.Context, id int64, audit domain.TriageAudit) error
	UpdateAudit(ctx context.Context, id int64, audit domain.TriageAudit) error
}

// CategoryStore — операции над категориями, нужные воркеру.
// Реализуется *repo.CategoryRepo.
type CategoryStore interface {
	GetOrCreate(ctx context.Context, title string) (*domain.Category, error)
}
