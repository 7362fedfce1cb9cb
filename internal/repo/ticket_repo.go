package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mc-theer/ticketd/internal/domain"
)

// ticketColumns — общий список колонок для SELECT-запросов.
const ticketColumns = `
	id, uuid, title, content, status, category_id, sentiment_score, urgency,
	ai_draft, is_ai_triage_failed, ai_metadata, resolved_at, created_at, updated_at
`

// TicketRepo — репозиторий для работы с тикетами.
type TicketRepo struct {
	pool *pgxpool.Pool
}

// NewTicketRepo создаёт новый TicketRepo.
func NewTicketRepo(pool *pgxpool.Pool) *TicketRepo {
	return &TicketRepo{pool: pool}
}

// Create создаёт новый тикет. Проставляет ID, UUID и CreatedAt.
func (r *TicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	auditJSON, err := json.Marshal(ticket.Audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	if ticket.UUID == uuid.Nil {
		ticket.UUID = uuid.New()
	}
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	query := `
		INSERT INTO tickets (uuid, title, content, status, category_id, ai_metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`
	err = r.pool.QueryRow(ctx, query,
		ticket.UUID,
		ticket.Title,
		nullString(ticket.Content),
		ticket.Status,
		ticket.CategoryID,
		auditJSON,
		now,
	).Scan(&ticket.ID)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID возвращает тикет по внутреннему ID.
func (r *TicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return r.scanTicket(r.pool.QueryRow(ctx, query, id))
}

// GetByUUID возвращает тикет по внешнему UUID.
func (r *TicketRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE uuid = $1`
	return r.scanTicket(r.pool.QueryRow(ctx, query, id))
}

// List возвращает тикеты по фильтру с пагинацией и общее количество.
func (r *TicketRepo) List(ctx context.Context, filter domain.TicketFilter) ([]domain.Ticket, int, error) {
	where := ""
	args := []any{}

	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}

	if filter.Status != "" {
		appendCond("status = $%d", filter.Status)
	}
	if filter.Urgency != "" {
		appendCond("urgency = $%d", filter.Urgency)
	}
	if filter.Search != "" {
		appendCond("(title ILIKE $%d OR content ILIKE $%[1]d)", "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM tickets ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 10
	}

	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf(`SELECT %s FROM tickets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		ticketColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := r.scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, total, rows.Err()
}

// ListStaleOpen возвращает open-тикеты, созданные раньше cutoff.
// Используется polling fallback воркера: подхватывает тикеты,
// triage-сообщение которых потерялось (например, очередь была недоступна
// в момент создания).
func (r *TicketRepo) ListStaleOpen(ctx context.Context, cutoff time.Time, limit int) ([]domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status = 'open' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale open tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := r.scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

// UpdateTriageResult фиксирует результат triage (шаг commit воркера).
// Затрагивает только поля, принадлежащие воркеру; применение повторной
// доставки с теми же данными оставляет тикет в том же состоянии.
func (r *TicketRepo) UpdateTriageResult(ctx context.Context, id int64, commit domain.TriageCommit) error {
	auditJSON, err := json.Marshal(commit.Audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	query := `
		UPDATE tickets
		SET status = $2, category_id = $3, sentiment_score = $4, urgency = $5,
		    ai_draft = $6, is_ai_triage_failed = $7, ai_metadata = $8, updated_at = now()
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		id,
		commit.Status,
		commit.CategoryID,
		commit.SentimentScore,
		commit.Urgency,
		commit.AIDraft,
		commit.AITriageFailed,
		auditJSON,
	)
	if err != nil {
		return fmt.Errorf("update triage result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkTriageFailed переводит тикет в терминальный статус failed_triage.
func (r *TicketRepo) MarkTriageFailed(ctx context.Context, id int64, audit domain.TriageAudit) error {
	auditJSON, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	query := `
		UPDATE tickets
		SET status = 'failed_triage', is_ai_triage_failed = TRUE, ai_metadata = $2, updated_at = now()
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id, auditJSON)
	if err != nil {
		return fmt.Errorf("mark triage failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAudit перезаписывает аудит triage-попыток (best-effort запись
// при ошибке обработки).
func (r *TicketRepo) UpdateAudit(ctx context.Context, id int64, audit domain.TriageAudit) error {
	auditJSON, err := json.Marshal(audit)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}

	result, err := r.pool.Exec(ctx,
		`UPDATE tickets SET ai_metadata = $2, updated_at = now() WHERE id = $1`,
		id, auditJSON,
	)
	if err != nil {
		return fmt.Errorf("update audit: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Resolve переводит тикет в статус resolved. draft, если задан,
// заменяет ai_draft (агент мог отредактировать черновик перед отправкой).
func (r *TicketRepo) Resolve(ctx context.Context, id uuid.UUID, draft *string) (*domain.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = 'resolved', resolved_at = now(), updated_at = now(),
		    ai_draft = COALESCE($2, ai_draft)
		WHERE uuid = $1 AND status NOT IN ('resolved', 'closed')
		RETURNING ` + ticketColumns
	ticket, err := r.scanTicket(r.pool.QueryRow(ctx, query, id, draft))
	if errors.Is(err, ErrNotFound) {
		// Либо тикета нет, либо он уже resolved/closed
		if _, getErr := r.GetByUUID(ctx, id); getErr == nil {
			return nil, ErrInvalidState
		}
		return nil, ErrNotFound
	}
	return ticket, err
}

// Delete удаляет тикет.
func (r *TicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE uuid = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Helpers ---

func (r *TicketRepo) scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var content, urgency, aiDraft *string
	var auditJSON []byte

	err := row.Scan(
		&ticket.ID,
		&ticket.UUID,
		&ticket.Title,
		&content,
		&ticket.Status,
		&ticket.CategoryID,
		&ticket.SentimentScore,
		&urgency,
		&aiDraft,
		&ticket.AITriageFailed,
		&auditJSON,
		&ticket.ResolvedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan ticket: %w", err)
	}

	if content != nil {
		ticket.Content = *content
	}
	if urgency != nil {
		u := domain.Urgency(*urgency)
		ticket.Urgency = &u
	}
	if aiDraft != nil {
		ticket.AIDraft = *aiDraft
	}
	if auditJSON != nil {
		if err := json.Unmarshal(auditJSON, &ticket.Audit); err != nil {
			return nil, fmt.Errorf("unmarshal audit: %w", err)
		}
	}

	return &ticket, nil
}

// nullString возвращает nil для пустой строки (NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
