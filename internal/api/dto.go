package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/mc-theer/ticketd/internal/domain"
	"github.com/mc-theer/ticketd/internal/triage"
)

// Ticket DTOs

// CreateTicketRequest — запрос на создание тикета.
type CreateTicketRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"category_id,omitempty"`
}

// ResolveTicketRequest — запрос на решение тикета. Draft, если задан,
// заменяет AI-черновик (агент отредактировал ответ перед отправкой).
type ResolveTicketRequest struct {
	Draft *string `json:"draft,omitempty"`
}

// TicketResponse — ответ с тикетом (пользовательское представление).
type TicketResponse struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Content        string          `json:"content,omitempty"`
	Status         string          `json:"status"`
	CategoryID     *int64          `json:"category_id,omitempty"`
	SentimentScore *int            `json:"sentiment_score,omitempty"`
	Urgency        *domain.Urgency `json:"urgency,omitempty"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TicketFromDomain конвертирует domain.Ticket в TicketResponse.
func TicketFromDomain(t domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             t.UUID,
		Title:          t.Title,
		Content:        t.Content,
		Status:         string(t.Status),
		CategoryID:     t.CategoryID,
		SentimentScore: t.SentimentScore,
		Urgency:        t.Urgency,
		ResolvedAt:     t.ResolvedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// AdminTicketResponse — административное представление тикета.
//
// Отличия от пользовательского:
//   - AIDraft: непригодный черновик (sentinel или placeholder) заменяется
//     человекочитаемым triage.FailureMessage
//   - AITriageFailed: производный флаг — хранимый флаг ИЛИ
//     sentinel/placeholder в черновике
//   - Audit: полный аудит triage-попыток
type AdminTicketResponse struct {
	TicketResponse
	AIDraft        string             `json:"ai_draft,omitempty"`
	AITriageFailed bool               `json:"is_ai_triage_failed"`
	Audit          domain.TriageAudit `json:"ai_metadata"`
}

// AdminTicketFromDomain конвертирует domain.Ticket в AdminTicketResponse.
//
// Производный флаг не доверяет одному хранимому полю: черновик мог быть
// записан ревизией воркера, которая флаг не выставляла. Ни sentinel,
// ни generic-заглушка в ответе не показываются как есть — админ видит
// просьбу ответить вручную, а не мусорный черновик.
func AdminTicketFromDomain(t domain.Ticket) AdminTicketResponse {
	draft := t.AIDraft
	unusable := t.AIDraft == triage.FailureDraft || triage.IsPlaceholder(t.AIDraft)
	if unusable {
		draft = triage.FailureMessage
	}

	return AdminTicketResponse{
		TicketResponse: TicketFromDomain(t),
		AIDraft:        draft,
		AITriageFailed: t.AITriageFailed || unusable,
		Audit:          t.Audit,
	}
}

// Category DTOs

// CreateCategoryRequest — запрос на создание категории.
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse — ответ с категорией.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryFromDomain конвертирует domain.Category в CategoryResponse.
func CategoryFromDomain(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		UUID:        c.UUID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
