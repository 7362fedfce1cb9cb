package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket — обращение в поддержку.
//
// Создаётся через API в статусе open, после чего в очередь уходит
// triage-задача. Воркер обогащает тикет результатом AI-triage
// (категория, срочность, sentiment, черновик ответа) и переводит
// в processed либо failed_triage. Решение и закрытие — за агентом.
type Ticket struct {
	// ID — внутренний последовательный идентификатор.
	// Стабильный, никогда не переиспользуется. Именно он ездит
	// в triage-сообщениях очереди.
	ID int64 `json:"id"`

	// UUID — внешний идентификатор для API.
	UUID uuid.UUID `json:"uuid"`

	// Title — тема тикета. Воркер её только читает.
	Title string `json:"title"`

	// Content — текст обращения. Воркер его только читает.
	Content string `json:"content"`

	// Status — текущий статус жизненного цикла.
	Status TicketStatus `json:"status"`

	// CategoryID — категория тикета. Может быть проставлена пользователем
	// при создании или воркером по результату triage.
	CategoryID *int64 `json:"category_id,omitempty"`

	// SentimentScore — оценка тональности 1..10, выставляется воркером.
	SentimentScore *int `json:"sentiment_score,omitempty"`

	// Urgency — срочность, выставляется воркером.
	Urgency *Urgency `json:"urgency,omitempty"`

	// AIDraft — черновик ответа от AI. Может равняться sentinel-значению
	// triage.FailureDraft, если triage не дал осмысленного результата.
	AIDraft string `json:"ai_draft,omitempty"`

	// AITriageFailed — флаг, выставляемый воркером, когда AI вернул
	// sentinel или generic-заглушку вместо осмысленного черновика.
	AITriageFailed bool `json:"is_ai_triage_failed"`

	// Audit — аудит triage-попыток (колонка ai_metadata).
	Audit TriageAudit `json:"ai_metadata"`

	// ResolvedAt — время решения тикета агентом.
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// CreatedAt — время создания тикета.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего изменения.
	UpdatedAt time.Time `json:"updated_at"`
}

// TriageAudit — типизированный аудит triage-попыток.
//
// Исторически это был открытый key→value bag; фиксированные опциональные
// поля сохраняют ту же append/merge-семантику: запись загружается целиком,
// меняются отдельные поля, пишется обратно целиком — соседние поля,
// записанные предыдущей попыткой, не затираются.
type TriageAudit struct {
	// RetryCount — число выполненных triage-попыток. Монотонно не убывает
	// и ограничивает количество попыток (см. worker.maxTriageAttempts).
	RetryCount int `json:"retry_count,omitempty"`

	// LastError — текст последней ошибки triage.
	LastError string `json:"last_error,omitempty"`

	// ProcessingTimeMs — длительность последнего AI-вызова.
	ProcessingTimeMs int64 `json:"processing_time_ms,omitempty"`

	// AISuggestedCategory — категория, предложенная AI (как строка,
	// до резолва в category_id).
	AISuggestedCategory string `json:"ai_suggested_category,omitempty"`

	// LastTriageAt — время последней успешной triage-попытки.
	LastTriageAt *time.Time `json:"last_triage_at,omitempty"`
}

// IsZero возвращает true, если аудит пустой (тикет ещё не проходил triage).
func (a TriageAudit) IsZero() bool {
	return a == TriageAudit{}
}

// TriageCommit — частичное обновление тикета по результату triage.
// Затрагивает только поля, принадлежащие воркеру; повторное применение
// с теми же входными данными даёт то же конечное состояние.
type TriageCommit struct {
	Status         TicketStatus
	CategoryID     *int64
	SentimentScore int
	Urgency        Urgency
	AIDraft        string
	AITriageFailed bool
	Audit          TriageAudit
}

// TicketFilter — фильтры списка тикетов для API.
type TicketFilter struct {
	Status  TicketStatus
	Urgency Urgency
	Search  string
	Page    int
	PerPage int
}
