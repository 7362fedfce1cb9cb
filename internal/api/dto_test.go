package api

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mc-theer/ticketd/internal/domain"
	"github.com/mc-theer/ticketd/internal/triage"
)

func TestAdminTicketFromDomain_SentinelDraft(t *testing.T) {
	ticket := domain.Ticket{
		Title:  "Broken login",
		Status: domain.StatusProcessed,
		// Черновик — sentinel, но хранимый флаг НЕ выставлен
		// (запись старой ревизии воркера)
		AIDraft:        triage.FailureDraft,
		AITriageFailed: false,
	}

	resp := AdminTicketFromDomain(ticket)

	if !resp.AITriageFailed {
		t.Error("sentinel draft must derive is_ai_triage_failed=true regardless of the stored flag")
	}
	if resp.AIDraft != triage.FailureMessage {
		t.Errorf("sentinel must be replaced with the human-readable message, got %q", resp.AIDraft)
	}
}

func TestAdminTicketFromDomain_StoredFlag(t *testing.T) {
	draft := "I reproduced the issue with your login form and pushed a fix to production just now."
	ticket := domain.Ticket{
		Status:         domain.StatusProcessed,
		AIDraft:        draft,
		AITriageFailed: true,
	}

	resp := AdminTicketFromDomain(ticket)

	if !resp.AITriageFailed {
		t.Error("stored flag must carry through")
	}
	// Настоящий черновик не подменяется
	if resp.AIDraft != draft {
		t.Errorf("genuine draft must be shown as is, got %q", resp.AIDraft)
	}
}

func TestAdminTicketFromDomain_PlaceholderDraft(t *testing.T) {
	ticket := domain.Ticket{
		Status:         domain.StatusProcessed,
		AIDraft:        "Thank you for your message. We have received your ticket.",
		AITriageFailed: false,
	}

	resp := AdminTicketFromDomain(ticket)

	if !resp.AITriageFailed {
		t.Error("generic placeholder draft must derive is_ai_triage_failed=true")
	}
	// Заглушка, как и sentinel, подменяется просьбой ответить вручную
	if resp.AIDraft != triage.FailureMessage {
		t.Errorf("placeholder draft must be replaced with the failure message, got %q", resp.AIDraft)
	}
}

func TestAdminTicketFromDomain_GenuineDraft(t *testing.T) {
	ticket := domain.Ticket{
		Status:         domain.StatusProcessed,
		AIDraft:        "The export crashes because of an unescaped quote in the title. A fix ships with the next release.",
		AITriageFailed: false,
	}

	resp := AdminTicketFromDomain(ticket)

	if resp.AITriageFailed {
		t.Error("genuine context-aware draft must not be flagged")
	}
	if resp.AIDraft != ticket.AIDraft {
		t.Error("genuine draft must be shown unchanged")
	}
}

func TestAdminTicketFromDomain_AuditCarried(t *testing.T) {
	ticket := domain.Ticket{
		Status: domain.StatusFailedTriage,
		Audit: domain.TriageAudit{
			RetryCount: 3,
			LastError:  "Max retries exceeded",
		},
	}

	resp := AdminTicketFromDomain(ticket)

	if resp.Audit.RetryCount != 3 {
		t.Errorf("expected retry_count 3, got %d", resp.Audit.RetryCount)
	}
	if resp.Audit.LastError != "Max retries exceeded" {
		t.Errorf("unexpected last_error: %q", resp.Audit.LastError)
	}
}

func TestTicketResponse_HidesDraftAndAudit(t *testing.T) {
	ticket := domain.Ticket{
		Title:   "Broken login",
		Status:  domain.StatusProcessed,
		AIDraft: triage.FailureDraft,
		Audit:   domain.TriageAudit{RetryCount: 2},
	}

	body, err := json.Marshal(TicketFromDomain(ticket))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Пользовательское представление не содержит ни черновика,
	// ни sentinel, ни аудита
	for _, field := range []string{"ai_draft", "ai_metadata", triage.FailureDraft} {
		if strings.Contains(string(body), field) {
			t.Errorf("user-facing response must not expose %q: %s", field, body)
		}
	}
}
