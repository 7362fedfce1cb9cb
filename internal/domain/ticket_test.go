package domain

import (
	"testing"
	"time"
)

// --- TriageAudit Tests ---

func TestTriageAudit_MergePreservesSiblings(t *testing.T) {
	// Первая попытка записала ошибку
	audit := TriageAudit{
		RetryCount: 1,
		LastError:  "ai endpoint timeout",
	}

	// Вторая попытка обновляет свои поля, не трогая last_error
	now := time.Now().UTC()
	audit.RetryCount = 2
	audit.ProcessingTimeMs = 340
	audit.AISuggestedCategory = "Billing"
	audit.LastTriageAt = &now

	if audit.LastError != "ai endpoint timeout" {
		t.Errorf("last_error should survive merge, got %q", audit.LastError)
	}
	if audit.RetryCount != 2 {
		t.Errorf("expected retry_count=2, got %d", audit.RetryCount)
	}
	if audit.AISuggestedCategory != "Billing" {
		t.Errorf("expected suggested category Billing, got %q", audit.AISuggestedCategory)
	}
}

func TestTriageAudit_IsZero(t *testing.T) {
	if !(TriageAudit{}).IsZero() {
		t.Error("empty audit should be zero")
	}
	if (TriageAudit{RetryCount: 1}).IsZero() {
		t.Error("audit with retry_count should not be zero")
	}
}

// --- Status Tests ---

func TestTicketStatus_TriageTerminal(t *testing.T) {
	tests := []struct {
		status   TicketStatus
		terminal bool
	}{
		{StatusOpen, false},
		{StatusProcessed, false},
		{StatusResolved, true},
		{StatusClosed, true},
		{StatusFailedTriage, true},
	}

	for _, tt := range tests {
		if got := tt.status.TriageTerminal(); got != tt.terminal {
			t.Errorf("%s: expected terminal=%v, got %v", tt.status, tt.terminal, got)
		}
	}
}

func TestTicketStatus_Valid(t *testing.T) {
	for _, s := range []TicketStatus{StatusOpen, StatusProcessed, StatusResolved, StatusClosed, StatusFailedTriage} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TicketStatus("deleted").Valid() {
		t.Error("unknown status should be invalid")
	}
}

// --- Urgency Tests ---

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		in       string
		expected Urgency
	}{
		{"High", UrgencyHigh},
		{"high", UrgencyHigh},
		{"Medium", UrgencyMedium},
		{"MEDIUM", UrgencyMedium},
		{"Low", UrgencyLow},
		{"", UrgencyLow},
		{"critical", UrgencyLow}, // неизвестное значение — fallback
	}

	for _, tt := range tests {
		if got := ParseUrgency(tt.in); got != tt.expected {
			t.Errorf("ParseUrgency(%q): expected %s, got %s", tt.in, tt.expected, got)
		}
	}
}
