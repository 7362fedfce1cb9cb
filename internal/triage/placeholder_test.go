package triage

import (
	"strings"
	"testing"
)

func TestIsPlaceholder_Sentinel(t *testing.T) {
	if !IsPlaceholder(FailureDraft) {
		t.Error("failure sentinel must be a placeholder")
	}
}

func TestIsPlaceholder_Empty(t *testing.T) {
	if !IsPlaceholder("") {
		t.Error("empty draft must be a placeholder")
	}
	if !IsPlaceholder("   \n\t ") {
		t.Error("whitespace-only draft must be a placeholder")
	}
}

func TestIsPlaceholder_TooShort(t *testing.T) {
	if !IsPlaceholder("Hi, we'll check it.") {
		t.Error("draft below the minimum length must be a placeholder")
	}
}

func TestIsPlaceholder_GenuineShortSentence(t *testing.T) {
	// 40+ символов, без generic-фраз — настоящий ответ
	draft := "The crash happens because the cache key collides."
	if IsPlaceholder(draft) {
		t.Errorf("genuine sentence should not be a placeholder: %q", draft)
	}
}

func TestIsPlaceholder_GenericShortReply(t *testing.T) {
	draft := "Thank you for your message. We have received your ticket and our team will get back to you shortly."
	if !IsPlaceholder(draft) {
		t.Error("short generic reply must be a placeholder")
	}
}

func TestIsPlaceholder_LongReplyWithGenericPhrase(t *testing.T) {
	// Длинный контекстный ответ, случайно содержащий generic-фразу —
	// не заглушка: длина коррелирует с настоящей работой по тикету.
	draft := "Thank you for contacting us. I reproduced the export failure you described: " +
		"the CSV writer crashes when a ticket title contains an unescaped quote. " +
		"A fix is scheduled for the next release; meanwhile you can rename the affected tickets as a workaround."
	if len(draft) < genericDraftLength {
		t.Fatalf("test draft must exceed %d chars, got %d", genericDraftLength, len(draft))
	}
	if IsPlaceholder(draft) {
		t.Error("long context-aware reply should not be a placeholder")
	}
}

func TestIsPlaceholder_CaseInsensitivePhraseMatch(t *testing.T) {
	draft := "THANK YOU FOR YOUR MESSAGE, an agent will reply to your inquiry."
	if !IsPlaceholder(draft) {
		t.Error("phrase matching must ignore case")
	}
}

func TestIsPlaceholder_BoundaryLengths(t *testing.T) {
	// Ровно minDraftLength символов без generic-фраз — уже не короткий
	draft := strings.Repeat("a", minDraftLength)
	if IsPlaceholder(draft) {
		t.Errorf("draft of exactly %d chars should pass the length check", minDraftLength)
	}

	// Generic-фраза, добитая до genericDraftLength — порог снимает флаг
	long := "we will look into it " + strings.Repeat("x", genericDraftLength)
	if IsPlaceholder(long) {
		t.Error("draft above the generic threshold should not be flagged by phrase")
	}
}
