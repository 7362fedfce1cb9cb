package triage

import "strings"

const (
	// minDraftLength — черновик короче этого порога не может быть
	// осмысленным ответом.
	minDraftLength = 30

	// genericDraftLength — порог, после которого generic-фраза внутри
	// черновика перестаёт быть признаком заглушки: длинный ответ,
	// содержащий вежливую формулу, обычно написан по существу.
	genericDraftLength = 150
)

// genericPhrases — фиксированный список дежурных формулировок,
// которыми AI отвечает, когда не понял тикет.
var genericPhrases = []string{
	"thank you for your message",
	"thank you for contacting us",
	"we have received your ticket",
	"we have received your request",
	"our team will get back to you",
	"will get back to you shortly",
	"we will look into it",
}

// IsPlaceholder возвращает true, если черновик — заглушка:
// пустой, sentinel, слишком короткий, либо короткий generic-ответ.
func IsPlaceholder(draft string) bool {
	d := strings.TrimSpace(draft)
	if d == "" || d == FailureDraft {
		return true
	}
	if len(d) < minDraftLength {
		return true
	}
	if len(d) < genericDraftLength {
		lower := strings.ToLower(d)
		for _, phrase := range genericPhrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return false
}
