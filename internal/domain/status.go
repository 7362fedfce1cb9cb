package domain

// TicketStatus — статус жизненного цикла тикета.
//
// Жизненный цикл:
//
//	open → processed → resolved → closed
//	     ↘ failed_triage (терминальный для triage-пайплайна)
//
// Воркер переводит тикет только open → processed или open → failed_triage.
// Переходы в resolved/closed выполняет API (человек-агент).
type TicketStatus string

const (
	// StatusOpen — тикет создан, ожидает triage.
	StatusOpen TicketStatus = "open"

	// StatusProcessed — triage завершён, тикет обогащён AI-результатом.
	StatusProcessed TicketStatus = "processed"

	// StatusResolved — тикет решён агентом.
	StatusResolved TicketStatus = "resolved"

	// StatusClosed — тикет закрыт.
	StatusClosed TicketStatus = "closed"

	// StatusFailedTriage — triage исчерпал попытки. Терминальный статус:
	// воркер больше никогда не обрабатывает такой тикет автоматически.
	StatusFailedTriage TicketStatus = "failed_triage"
)

// String возвращает строковое представление TicketStatus.
func (s TicketStatus) String() string {
	return string(s)
}

// Valid проверяет, что статус — один из известных.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusProcessed, StatusResolved, StatusClosed, StatusFailedTriage:
		return true
	default:
		return false
	}
}

// TriageTerminal возвращает true, если воркер не должен обрабатывать
// тикет в этом статусе. processed сюда не входит: повторная доставка
// сообщения для уже обработанного тикета допустима (last-write-wins).
func (s TicketStatus) TriageTerminal() bool {
	switch s {
	case StatusFailedTriage, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// Urgency — срочность тикета, выставляется воркером по результату triage.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// String возвращает строковое представление Urgency.
func (u Urgency) String() string {
	return string(u)
}

// Valid проверяет, что срочность — одна из известных.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	default:
		return false
	}
}

// ParseUrgency парсит строку в Urgency без учёта регистра.
// Неизвестные значения превращаются в UrgencyLow — внешний AI-сервис
// может вернуть произвольный текст, пайплайн от этого падать не должен.
func ParseUrgency(s string) Urgency {
	switch s {
	case "Low", "low", "LOW":
		return UrgencyLow
	case "Medium", "medium", "MEDIUM":
		return UrgencyMedium
	case "High", "high", "HIGH":
		return UrgencyHigh
	default:
		return UrgencyLow
	}
}
