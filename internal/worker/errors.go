package worker

import "errors"

// Ошибки воркера.
var (
	// ErrTicketNotFound — тикет не найден в БД. Сообщение подтверждается:
	// тикет удалён после постановки задания, повтор бессмыслен.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketTerminal — тикет в терминальном для triage статусе
	// (failed_triage, resolved, closed). Задание пропускается.
	ErrTicketTerminal = errors.New("ticket is in a terminal status")
)
