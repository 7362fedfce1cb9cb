// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchange, очереди и binding
//   - publisher.go  — публикация triage-заданий
//   - consumer.go   — потребление triage-заданий воркером
//
// Единственная очередь пайплайна — tickets.triage. Сообщение несёт
// ровно {"ticketId": N}: все данные тикета воркер читает из БД, поэтому
// повторная доставка устаревшего сообщения безопасна.
//
// Семантика доставки — at-least-once: подтверждение ручное, ошибка
// обработчика возвращает сообщение в очередь. Битые сообщения обработчик
// подтверждает и отбрасывает сам — retry им не поможет.
package mq
