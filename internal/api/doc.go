// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go          — Handler с DI (репозитории, publisher, logger)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (logging, recovery)
//   - response.go         — унифицированные JSON-ответы и обработка ошибок
//   - dto.go              — Data Transfer Objects (request/response)
//   - ticket_handler.go   — обработчики для /tickets и /admin/tickets
//   - category_handler.go — обработчики для /categories
//
// API предоставляет REST endpoints для тикетов и категорий.
// Аутентификация и авторизация живут выше по стеку (reverse proxy);
// маршруты /admin/* отличаются только представлением данных.
package api
