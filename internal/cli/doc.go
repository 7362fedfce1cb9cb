// Package cli реализует инструмент командной строки ticketd.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с ticketd API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для управления тикетами и категориями.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для ticketd API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	tickets, err := client.ListTickets(cli.ListTicketsOpts{})
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: ticketd ticket list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - ticket: list, create, show, resolve, delete
//   - category: list, create
//
// Каждая группа создаётся через фабричную функцию (NewTicketCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
