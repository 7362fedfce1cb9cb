// Package worker выполняет асинхронный AI-triage тикетов.
//
// # Обзор
//
// Worker — stateless компонент, который обогащает тикеты результатом
// AI-классификации. Worker отвечает за:
//
//   - Получение triage-заданий из очереди RabbitMQ (event-driven)
//   - Периодическую проверку «застрявших» open-тикетов в БД (polling fallback)
//   - Вызов внешнего AI-сервиса классификации
//   - Резолв предложенной категории в строку таблицы categories
//   - Фиксацию результата в тикете и перевод статуса
//
// Workers масштабируются горизонтально — несколько экземпляров
// потребляют из одной очереди tickets.triage.
//
// # Два счётчика попыток
//
// Пакет намеренно разделяет два несвязанных механизма повтора:
//
//   - Redelivery очереди. Инфраструктурная ошибка (БД недоступна,
//     не записался результат) — это error из обработчика: сообщение
//     возвращается в очередь (nack + requeue) и будет доставлено снова.
//     Количество redelivery не ограничено.
//   - Счётчик triage-попыток в строке тикета (ai_metadata.retry_count).
//     Каждый AI-вызов увеличивает его; после maxTriageAttempts тикет
//     переводится в терминальный failed_triage и сообщение подтверждается.
//
// Поэтому бесконечный цикл невозможен: даже при вечном redelivery
// счётчик в БД монотонно растёт и рано или поздно исчерпает лимит.
//
// # Обработка задания
//
//  1. Парсинг тела сообщения; битый payload подтверждается и отбрасывается
//  2. Загрузка тикета из БД; несуществующий тикет подтверждается
//  3. Тикеты в терминальных статусах (failed_triage, resolved, closed)
//     пропускаются
//  4. Проверка лимита попыток — при исчерпании тикет помечается
//     failed_triage без обращения к AI
//  5. AI-вызов. Никогда не возвращает ошибку: любой сбой даёт
//     fallback-результат с sentinel-черновиком
//  6. Резолв категории через GetOrCreate (гонка двух воркеров
//     разрешается уникальным индексом)
//  7. Запись результата одним UPDATE; повторная доставка того же
//     сообщения перезапишет тикет теми же данными
//
// Шаги 2, 6 и 7 могут упасть по инфраструктурным причинам — тогда
// попытка best-effort записывается в аудит и сообщение уходит
// обратно в очередь.
package worker
