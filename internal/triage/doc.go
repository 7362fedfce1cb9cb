// Package triage инкапсулирует вызов внешнего AI-сервиса классификации
// тикетов и распознавание «пустых» черновиков.
//
// Ключевые компоненты:
//   - Client — HTTP-клиент AI-сервиса. Никогда не возвращает ошибку:
//     любой сбой (нет конфигурации, транспорт, кривой ответ) превращается
//     в фиксированный Fallback() с sentinel-черновиком FailureDraft.
//   - IsPlaceholder — чистая функция, отличающая осмысленный черновик
//     от generic-заглушки.
//
// FailureDraft — машинный sentinel, а не человекочитаемая фраза:
// downstream-код распознаёт его точным сравнением, без угадывания
// формулировок. Пользователю вместо него показывается FailureMessage.
package triage
