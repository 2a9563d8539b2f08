// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Сервис только публикует события — потребителей здесь нет,
// rewards-подсистема живёт в отдельном процессе.
//
// Структура:
//   - connection.go — управление соединением (reconnect, graceful shutdown)
//   - topology.go   — объявление exchange, queue, binding
//   - publisher.go  — публикация событий
//
// Типы сообщений:
//   - reward.granted — пользователю начисляются баллы за полный анализ
//
// Exchanges:
//   - mealflow.rewards — события начисления баллов
package mq
