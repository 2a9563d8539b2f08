// Package services содержит клиентов внешних сервисов-коллабораторов.
//
// Эвристики анализа живут в отдельных подсистемах; здесь только
// транспорт:
//   - vision.go  — HTTP-клиент сервиса распознавания изображений
//   - recipe.go  — HTTP-клиент сервиса генерации рецептов
//   - diet.go    — HTTP-клиент сервиса диетических рекомендаций
//   - rewards.go — публикация rewards-событий через RabbitMQ
//
// Клиенты реализуют интерфейсы пакета flow и подставляются
// в оркестратор через его Config.
package services
