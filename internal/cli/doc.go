// Package cli реализует инструмент командной строки Mealflow.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Mealflow API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для запуска анализа фото еды и отслеживания
// фоновых jobs.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Mealflow API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ErrorResponse) и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	result, err := client.Analyze(req)
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: mealflow job show --json ID | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - analyze: синхронный анализ фото
//   - job: submit, show, wait
//
// Каждая группа создаётся через фабричную функцию (NewAnalyzeCmd и
// т.д.), принимающую clientFn и outputFn — замыкания для ленивого
// создания Client и Output после парсинга PersistentFlags.
package cli
