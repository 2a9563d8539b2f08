// Package jobs реализует асинхронный путь выполнения analysis flow.
//
// Store — in-memory реестр записей Job под одним мьютексом.
// Queue — принимает запрос, создаёт job в статусе QUEUED, запускает
// отслеживаемую фоновую горутину и сразу возвращает handle.
// Вызывающая сторона опрашивает статус через Store (polling),
// никаких блокирующих ожиданий.
//
// Состояние хранится только в памяти и теряется при рестарте
// процесса — долговременное хранение вне рамок дизайна.
package jobs
