package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultClientTimeout = 30 * time.Second

// httpClient — общая основа HTTP-клиентов сервисов анализа.
//
// Таймаут клиента — предохранитель на уровне транспорта; основной
// дедлайн задаёт контекст вызова, который выставляет оркестратор.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(baseURL string, timeout time.Duration) httpClient {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	return httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// postJSON выполняет POST с JSON-телом и декодирует JSON-ответ в result.
// HTTP >= 400 — ошибка: тело ответа попадает в сообщение (обрезанное).
func (c *httpClient) postJSON(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrServiceRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrServiceRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrServiceRequest, err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d: %s", ErrServiceRequest, resp.StatusCode, truncate(string(respBody), 200))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrServiceRequest, err)
		}
	}

	return nil
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
