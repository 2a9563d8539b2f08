package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// StepResponse — запись о шаге из API.
type StepResponse struct {
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// FoodItemResponse — распознанный продукт из API.
type FoodItemResponse struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Grams      float64 `json:"grams,omitempty"`
	Calories   float64 `json:"calories,omitempty"`
}

// VisionResponse — результат распознавания из API.
type VisionResponse struct {
	Items         []FoodItemResponse `json:"items"`
	TotalCalories float64            `json:"total_calories"`
	Description   string             `json:"description,omitempty"`
}

// RecipeResponse — сгенерированный рецепт из API.
type RecipeResponse struct {
	Title           string   `json:"title"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	PrepTimeMinutes int      `json:"prep_time_minutes,omitempty"`
}

// DietResponse — диет-рекомендации из API.
type DietResponse struct {
	Suggestions []string `json:"suggestions"`
	Score       int      `json:"score,omitempty"`
}

// AnalysisResponse — результат анализа из API.
type AnalysisResponse struct {
	Status     string                  `json:"status"`
	Vision     *VisionResponse         `json:"vision,omitempty"`
	Recipe     *RecipeResponse         `json:"recipe,omitempty"`
	Diet       *DietResponse           `json:"diet,omitempty"`
	Steps      map[string]StepResponse `json:"steps"`
	UserID     string                  `json:"user_id"`
	MealType   string                  `json:"meal_type"`
	DurationMS int64                   `json:"duration_ms"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// JobResponse — job из API.
type JobResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
	Result    *AnalysisResponse `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// --- Request types ---

// AnalyzeRequest — запрос на анализ фото.
type AnalyzeRequest struct {
	UserID    string `json:"user_id"`
	ImageData string `json:"image_data"`
	MealType  string `json:"meal_type"`
	Context   string `json:"context,omitempty"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Mealflow API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Синхронный анализ ждёт все шаги flow, таймаут с запасом.
			Timeout: 120 * time.Second,
		},
	}
}

// --- Analyses ---

// Analyze выполняет синхронный анализ фото.
func (c *Client) Analyze(req AnalyzeRequest) (*AnalysisResponse, error) {
	var result AnalysisResponse
	err := c.post("/api/v1/analyses", req, &result)
	return &result, err
}

// --- Jobs ---

// SubmitJob ставит анализ в фоновую очередь.
func (c *Client) SubmitJob(req AnalyzeRequest) (*JobResponse, error) {
	var job JobResponse
	err := c.post("/api/v1/jobs", req, &job)
	return &job, err
}

// GetJob возвращает job по ID.
func (c *Client) GetJob(id string) (*JobResponse, error) {
	var job JobResponse
	err := c.get("/api/v1/jobs/"+id, &job)
	return &job, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
