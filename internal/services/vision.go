package services

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/shaiso/Mealflow/internal/domain"
)

// VisionClient — HTTP-клиент сервиса распознавания изображений.
//
// Реализует flow.VisionService. Изображение передаётся в base64:
// сервис принимает JSON, бинарный payload в нём не живёт.
type VisionClient struct {
	httpClient
}

// NewVisionClient создаёт клиент. timeout <= 0 — значение по умолчанию.
func NewVisionClient(baseURL string, timeout time.Duration) *VisionClient {
	return &VisionClient{httpClient: newHTTPClient(baseURL, timeout)}
}

type visionRequest struct {
	UserID   string `json:"user_id"`
	Image    string `json:"image"`
	MealType string `json:"meal_type"`
	Context  string `json:"context,omitempty"`
}

// Analyze распознаёт продукты на изображении.
func (c *VisionClient) Analyze(ctx context.Context, userID string, image []byte, mealType, userContext string) (*domain.VisionResult, error) {
	req := visionRequest{
		UserID:   userID,
		Image:    base64.StdEncoding.EncodeToString(image),
		MealType: mealType,
		Context:  userContext,
	}

	var result domain.VisionResult
	if err := c.postJSON(ctx, "/v1/analyze", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
