package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shaiso/Mealflow/internal/domain"
)

// --- VisionClient Tests ---

func TestVisionClient_Analyze(t *testing.T) {
	var gotPath string
	var gotReq map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(domain.VisionResult{
			Items:         []domain.FoodItem{{Name: "pasta", Calories: 350}},
			TotalCalories: 350,
			Description:   "seafood pasta",
		})
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, 0)
	image := []byte("jpeg-bytes")

	result, err := client.Analyze(context.Background(), "user-1", image, "dinner", "homemade")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v1/analyze" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	// Image travels as base64 inside the JSON body
	if gotReq["image"] != base64.StdEncoding.EncodeToString(image) {
		t.Error("image should be base64-encoded in the request")
	}
	if gotReq["user_id"] != "user-1" || gotReq["meal_type"] != "dinner" {
		t.Errorf("unexpected request fields: %v", gotReq)
	}

	if len(result.Items) != 1 || result.Items[0].Name != "pasta" {
		t.Errorf("unexpected items: %v", result.Items)
	}
	if result.TotalCalories != 350 {
		t.Errorf("unexpected calories: %v", result.TotalCalories)
	}
}

func TestVisionClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, 0)

	_, err := client.Analyze(context.Background(), "user-1", []byte("x"), "lunch", "")
	if !errors.Is(err, ErrServiceRequest) {
		t.Fatalf("expected ErrServiceRequest, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error should carry the status, got %q", err)
	}
	if !strings.Contains(err.Error(), "model crashed") {
		t.Errorf("error should carry the body, got %q", err)
	}
}

func TestVisionClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewVisionClient(server.URL, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Analyze(ctx, "user-1", []byte("x"), "lunch", "")
	if !errors.Is(err, ErrServiceRequest) {
		t.Fatalf("expected ErrServiceRequest, got %v", err)
	}
}

// --- RecipeClient Tests ---

func TestRecipeClient_Generate(t *testing.T) {
	var gotReq domain.RecipeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/recipes" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(domain.RecipeResult{
			Title:       "Pasta bake",
			Ingredients: []string{"pasta", "cheese"},
		})
	}))
	defer server.Close()

	client := NewRecipeClient(server.URL, 0)

	result, err := client.Generate(context.Background(), domain.RecipeRequest{
		Ingredients: []string{"pasta", "cheese"},
		Cuisine:     "italian",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotReq.Cuisine != "italian" {
		t.Errorf("cuisine should be forwarded, got %q", gotReq.Cuisine)
	}
	if result.Title != "Pasta bake" {
		t.Errorf("unexpected title: %q", result.Title)
	}
}

// --- DietClient Tests ---

func TestDietClient_Suggest(t *testing.T) {
	var gotReq map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/suggestions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(domain.DietResult{
			Suggestions: []string{"more fiber"},
			Score:       72,
		})
	}))
	defer server.Close()

	client := NewDietClient(server.URL, 0)

	result, err := client.Suggest(context.Background(), "user-1", domain.DietRequest{
		Goal:     "lose_weight",
		MealType: "dinner",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// UserID travels in the body, not the path
	if gotReq["user_id"] != "user-1" {
		t.Errorf("user_id should be in the request body, got %v", gotReq)
	}
	if gotReq["goal"] != "lose_weight" {
		t.Errorf("goal should be forwarded, got %v", gotReq)
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0] != "more fiber" {
		t.Errorf("unexpected suggestions: %v", result.Suggestions)
	}
}

// --- Shared Client Tests ---

func TestPostJSON_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{truncated"))
	}))
	defer server.Close()

	client := NewRecipeClient(server.URL, 0)

	_, err := client.Generate(context.Background(), domain.RecipeRequest{})
	if !errors.Is(err, ErrServiceRequest) {
		t.Fatalf("expected ErrServiceRequest, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200); got != "short" {
		t.Errorf("short strings should pass through, got %q", got)
	}

	long := strings.Repeat("x", 300)
	got := truncate(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("long strings should be cut with ellipsis, got %d chars", len(got))
	}
}
