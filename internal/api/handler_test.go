package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaiso/Mealflow/internal/domain"
	"github.com/shaiso/Mealflow/internal/flow"
	"github.com/shaiso/Mealflow/internal/jobs"
)

// --- Fakes ---

type fakeRunner struct {
	fn func(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
}

func (f *fakeRunner) Run(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	return f.fn(ctx, req)
}

// --- Helpers ---

func newTestHandler(runner jobs.Runner) (*Handler, *jobs.Queue) {
	queue := jobs.NewQueue(jobs.Config{
		Store:  jobs.NewStore(),
		Runner: runner,
	})
	handler := NewHandler(Config{
		Runner: runner,
		Queue:  queue,
	})
	return handler, queue
}

func newTestServer(h *Handler) *httptest.Server {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return httptest.NewServer(mux)
}

func analyzeBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"user_id":    "user-1",
		"image_data": base64.StdEncoding.EncodeToString([]byte("fake-jpeg")),
		"meal_type":  "dinner",
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(body)
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var dr struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if err := json.Unmarshal(dr.Data, out); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}

func decodeError(t *testing.T, resp *http.Response) ErrorDetail {
	t.Helper()
	var er ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	return er.Error
}

// --- CreateAnalysis Tests ---

func TestCreateAnalysis_Success(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		return &domain.AnalysisResult{
			Status:   domain.FlowStatusComplete,
			Vision:   &domain.VisionResult{TotalCalories: 420},
			UserID:   req.UserID,
			MealType: req.MealType,
			Steps:    map[string]domain.StepRecord{},
		}, nil
	}}
	handler, _ := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/analyses", "application/json", analyzeBody(t))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result AnalysisResponse
	decodeData(t, resp, &result)

	if result.Status != "COMPLETE" {
		t.Errorf("expected COMPLETE, got %s", result.Status)
	}
	if result.Vision == nil || result.Vision.TotalCalories != 420 {
		t.Error("vision result should be returned")
	}
	if result.UserID != "user-1" {
		t.Errorf("unexpected user: %q", result.UserID)
	}
}

func TestCreateAnalysis_InvalidImage(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, _ domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		return nil, fmt.Errorf("%w: corrupt payload", domain.ErrInvalidImage)
	}}
	handler, _ := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/analyses", "application/json", analyzeBody(t))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if detail := decodeError(t, resp); detail.Code != ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", detail.Code)
	}
}

func TestCreateAnalysis_VisionFailure(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, _ domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		return nil, fmt.Errorf("%w: model unavailable", flow.ErrVisionStep)
	}}
	handler, _ := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/analyses", "application/json", analyzeBody(t))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if detail := decodeError(t, resp); detail.Code != ErrCodeUpstream {
		t.Errorf("expected UPSTREAM_ERROR, got %s", detail.Code)
	}
}

func TestCreateAnalysis_MissingUserID(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, _ domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		t.Error("runner should not be called")
		return nil, nil
	}}
	handler, _ := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	body := bytes.NewBufferString(`{"image_data": "aGVsbG8="}`)
	resp, err := http.Post(server.URL+"/api/v1/analyses", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateAnalysis_InvalidBody(t *testing.T) {
	handler, _ := newTestHandler(&fakeRunner{})
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/analyses", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// --- Job Endpoint Tests ---

func TestCreateJob_Accepted(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, _ domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		return &domain.AnalysisResult{Status: domain.FlowStatusComplete}, nil
	}}
	handler, queue := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/jobs", "application/json", analyzeBody(t))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	var job JobResponse
	decodeData(t, resp, &job)

	if job.Status != "QUEUED" {
		t.Errorf("fresh job should be QUEUED, got %s", job.Status)
	}

	// Poll after the background run drains
	queue.Wait()

	getResp, err := http.Get(server.URL + "/api/v1/jobs/" + job.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.StatusCode)
	}

	var done JobResponse
	decodeData(t, getResp, &done)

	if done.Status != "COMPLETED" {
		t.Errorf("expected COMPLETED, got %s", done.Status)
	}
	if done.Result == nil || done.Result.Status != "COMPLETE" {
		t.Error("finished job should carry the flow result")
	}
}

func TestCreateJob_InvalidImage(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, _ domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		t.Error("runner should not be called")
		return nil, nil
	}}
	handler, _ := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	body := bytes.NewBufferString(`{"user_id": "user-1", "image_data": "%%%bad%%%"}`)
	resp, err := http.Post(server.URL+"/api/v1/jobs", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	// Validation is synchronous: a 400 comes back, no job exists
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if detail := decodeError(t, resp); detail.Code != ErrCodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", detail.Code)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	handler, _ := newTestHandler(&fakeRunner{})
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/jobs/00000000-0000-0000-0000-000000000001")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if detail := decodeError(t, resp); detail.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", detail.Code)
	}
}

func TestGetJob_InvalidID(t *testing.T) {
	handler, _ := newTestHandler(&fakeRunner{})
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/jobs/not-a-uuid")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// --- Middleware Tests ---

func TestRecovery_PanicReturns500(t *testing.T) {
	runner := &fakeRunner{fn: func(_ context.Context, _ domain.AnalysisRequest) (*domain.AnalysisResult, error) {
		panic("handler bug")
	}}
	handler, _ := newTestHandler(runner)
	server := newTestServer(handler)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/analyses", "application/json", analyzeBody(t))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", resp.StatusCode)
	}
}
