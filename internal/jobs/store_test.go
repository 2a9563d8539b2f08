package jobs

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shaiso/Mealflow/internal/domain"
)

// --- Store Tests ---

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore()
	job := domain.NewJob("user-1")

	if err := store.Create(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(job.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != job.ID {
		t.Error("IDs should match")
	}
	if got.Status != domain.JobStatusQueued {
		t.Errorf("expected QUEUED, got %s", got.Status)
	}
}

func TestStore_CreateDuplicate(t *testing.T) {
	store := NewStore()
	job := domain.NewJob("user-1")

	if err := store.Create(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(job); !errors.Is(err, ErrJobExists) {
		t.Errorf("expected ErrJobExists, got %v", err)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Get(uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	job := domain.NewJob("user-1")
	_ = store.Create(job)

	first, _ := store.Get(job.ID)

	// A later mutation must not leak into an already-taken snapshot
	_ = store.Update(job.ID, func(j *domain.Job) { j.MarkRunning() })

	if first.Status != domain.JobStatusQueued {
		t.Errorf("snapshot should be immutable, got %s", first.Status)
	}

	second, _ := store.Get(job.ID)
	if second.Status != domain.JobStatusRunning {
		t.Errorf("fresh snapshot should see the update, got %s", second.Status)
	}
}

func TestStore_SnapshotsOfTerminalJobIdentical(t *testing.T) {
	store := NewStore()
	job := domain.NewJob("user-1")
	_ = store.Create(job)

	_ = store.Update(job.ID, func(j *domain.Job) { j.MarkRunning() })
	_ = store.Update(job.ID, func(j *domain.Job) {
		j.MarkCompleted(&domain.AnalysisResult{Status: domain.FlowStatusComplete})
	})

	first, _ := store.Get(job.ID)
	second, _ := store.Get(job.ID)

	if first.Status != second.Status || first.UpdatedAt != second.UpdatedAt {
		t.Error("snapshots of a finished job should be identical")
	}
}

func TestStore_UpdateFinishedJob(t *testing.T) {
	store := NewStore()
	job := domain.NewJob("user-1")
	_ = store.Create(job)

	_ = store.Update(job.ID, func(j *domain.Job) { j.MarkFailed("boom") })

	err := store.Update(job.ID, func(j *domain.Job) { j.MarkRunning() })
	if !errors.Is(err, ErrJobFinished) {
		t.Errorf("terminal job should be immutable, got %v", err)
	}

	got, _ := store.Get(job.ID)
	if got.Status != domain.JobStatusFailed {
		t.Errorf("status should stay FAILED, got %s", got.Status)
	}
}

func TestStore_Count(t *testing.T) {
	store := NewStore()

	if store.Count() != 0 {
		t.Error("new store should be empty")
	}

	_ = store.Create(domain.NewJob("user-1"))
	_ = store.Create(domain.NewJob("user-2"))

	if store.Count() != 2 {
		t.Errorf("expected 2 jobs, got %d", store.Count())
	}
}
