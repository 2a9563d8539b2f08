package jobs

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shaiso/Mealflow/internal/domain"
)

// Store — in-memory реестр jobs.
//
// Единственное разделяемое изменяемое состояние системы. Все чтения
// и записи сериализованы одним мьютексом — это исключает потерянные
// обновления между путём Enqueue и фоновым завершением.
//
// Записи принадлежат Store: наружу выдаются только снапшоты-копии.
type Store struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.Job
}

// NewStore создаёт пустой Store.
func NewStore() *Store {
	return &Store{jobs: make(map[uuid.UUID]*domain.Job)}
}

// Create регистрирует новый job.
// Возвращает ErrJobExists, если ID уже занят.
func (s *Store) Create(job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return ErrJobExists
	}

	s.jobs[job.ID] = job
	return nil
}

// Get возвращает снапшот job.
//
// Снапшот — копия записи: последующие мутации фоновой горутины
// через него не видны, а два снапшота терминального job идентичны.
// Возвращает ErrJobNotFound, если job не существует.
func (s *Store) Get(id uuid.UUID) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}

	snapshot := *job
	return &snapshot, nil
}

// Update применяет мутацию к job под блокировкой.
//
// Job в терминальном статусе неизменяем: попытка вернёт ErrJobFinished.
func (s *Store) Update(id uuid.UUID, mutate func(*domain.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	if job.IsFinished() {
		return ErrJobFinished
	}

	mutate(job)
	return nil
}

// Count возвращает количество зарегистрированных jobs.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
