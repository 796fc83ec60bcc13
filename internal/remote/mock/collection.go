package mock

import (
	"context"
	"sync"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/remote"
)

// Ensure MockCollection implements remote.Collection.
var _ remote.Collection = (*MockCollection)(nil)

// MockCollection is an in-memory stand-in for the jobs API used in tests.
// It records every call so tests can assert on traffic, and exposes hook
// functions for injecting failures.
type MockCollection struct {
	mu     sync.Mutex
	jobs   map[int64]domain.JobRecord
	nextID int64

	ListCalls   int
	Created     []domain.JobDraft
	Updated     map[int64]domain.JobDraft
	Patched     map[int64]domain.JobPatch
	DeleteCalls []int64

	// Hook functions for injecting errors
	ListFunc   func(ctx context.Context) ([]domain.JobRecord, error)
	CreateFunc func(ctx context.Context, draft domain.JobDraft) (domain.JobRecord, error)
	GetFunc    func(ctx context.Context, id int64) (domain.JobRecord, error)
	UpdateFunc func(ctx context.Context, id int64, draft domain.JobDraft) (domain.JobRecord, error)
	PatchFunc  func(ctx context.Context, id int64, patch domain.JobPatch) (domain.JobRecord, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

// NewMockCollection creates an empty mock collection.
func NewMockCollection() *MockCollection {
	return &MockCollection{
		jobs:    make(map[int64]domain.JobRecord),
		nextID:  1,
		Updated: make(map[int64]domain.JobDraft),
		Patched: make(map[int64]domain.JobPatch),
	}
}

// Seed inserts a record directly, bypassing call recording.
func (m *MockCollection) Seed(job domain.JobRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	if job.ID >= m.nextID {
		m.nextID = job.ID + 1
	}
}

func (m *MockCollection) List(ctx context.Context) ([]domain.JobRecord, error) {
	if m.ListFunc != nil {
		m.mu.Lock()
		m.ListCalls++
		m.mu.Unlock()
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	out := make([]domain.JobRecord, 0, len(m.jobs))
	for _, job := range m.jobs {
		out = append(out, job)
	}
	return out, nil
}

func (m *MockCollection) Create(ctx context.Context, draft domain.JobDraft) (domain.JobRecord, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draft)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, draft)
	job := recordFromDraft(m.nextID, draft)
	m.jobs[job.ID] = job
	m.nextID++
	return job, nil
}

func (m *MockCollection) Get(ctx context.Context, id int64) (domain.JobRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return domain.JobRecord{}, &domain.TransportError{Op: "get", Status: 404, Err: domain.ErrJobNotFound}
	}
	return job, nil
}

func (m *MockCollection) Update(ctx context.Context, id int64, draft domain.JobDraft) (domain.JobRecord, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, draft)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return domain.JobRecord{}, &domain.TransportError{Op: "update", Status: 404, Err: domain.ErrJobNotFound}
	}
	m.Updated[id] = draft
	job := recordFromDraft(id, draft)
	m.jobs[id] = job
	return job, nil
}

func (m *MockCollection) Patch(ctx context.Context, id int64, patch domain.JobPatch) (domain.JobRecord, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, patch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return domain.JobRecord{}, &domain.TransportError{Op: "patch", Status: 404, Err: domain.ErrJobNotFound}
	}
	m.Patched[id] = patch
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.JobType != nil {
		job.JobType = *patch.JobType
	}
	if patch.JobTime != nil {
		job.JobTime = *patch.JobTime
	}
	if patch.RequiredSkills != nil {
		job.RequiredSkills = *patch.RequiredSkills
	}
	if patch.Domain != nil {
		job.Domain = *patch.Domain
	}
	m.jobs[id] = job
	return job, nil
}

func (m *MockCollection) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		m.mu.Lock()
		m.DeleteCalls = append(m.DeleteCalls, id)
		m.mu.Unlock()
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if _, ok := m.jobs[id]; !ok {
		return &domain.TransportError{Op: "delete", Status: 404, Err: domain.ErrJobNotFound}
	}
	delete(m.jobs, id)
	return nil
}

// Len reports how many records the mock currently holds.
func (m *MockCollection) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

func recordFromDraft(id int64, draft domain.JobDraft) domain.JobRecord {
	return domain.JobRecord{
		ID:             id,
		Title:          draft.Title,
		Description:    draft.Description,
		Status:         draft.Status,
		JobType:        draft.JobType,
		JobTime:        draft.JobTime,
		RequiredSkills: draft.RequiredSkills,
		Domain:         draft.Domain,
	}
}
