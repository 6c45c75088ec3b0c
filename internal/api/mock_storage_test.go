package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
)

// mockStorage is a simple in-memory storage for testing
type mockStorage struct {
	mu          sync.Mutex
	seq         int
	workloads   []model.Workload
	dataCenters []model.DataCenter
	plans       []model.MigrationPlan
	snapshots   []model.Snapshot
	users       map[string]model.User

	// listErr fails every list call; createErr fails every create call.
	listErr   error
	createErr error
	pingErr   error
}

func newMockStorage() *mockStorage {
	return &mockStorage{users: make(map[string]model.User)}
}

func (m *mockStorage) nextID() string {
	m.seq++
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", m.seq)
}

func (m *mockStorage) ListWorkloads(ctx context.Context, filter *model.WorkloadFilter) ([]model.Workload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []model.Workload{}
	for i := len(m.workloads) - 1; i >= 0; i-- {
		w := m.workloads[i]
		if w.UserID != filter.UserID || (filter.Strategy != "" && w.Strategy != filter.Strategy) {
			continue
		}
		result = append(result, w)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockStorage) GetWorkload(ctx context.Context, userID, id string) (*model.Workload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.workloads {
		if w.ID == id && w.UserID == userID {
			clone := w
			return &clone, nil
		}
	}
	return nil, storage.ErrWorkloadNotFound
}

func (m *mockStorage) CreateWorkload(ctx context.Context, w *model.Workload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	w.ApplyDefaults()
	if err := w.Validate(); err != nil {
		return err
	}
	w.ID = m.nextID()
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	m.workloads = append(m.workloads, *w)
	return nil
}

func (m *mockStorage) ListDataCenters(ctx context.Context, filter *model.DataCenterFilter) ([]model.DataCenter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []model.DataCenter{}
	for i := len(m.dataCenters) - 1; i >= 0; i-- {
		dc := m.dataCenters[i]
		if dc.UserID == filter.UserID && (filter.Type == "" || dc.Type == filter.Type) {
			result = append(result, dc)
		}
	}
	return result, nil
}

func (m *mockStorage) GetDataCenter(ctx context.Context, userID, id string) (*model.DataCenter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, dc := range m.dataCenters {
		if dc.ID == id && dc.UserID == userID {
			clone := dc
			return &clone, nil
		}
	}
	return nil, storage.ErrDataCenterNotFound
}

func (m *mockStorage) CreateDataCenter(ctx context.Context, dc *model.DataCenter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	dc.ApplyDefaults()
	if err := dc.Validate(); err != nil {
		return err
	}
	dc.ID = m.nextID()
	dc.CreatedAt = time.Now()
	m.dataCenters = append(m.dataCenters, *dc)
	return nil
}

func (m *mockStorage) ListPlans(ctx context.Context, filter *model.PlanFilter) ([]model.MigrationPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []model.MigrationPlan{}
	for i := len(m.plans) - 1; i >= 0; i-- {
		if m.plans[i].UserID == filter.UserID {
			result = append(result, m.plans[i])
		}
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockStorage) GetPlan(ctx context.Context, userID, id string) (*model.MigrationPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.plans {
		if p.ID == id && p.UserID == userID {
			clone := p
			return &clone, nil
		}
	}
	return nil, storage.ErrPlanNotFound
}

func (m *mockStorage) CreatePlan(ctx context.Context, p *model.MigrationPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return err
	}
	p.ID = m.nextID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.plans = append(m.plans, *p)
	return nil
}

func (m *mockStorage) CreateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.nextID()
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *mockStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockStorage) ListUsers(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []model.User{}
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockStorage) CreateSnapshot(ctx context.Context, s *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.nextID()
	m.snapshots = append(m.snapshots, *s)
	return nil
}

func (m *mockStorage) ListSnapshots(ctx context.Context, userID string, limit int) ([]model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []model.Snapshot{}
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		if m.snapshots[i].UserID == userID {
			result = append(result, m.snapshots[i])
		}
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockStorage) SnapshotOwners(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockStorage) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *mockStorage) Close() error {
	return nil
}
