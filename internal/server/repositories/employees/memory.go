package employees

import (
	"context"
	"sort"
	"sync"
	"time"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]wire.Employee
	lastID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[int64]wire.Employee{}, now: time.Now}
}

func (r *MemoryRepository) List(_ context.Context) ([]wire.Employee, error) {
	return r.filter(func(wire.Employee) bool { return true }), nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*wire.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &e, nil
}

func (r *MemoryRepository) Create(_ context.Context, e wire.Employee) (*wire.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := r.now().UTC()
	e.EmployeeID = r.lastID
	e.CreatedAt, e.UpdatedAt = &now, &now
	r.byID[e.EmployeeID] = e
	return &e, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, e wire.Employee) (*wire.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	now := r.now().UTC()
	e.EmployeeID = id
	e.CreatedAt, e.UpdatedAt = old.CreatedAt, &now
	r.byID[id] = e
	return &e, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) ByManager(_ context.Context, managerID int64) ([]wire.Employee, error) {
	return r.filter(func(e wire.Employee) bool {
		return e.ManagerID != nil && *e.ManagerID == managerID
	}), nil
}

func (r *MemoryRepository) ByCompany(_ context.Context, companyID int64) ([]wire.Employee, error) {
	return r.filter(func(e wire.Employee) bool {
		return e.CompanyID != nil && *e.CompanyID == companyID
	}), nil
}

// filter returns matching records ordered by ID.
func (r *MemoryRepository) filter(keep func(wire.Employee) bool) []wire.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wire.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}
