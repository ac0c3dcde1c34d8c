package users

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	lastID  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: map[string]*models.User{}}
}

func (r *MemoryRepository) Create(_ context.Context, u *models.User) (*models.User, error) {
	key := strings.ToLower(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrAlreadyExists
	}
	r.lastID++
	stored := *u
	stored.ID = r.lastID
	r.byEmail[key] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}
