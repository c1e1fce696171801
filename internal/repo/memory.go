package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps everything in process. It backs the tests and
// local runs without a database.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	users    map[string]memUser
	analyses map[string]Analysis
	now      func() time.Time
}

type memUser struct {
	id   int
	hash string
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:    make(map[string]memUser),
		analyses: make(map[string]Analysis),
		now:      time.Now,
	}
}

func (r *MemoryRepository) CreateUser(_ context.Context, login, _, password string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[login]; ok {
		return 0, fmt.Errorf("user %q already exists", login)
	}
	r.nextID++
	r.users[login] = memUser{id: r.nextID, hash: password}
	return r.nextID, nil
}

func (r *MemoryRepository) GetByLogin(_ context.Context, login string) (int, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u := r.users[login]
	return u.id, u.hash, nil
}

func (r *MemoryRepository) SaveAnalysis(_ context.Context, a Analysis) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = r.now()
	r.analyses[a.ID] = a
	return a.ID, nil
}

func (r *MemoryRepository) ListAnalyses(_ context.Context, userID int, tool string, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	r.mu.RLock()
	out := []Analysis{}
	for _, a := range r.analyses {
		if a.UserID == userID && (tool == "" || a.Tool == tool) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) GetAnalysis(_ context.Context, userID int, id string) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.analyses[id]
	if !ok || a.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}
