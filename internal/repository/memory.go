package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-go/internal/model"
)

// MemoryUserRepository is an in-memory UserRepository equivalent used in
// tests and local development without Postgres.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// MemoryTodoRepository is an in-memory TodoRepository equivalent.
type MemoryTodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*model.Todo
	seq   int64
}

// NewMemoryTodoRepository creates an empty in-memory todo store.
func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{todos: make(map[string]*model.Todo)}
}

func (r *MemoryTodoRepository) Create(_ context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo.ID = uuid.NewString()
	// Monotonic creation times so newest-first ordering is deterministic even
	// for todos created within the same clock tick.
	r.seq++
	now := time.Now().UTC().Add(time.Duration(r.seq) * time.Microsecond)
	todo.CreatedAt = now
	todo.UpdatedAt = now

	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *MemoryTodoRepository) GetByID(_ context.Context, id string) (*model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, ErrTodoNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *MemoryTodoRepository) ListByUser(_ context.Context, userID string) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var todos []model.Todo
	for _, t := range r.todos {
		if t.UserID == userID {
			todos = append(todos, *t)
		}
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (r *MemoryTodoRepository) Update(_ context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[todo.ID]; !ok {
		return ErrTodoNotFound
	}

	todo.UpdatedAt = time.Now().UTC()
	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *MemoryTodoRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}
