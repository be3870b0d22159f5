package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskloop/taskloop-go/internal/model"
	"github.com/taskloop/taskloop-go/internal/repository"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrNotOwner      = errors.New("todo belongs to another user")
	ErrInvalidDue    = errors.New("dueDate must be a valid RFC 3339 timestamp")
	ErrTitleRequired = errors.New("title is required")
)

// TodoStore is the persistence surface TodoService needs.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, id string) (*model.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id string) error
}

// TodoService handles todo business logic and the ownership guard.
type TodoService struct {
	todos TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

// Create persists a new pending todo for the owner.
func (s *TodoService) Create(ctx context.Context, ownerID string, req model.CreateTodoRequest) (model.TodoResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.TodoResponse{}, ErrTitleRequired
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return model.TodoResponse{}, err
	}

	todo := &model.Todo{
		UserID:      ownerID,
		Title:       title,
		Description: normalizeDescription(req.Description),
		Status:      model.StatusPending,
		DueDate:     dueDate,
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		return model.TodoResponse{}, err
	}

	return model.PublicTodo(todo), nil
}

// List returns the owner's todos, newest-created first.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]model.TodoResponse, error) {
	todos, err := s.todos.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.TodoResponse, len(todos))
	for i := range todos {
		result[i] = model.PublicTodo(&todos[i])
	}
	return result, nil
}

// Get returns a single todo after the ownership guard.
func (s *TodoService) Get(ctx context.Context, ownerID, todoID string) (model.TodoResponse, error) {
	todo, err := s.ownedTodo(ctx, ownerID, todoID)
	if err != nil {
		return model.TodoResponse{}, err
	}
	return model.PublicTodo(todo), nil
}

// Update applies a partial update; fields absent from the request keep their
// previous value. The ownership guard runs first.
func (s *TodoService) Update(ctx context.Context, ownerID, todoID string, req model.UpdateTodoRequest) (model.TodoResponse, error) {
	todo, err := s.ownedTodo(ctx, ownerID, todoID)
	if err != nil {
		return model.TodoResponse{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.TodoResponse{}, ErrTitleRequired
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = normalizeDescription(req.Description)
	}
	if req.Status != nil {
		todo.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return model.TodoResponse{}, err
		}
		if dueDate != nil {
			todo.DueDate = dueDate
		}
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return model.TodoResponse{}, ErrTodoNotFound
		}
		return model.TodoResponse{}, err
	}

	return model.PublicTodo(todo), nil
}

// Delete permanently removes a todo after the ownership guard.
func (s *TodoService) Delete(ctx context.Context, ownerID, todoID string) error {
	if _, err := s.ownedTodo(ctx, ownerID, todoID); err != nil {
		return err
	}

	err := s.todos.Delete(ctx, todoID)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}

// ownedTodo loads a todo and enforces the access policy: a missing todo is
// NotFound, an existing todo owned by someone else is NotOwner. The existence
// check deliberately runs before the ownership check so the two outcomes stay
// operationally distinct.
func (s *TodoService) ownedTodo(ctx context.Context, ownerID, todoID string) (*model.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	if todo.UserID != ownerID {
		return nil, ErrNotOwner
	}

	return todo, nil
}

func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseDueDate parses an optional RFC 3339 due date. A nil or blank value
// means no due date.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, ErrInvalidDue
	}
	utc := t.UTC()
	return &utc, nil
}
