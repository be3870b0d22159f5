package model

import "time"

// Todo status values. A todo toggles freely between the two; there is no
// archival or soft-delete state.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Todo represents a todo row in the database. UserID is set at creation and
// never changes.
type Todo struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Status      string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTodoRequest represents a partial todo update. Nil fields keep their
// previous value.
type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending completed"`
	DueDate     *string `json:"dueDate"`
}

// TodoResponse represents a todo in API responses.
type TodoResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PublicTodo converts a Todo to its API representation.
func PublicTodo(t *Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
