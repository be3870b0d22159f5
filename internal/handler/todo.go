package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskloop/taskloop-go/internal/middleware"
	"github.com/taskloop/taskloop-go/internal/model"
	"github.com/taskloop/taskloop-go/internal/service"
	"github.com/taskloop/taskloop-go/internal/validate"
)

// TodoHandler handles HTTP requests for todo operations.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleCreate handles POST /api/v1/todos requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		if isTodoValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusCreated, "todo created", resp)
}

// HandleList handles GET /api/v1/todos requests.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todos, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if todos == nil {
		todos = []model.TodoResponse{}
	}

	writeSuccess(w, http.StatusOK, "todos retrieved", todos)
}

// HandleGet handles GET /api/v1/todos/{id} requests.
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todoID := chi.URLParam(r, "id")
	if !validTodoID(todoID) {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	resp, err := h.service.Get(r.Context(), identity.UserID, todoID)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "todo retrieved", resp)
}

// HandleUpdate handles PUT /api/v1/todos/{id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todoID := chi.URLParam(r, "id")
	if !validTodoID(todoID) {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req model.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Update(r.Context(), identity.UserID, todoID, req)
	if err != nil {
		writeTodoError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "todo updated", resp)
}

// HandleDelete handles DELETE /api/v1/todos/{id} requests.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todoID := chi.URLParam(r, "id")
	if !validTodoID(todoID) {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, todoID); err != nil {
		writeTodoError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "todo deleted", struct{}{})
}

func writeTodoError(w http.ResponseWriter, err error) {
	switch {
	case isTodoValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTodoNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isTodoValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidDue)
}

func validTodoID(id string) bool {
	return id != "" && len(id) <= 36
}
