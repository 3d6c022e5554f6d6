package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/internal/core/validation"
)

// TodoService owns every todo mutation. Callers pass the identity resolved
// at the HTTP boundary; nothing below this layer reads ambient session
// state. A load that misses and a load that hits someone else's record both
// come back as domain.ErrTodoNotFound.
type TodoService struct {
	repo  port.TodoRepository
	probe port.Telemetry
}

func NewTodoService(repo port.TodoRepository, probe port.Telemetry) *TodoService {
	return &TodoService{repo: repo, probe: probe}
}

func (ts *TodoService) List(ctx context.Context, userId int) ([]domain.Todo, error) {
	todos, err := ts.repo.GetAllByUser(ctx, userId)

	if err != nil {
		ts.probe.RecordError(ctx, "todo.List", err, map[string]interface{}{"user_id": userId})
		return nil, err
	}

	return todos, nil
}

func (ts *TodoService) Create(ctx context.Context, userId int, title string, description *string) (domain.Todo, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Create", userId, []attribute.KeyValue{
		attribute.Int("todo.title_length", len(title)),
	})
	defer span.End()

	if err := validation.ValidateTodoTitle(title); err != nil {
		return domain.Todo{}, err
	}

	if err := validation.ValidateTodoDescription(description); err != nil {
		return domain.Todo{}, err
	}

	now := time.Now()

	newTodo := domain.Todo{
		UUID:        uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: validation.NormalizeDescription(description),
		Completed:   false,
		UserId:      userId,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	todo, err := ts.repo.Create(ctx, newTodo)

	if err != nil {
		slog.Error("Todo#Create repository failed", "error", err, "title", newTodo.Title)
		ts.probe.RecordError(ctx, "todo.Create", err, map[string]interface{}{"user_id": userId})
		return domain.Todo{}, err
	}

	ts.probe.RecordBusinessEvent(ctx, "created", "todo", todo.UUID.String(), userId, map[string]interface{}{
		"title": todo.Title,
	})

	return todo, nil
}

func (ts *TodoService) Update(ctx context.Context, userId int, uid string, patch domain.TodoPatch) (domain.Todo, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Update", userId, nil)
	defer span.End()

	if err := validation.ValidateTodoID(uid); err != nil {
		return domain.Todo{}, err
	}

	if patch.Title != nil {
		if err := validation.ValidateTodoTitle(*patch.Title); err != nil {
			return domain.Todo{}, err
		}
	}

	if err := validation.ValidateTodoDescription(patch.Description); err != nil {
		return domain.Todo{}, err
	}

	todo, err := ts.loadOwned(ctx, userId, uid)

	if err != nil {
		return domain.Todo{}, err
	}

	if patch.IsEmpty() {
		return todo, nil
	}

	if patch.Title != nil {
		todo.Title = strings.TrimSpace(*patch.Title)
	}

	if patch.Description != nil {
		todo.Description = validation.NormalizeDescription(patch.Description)
	}

	todo.UpdatedAt = time.Now()

	updated, err := ts.repo.UpdateByUUID(ctx, todo)

	if err != nil {
		slog.Error("Todo#Update repository failed", "error", err, "uuid", uid)
		ts.probe.RecordError(ctx, "todo.Update", err, map[string]interface{}{"user_id": userId})
		return domain.Todo{}, err
	}

	return updated, nil
}

// ToggleComplete negates the stored flag, never a caller-supplied desired
// state; the repository applies the negation in a single UPDATE so two
// overlapping toggles cannot write a stale read back.
func (ts *TodoService) ToggleComplete(ctx context.Context, userId int, uid string) (bool, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "ToggleComplete", userId, nil)
	defer span.End()

	if err := validation.ValidateTodoID(uid); err != nil {
		return false, err
	}

	if _, err := ts.loadOwned(ctx, userId, uid); err != nil {
		return false, err
	}

	completed, err := ts.repo.ToggleCompletedByUUID(ctx, uid)

	if err != nil {
		slog.Error("Todo#ToggleComplete repository failed", "error", err, "uuid", uid)
		ts.probe.RecordError(ctx, "todo.ToggleComplete", err, map[string]interface{}{"user_id": userId})
		return false, err
	}

	ts.probe.RecordBusinessEvent(ctx, "toggled", "todo", uid, userId, map[string]interface{}{
		"completed": completed,
	})

	return completed, nil
}

func (ts *TodoService) Delete(ctx context.Context, userId int, uid string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "Delete", userId, nil)
	defer span.End()

	if err := validation.ValidateTodoID(uid); err != nil {
		return err
	}

	if _, err := ts.loadOwned(ctx, userId, uid); err != nil {
		return err
	}

	if err := ts.repo.DeleteByUUID(ctx, uid); err != nil {
		slog.Error("Todo#Delete repository failed", "error", err, "uuid", uid)
		ts.probe.RecordError(ctx, "todo.Delete", err, map[string]interface{}{"user_id": userId})
		return err
	}

	ts.probe.RecordBusinessEvent(ctx, "deleted", "todo", uid, userId, nil)

	return nil
}

func (ts *TodoService) loadOwned(ctx context.Context, userId int, uid string) (domain.Todo, error) {
	todo, err := ts.repo.GetByUUID(ctx, uid)

	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return domain.Todo{}, domain.ErrTodoNotFound
		}

		ts.probe.RecordError(ctx, "todo.loadOwned", err, map[string]interface{}{"uuid": uid})
		return domain.Todo{}, err
	}

	if !todo.BelongsToUser(userId) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	return todo, nil
}
