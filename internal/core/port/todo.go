package port

import (
	"context"

	"todolist/internal/core/domain"
)

type TodoRepository interface {
	GetAllByUser(ctx context.Context, userId int) ([]domain.Todo, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	ToggleCompletedByUUID(ctx context.Context, uuid string) (bool, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}

type TodoService interface {
	List(ctx context.Context, userId int) ([]domain.Todo, error)
	Create(ctx context.Context, userId int, title string, description *string) (domain.Todo, error)
	Update(ctx context.Context, userId int, uuid string, patch domain.TodoPatch) (domain.Todo, error)
	ToggleComplete(ctx context.Context, userId int, uuid string) (bool, error)
	Delete(ctx context.Context, userId int, uuid string) error
}
