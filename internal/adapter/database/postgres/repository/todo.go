package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"todolist/internal/adapter/database/postgres"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const todoColumns = "id, uuid, title, description, completed, user_id, created_at, updated_at"

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func (tr *TodoRepository) GetAllByUser(ctx context.Context, userId int) ([]domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Select(todoColumns).
		From("todos").
		Where(sq.Eq{"user_id": userId}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, query, args...)

	if err != nil {
		slog.Error("Error fetching todos", "error", err, "user_id", userId)
		return nil, err
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		var todo domain.Todo

		err = rows.Scan(&todo.ID, &todo.UUID, &todo.Title, &todo.Description,
			&todo.Completed, &todo.UserId, &todo.CreatedAt, &todo.UpdatedAt)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (tr *TodoRepository) GetByUUID(ctx context.Context, uid string) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Select(todoColumns).
		From("todos").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	var todo domain.Todo

	err = tr.db.QueryRow(ctx, query, args...).Scan(&todo.ID, &todo.UUID, &todo.Title,
		&todo.Description, &todo.Completed, &todo.UserId, &todo.CreatedAt, &todo.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "title", "description", "completed", "user_id", "created_at", "updated_at").
		Values(todo.UUID.String(), todo.Title, todo.Description, todo.Completed, todo.UserId, todo.CreatedAt, todo.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err := tr.db.Exec(ctx, query, args...); err != nil {
		slog.Error("Insert failed", "error", err, "uuid", todo.UUID.String())
		return domain.Todo{}, err
	}

	return tr.GetByUUID(ctx, todo.UUID.String())
}

func (tr *TodoRepository) UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Update("todos").
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("completed", todo.Completed).
		Set("updated_at", todo.UpdatedAt).
		Where(sq.Eq{"uuid": todo.UUID.String()}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.Exec(ctx, query, args...)

	if err != nil {
		return domain.Todo{}, err
	}

	if result.RowsAffected() == 0 {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	return tr.GetByUUID(ctx, todo.UUID.String())
}

func (tr *TodoRepository) ToggleCompletedByUUID(ctx context.Context, uid string) (bool, error) {
	query, args, err := tr.db.QueryBuilder.Update("todos").
		Set("completed", sq.Expr("NOT completed")).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uid}).
		Suffix("RETURNING completed").
		ToSql()

	if err != nil {
		return false, err
	}

	var completed bool

	err = tr.db.QueryRow(ctx, query, args...).Scan(&completed)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrTodoNotFound
	}

	if err != nil {
		return false, err
	}

	return completed, nil
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, uid string) error {
	result, err := tr.db.Exec(ctx, "DELETE FROM todos WHERE uuid = $1", uid)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}
