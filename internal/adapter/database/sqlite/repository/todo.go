package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/adapter/database/sqlite"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	tel "todolist/internal/core/telemetry"
)

const todoColumns = "id, uuid, title, description, completed, user_id, created_at, updated_at"

type TodoRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{db: db, telemetry: telemetry}
}

func (tr *TodoRepository) GetAllByUser(ctx context.Context, userId int) ([]domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "GetAllByUser", "todo", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.Int("user.id", userId),
	})
	defer span.End()

	query, args, err := tr.db.QueryBuilder.Select(todoColumns).
		From("todos").
		Where(sq.Eq{"user_id": userId}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, query, args...)

	if err != nil {
		tr.telemetry.RecordError(ctx, "todo.GetAllByUser", err, map[string]interface{}{"user_id": userId})
		return nil, err
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(todos)))

	return todos, nil
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

	row := tr.db.QueryRowContext(ctx, query, args...)
	todo, err := scanTodo(row)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		slog.Error("Error getting todo by uuid", "error", err, "uuid", uid)
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Create", "todo", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("todo.uuid", todo.UUID.String()),
		attribute.Int("user.id", todo.UserId),
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "title", "description", "completed", "user_id", "created_at", "updated_at").
		Values(todo.UUID.String(), todo.Title, todo.Description, todo.Completed, todo.UserId, todo.CreatedAt, todo.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Create", "todo", query, args)

	if _, err := tr.db.ExecContext(ctx, query, args...); err != nil {
		tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), err)
		slog.Error("Insert failed", "error", err, "uuid", todo.UUID.String())
		return domain.Todo{}, err
	}

	saved, err := tr.GetByUUID(ctx, todo.UUID.String())

	tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), err)

	return saved, err
}

func (tr *TodoRepository) UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "UpdateByUUID", "todo", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("todo.uuid", todo.UUID.String()),
	})
	defer span.End()

	startTime := time.Now()

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

	tr.telemetry.RecordRepositoryQuery(ctx, "UpdateByUUID", "todo", query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		tr.telemetry.RecordRepositoryOperation(ctx, "UpdateByUUID", "todo", time.Since(startTime), err)
		return domain.Todo{}, err
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		tr.telemetry.RecordRepositoryOperation(ctx, "UpdateByUUID", "todo", time.Since(startTime), domain.ErrTodoNotFound)
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	updated, err := tr.GetByUUID(ctx, todo.UUID.String())

	tr.telemetry.RecordRepositoryOperation(ctx, "UpdateByUUID", "todo", time.Since(startTime), err)

	return updated, err
}

// ToggleCompletedByUUID negates the stored flag inside the UPDATE statement
// itself; the new value is read back afterwards.
func (tr *TodoRepository) ToggleCompletedByUUID(ctx context.Context, uid string) (bool, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "ToggleCompletedByUUID", "todo", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("todo.uuid", uid),
	})
	defer span.End()

	query, args, err := tr.db.QueryBuilder.Update("todos").
		Set("completed", sq.Expr("NOT completed")).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return false, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return false, err
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return false, domain.ErrTodoNotFound
	}

	todo, err := tr.GetByUUID(ctx, uid)

	if err != nil {
		return false, err
	}

	return todo.Completed, nil
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, uid string) error {
	result, err := tr.db.ExecContext(ctx, "DELETE FROM todos WHERE uuid = ?", uid)

	if err != nil {
		return err
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var todo domain.Todo

	err := row.Scan(
		&todo.ID,
		&todo.UUID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.UserId,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	return todo, err
}
