package http

import (
	"context"
	"log/slog"
	"os"

	pgdatabase "todolist/internal/adapter/database/postgres"
	pgrepository "todolist/internal/adapter/database/postgres/repository"
	database "todolist/internal/adapter/database/sqlite"
	repository "todolist/internal/adapter/database/sqlite/repository"

	"todolist/internal/adapter/http/handler"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/internal/core/telemetry"
	"todolist/pkg/config"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	AuthUseCase port.AuthService
	TodoUseCase port.TodoService

	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler
}

func NewContainer(db *database.DB, logger *config.LokiLogger) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := repository.NewUserRepository(db, probe)
	todoRepo := repository.NewTodoRepository(db, probe)

	return newContainer(userRepo, todoRepo, probe, logger)
}

func NewPostgresContainer(db *pgdatabase.DB, logger *config.LokiLogger) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	return newContainer(pgrepository.NewUserRepository(db), pgrepository.NewTodoRepository(db), probe, logger)
}

// NewContainerFromEnv picks the persistence adapter: postgres when
// DATABASE_URL is set, the embedded sqlite database otherwise.
func NewContainerFromEnv(ctx context.Context, logger *config.LokiLogger) (*Container, func(), error) {
	if os.Getenv("DATABASE_URL") != "" {
		db, err := pgdatabase.NewDB(ctx)

		if err != nil {
			return nil, nil, err
		}

		return NewPostgresContainer(db, logger), db.Close, nil
	}

	db, err := database.NewDB()

	if err != nil {
		return nil, nil, err
	}

	return NewContainer(db, logger), func() { db.Close() }, nil
}

func newContainer(userRepo port.UserRepository, todoRepo port.TodoRepository, probe port.Telemetry, logger *config.LokiLogger) *Container {
	authSvc := service.NewAuthService(userRepo)
	todoSvc := service.NewTodoService(todoRepo, probe)

	return &Container{
		UserRepo: userRepo,
		TodoRepo: todoRepo,

		AuthUseCase: authSvc,
		TodoUseCase: todoSvc,

		AuthHandler: handler.NewAuthHandler(authSvc),
		TodoHandler: handler.NewTodoHandler(todoSvc, logger),
	}
}
