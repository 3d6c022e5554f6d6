package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
	"todolist/internal/core/util"
	"todolist/pkg/config"
	"todolist/pkg/tracing"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *config.LokiLogger
}

func NewTodoHandler(svc port.TodoService, logger *config.LokiLogger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (t *TodoHandler) List(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.todo.List", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendFailure(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	span.SetAttributes(attribute.Int("user.id", userId))

	todos, err := t.svc.List(ctx, userId)

	if err != nil {
		tracing.AddSpanError(span, err)

		if t.Logger != nil {
			t.Logger.ErrorWithTrace(ctx, "Failed to list todos",
				zap.Error(err),
				zap.Int("user_id", userId),
			)
		}

		helper.SendServiceError(c, err, "Unable to load todos. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{
		"todos": response.NewTodoListResponse(todos),
	})
}

func (t *TodoHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendFailure(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params, err := util.ParamsToMap[request.CreateTodoRequest](c)

	if err != nil {
		helper.SendFailure(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	todo, err := t.svc.Create(ctx, userId, params.Title, params.Description)

	if err != nil {
		helper.SendServiceError(c, err, "Unable to create todo. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusCreated, gin.H{
		"todo": response.NewTodoResponse(todo),
	})
}

func (t *TodoHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendFailure(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params, err := util.ParamsToMap[request.UpdateTodoRequest](c)

	if err != nil {
		helper.SendFailure(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	todo, err := t.svc.Update(ctx, userId, c.Param("uuid"), domain.TodoPatch{
		Title:       params.Title,
		Description: params.Description,
	})

	if err != nil {
		helper.SendServiceError(c, err, "Unable to update todo. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{
		"todo": response.NewTodoResponse(todo),
	})
}

func (t *TodoHandler) ToggleComplete(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendFailure(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	completed, err := t.svc.ToggleComplete(ctx, userId, c.Param("uuid"))

	if err != nil {
		helper.SendServiceError(c, err, "Unable to update todo. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{
		"completed": completed,
	})
}

func (t *TodoHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	userId, ok := middleware.CurrentUserID(c)

	if !ok {
		helper.SendFailure(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := t.svc.Delete(ctx, userId, c.Param("uuid")); err != nil {
		helper.SendServiceError(c, err, "Unable to delete todo. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{})
}
