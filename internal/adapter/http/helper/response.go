package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/core/domain"
)

// Every mutation answers with the same discriminated shape:
// {"success": true, ...payload} or {"success": false, "error": message}.

func SendSuccess(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}

	for key, value := range payload {
		body[key] = value
	}

	c.JSON(statusCode, body)
}

func SendFailure(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// SendServiceError folds a service error into the uniform failure shape.
// Validation messages pass through verbatim; not-found stays
// indistinguishable between missing and not-owned; anything outside the
// taxonomy is logged in full and masked with the operation's generic
// message.
func SendServiceError(c *gin.Context, err error, genericMessage string) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		SendFailure(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrTodoNotFound):
		SendFailure(c, http.StatusNotFound, "Todo not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		SendFailure(c, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		SendFailure(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		SendFailure(c, http.StatusUnauthorized, "Unauthorized")
	default:
		slog.Error("unexpected service error", "error", err, "path", c.FullPath())
		SendFailure(c, http.StatusInternalServerError, genericMessage)
	}
}
