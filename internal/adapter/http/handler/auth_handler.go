package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
	"todolist/internal/core/util"
	"todolist/pkg/auth"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (a *AuthHandler) SignUp(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		helper.SendFailure(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	user, err := a.svc.SignUp(ctx, params.Email, params.Password)

	if err != nil {
		helper.SendServiceError(c, err, "Unable to create account. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusCreated, gin.H{
		"user": response.UserResponse{
			UUID:  user.UUID.String(),
			Email: user.Email,
		},
	})
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		helper.SendFailure(c, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	user, err := a.svc.Authenticate(ctx, params.Email, params.Password)

	if err != nil {
		helper.SendServiceError(c, err, "Unable to sign in. Please try again.")
		return
	}

	token, err := auth.CreateJwtTokenForUser(user.ID)

	if err != nil {
		helper.SendFailure(c, http.StatusInternalServerError, "Unable to sign in. Please try again.")
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{
		"token": token,
	})
}
