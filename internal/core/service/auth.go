package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/internal/core/util"
	"todolist/internal/core/validation"
)

type AuthService struct {
	repo port.UserRepository
}

func NewAuthService(repo port.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

func (as *AuthService) SignUp(ctx context.Context, email, password string) (domain.User, error) {
	if err := validation.ValidateSignUp(email, password); err != nil {
		return domain.User{}, err
	}

	normalized := validation.NormalizeEmail(email)

	_, err := as.repo.GetByEmail(ctx, normalized)

	if err == nil {
		return domain.User{}, domain.ErrDuplicateEmail
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		slog.Error("Auth#SignUp duplicate lookup failed", "error", err)
		return domain.User{}, err
	}

	encrypted, err := util.GenerateEncrypt(password)

	if err != nil {
		slog.Error("Auth#SignUp encrypt failed", "error", err)
		return domain.User{}, err
	}

	now := time.Now()

	user, err := as.repo.Create(ctx, domain.User{
		UUID:              uuid.New(),
		Email:             normalized,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	})

	if err != nil {
		slog.Error("Auth#SignUp create failed", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

// Authenticate deliberately collapses unknown-email and wrong-password into
// the same failure.
func (as *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if err := validation.ValidateLogin(email, password); err != nil {
		return domain.User{}, err
	}

	user, err := as.repo.GetByEmail(ctx, validation.NormalizeEmail(email))

	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			slog.Error("Auth#Authenticate lookup failed", "error", err)
		}

		return domain.User{}, domain.ErrInvalidCredentials
	}

	if err := util.ComparePassword(password, user.EncryptedPassword); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}
