package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todolist/pkg/test"

	"todolist/internal/adapter/database/sqlite/repository"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/internal/core/telemetry"
)

type AuthServiceTestSuite struct {
	suite.Suite
	UseCase  *service.AuthService
	UserRepo port.UserRepository
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := InitTestDatabase()

	s.UserRepo = repository.NewUserRepository(db, telemetry.NewNoOpProbe())
	s.UseCase = service.NewAuthService(s.UserRepo)
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestSignUp() {
	user, err := s.UseCase.SignUp(context.Background(), "New@Example.com", "Password1!")

	Expect(err).To(BeNil())
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.Email).To(Equal("new@example.com"))

	// The hash is stored, never the raw password.
	Expect(user.EncryptedPassword).ToNot(BeEmpty())
	Expect(user.EncryptedPassword).ToNot(Equal("Password1!"))
}

func (s *AuthServiceTestSuite) TestSignUpDuplicateEmail() {
	ctx := context.Background()

	_, err := s.UseCase.SignUp(ctx, "taken@example.com", "Password1!")
	Expect(err).To(BeNil())

	_, err = s.UseCase.SignUp(ctx, "taken@example.com", "Password1!")
	Expect(err).To(MatchError(domain.ErrDuplicateEmail))
}

func (s *AuthServiceTestSuite) TestSignUpDuplicateEmailCaseInsensitive() {
	ctx := context.Background()

	_, err := s.UseCase.SignUp(ctx, "taken@example.com", "Password1!")
	Expect(err).To(BeNil())

	_, err = s.UseCase.SignUp(ctx, "TAKEN@Example.COM", "Password1!")
	Expect(err).To(MatchError(domain.ErrDuplicateEmail))
}

func (s *AuthServiceTestSuite) TestSignUpWeakPassword() {
	_, err := s.UseCase.SignUp(context.Background(), "weak@example.com", "Password!")

	Expect(domain.IsValidationError(err)).To(BeTrue())
	Expect(err.Error()).To(Equal("Password must contain at least one number"))

	// Nothing was provisioned.
	_, err = s.UserRepo.GetByEmail(context.Background(), "weak@example.com")
	Expect(err).To(MatchError(domain.ErrUserNotFound))
}

func (s *AuthServiceTestSuite) TestAuthenticate() {
	ctx := context.Background()

	created, err := s.UseCase.SignUp(ctx, "login@example.com", "Password1!")
	Expect(err).To(BeNil())

	user, err := s.UseCase.Authenticate(ctx, "Login@Example.COM", "Password1!")

	Expect(err).To(BeNil())
	Expect(user.ID).To(Equal(created.ID))
}

func (s *AuthServiceTestSuite) TestAuthenticateWrongPassword() {
	ctx := context.Background()

	_, err := s.UseCase.SignUp(ctx, "login@example.com", "Password1!")
	Expect(err).To(BeNil())

	_, err = s.UseCase.Authenticate(ctx, "login@example.com", "WrongPass1!")
	Expect(err).To(MatchError(domain.ErrInvalidCredentials))
}

func (s *AuthServiceTestSuite) TestAuthenticateUnknownEmail() {
	_, err := s.UseCase.Authenticate(context.Background(), "ghost@example.com", "Password1!")

	// Same failure as a wrong password.
	Expect(err).To(MatchError(domain.ErrInvalidCredentials))
}

func (s *AuthServiceTestSuite) TestAuthenticateDoesNotReapplySignupPolicy() {
	ctx := context.Background()

	_, err := s.UseCase.SignUp(ctx, "legacy@example.com", "Password1!")
	Expect(err).To(BeNil())

	// A password that no longer satisfies the signup policy still reaches
	// the credential check.
	_, err = s.UseCase.Authenticate(ctx, "legacy@example.com", "weak")
	Expect(err).To(MatchError(domain.ErrInvalidCredentials))
}
