package handler_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "todolist/pkg/test"

	"todolist/internal/adapter/database/sqlite/repository"
	"todolist/internal/adapter/http/handler"
	"todolist/internal/adapter/http/routes"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/internal/core/telemetry"
	"todolist/pkg/auth"
)

type AuthHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	UseCase  *service.AuthService
	Router   *gin.Engine
}

func (s *AuthHandlerSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "test-secret")
}

func (s *AuthHandlerSuite) SetupTest() {
	db := InitTestDatabase()

	s.UserRepo = repository.NewUserRepository(db, telemetry.NewNoOpProbe())
	s.UseCase = service.NewAuthService(s.UserRepo)

	s.Router = routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler: handler.NewAuthHandler(s.UseCase),
	})
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	rr := httptest.NewRecorder()

	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *AuthHandlerSuite) TestSignUp() {
	rr := s.post("/signup", `{"email": "New@Example.com", "password": "Password1!"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	body := decodeBody(rr)
	Expect(body["success"]).To(BeTrue())

	user := body["user"].(map[string]any)
	Expect(user["email"]).To(Equal("new@example.com"))
	Expect(user["id"]).ToNot(BeEmpty())

	// The response never carries password material.
	Expect(user).ToNot(HaveKey("password"))
	Expect(user).ToNot(HaveKey("encrypted_password"))
}

func (s *AuthHandlerSuite) TestSignUpDuplicateEmail() {
	payload := `{"email": "taken@example.com", "password": "Password1!"}`

	rr := s.post("/signup", payload)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.post("/signup", payload)
	Expect(rr.Code).To(Equal(http.StatusConflict))

	body := decodeBody(rr)
	Expect(body["success"]).To(BeFalse())
	Expect(body["error"]).To(Equal("An account with this email already exists"))
}

func (s *AuthHandlerSuite) TestSignUpValidationMessages() {
	cases := []struct {
		payload string
		message string
	}{
		{`{"email": "bad", "password": "Password1!"}`, "Invalid email format"},
		{`{"email": "ok@example.com", "password": "Pa1!"}`, "Password must be at least 8 characters"},
		{`{"email": "ok@example.com", "password": "password1!"}`, "Password must contain at least one uppercase letter"},
		{`{"email": "ok@example.com", "password": "Password!"}`, "Password must contain at least one number"},
	}

	for _, tc := range cases {
		rr := s.post("/signup", tc.payload)

		Expect(rr.Code).To(Equal(http.StatusBadRequest), tc.payload)

		body := decodeBody(rr)
		Expect(body["success"]).To(BeFalse(), tc.payload)
		Expect(body["error"]).To(Equal(tc.message), tc.payload)
	}
}

func (s *AuthHandlerSuite) TestSignUpMalformedBody() {
	rr := s.post("/signup", `{"email": `)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decodeBody(rr)["error"]).To(Equal("Invalid request parameters"))
}

func (s *AuthHandlerSuite) TestLogin() {
	rr := s.post("/signup", `{"email": "login@example.com", "password": "Password1!"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.post("/auth", `{"email": "login@example.com", "password": "Password1!"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body := decodeBody(rr)
	Expect(body["success"]).To(BeTrue())

	token, ok := body["token"].(string)
	Expect(ok).To(BeTrue())

	claims, err := auth.VerifyJwtToken(token)
	Expect(err).To(BeNil())

	created, err := s.UserRepo.GetByEmail(ctx, "login@example.com")
	Expect(err).To(BeNil())
	Expect(int(claims["user_id"].(float64))).To(Equal(created.ID))
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	rr := s.post("/signup", `{"email": "login@example.com", "password": "Password1!"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.post("/auth", `{"email": "login@example.com", "password": "WrongPass1!"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(decodeBody(rr)["error"]).To(Equal("Invalid email or password"))
}

func (s *AuthHandlerSuite) TestLoginUnknownEmail() {
	rr := s.post("/auth", `{"email": "ghost@example.com", "password": "Password1!"}`)

	// Same answer as a wrong password.
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(decodeBody(rr)["error"]).To(Equal("Invalid email or password"))
}

func (s *AuthHandlerSuite) TestLoginMissingPassword() {
	rr := s.post("/auth", `{"email": "login@example.com", "password": ""}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decodeBody(rr)["error"]).To(Equal("Password is required"))
}

func (s *AuthHandlerSuite) TestIssuedTokenOpensProtectedRoutes() {
	rr := s.post("/signup", `{"email": "roundtrip@example.com", "password": "Password1!"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.post("/auth", `{"email": "roundtrip@example.com", "password": "Password1!"}`)
	token := decodeBody(rr)["token"].(string)

	probe := telemetry.NewNoOpProbe()
	todoRepo := repository.NewTodoRepository(InitTestDatabase(), probe)

	todoRouter := routes.SetupRouterForTests(routes.HandlersConfig{
		TodoHandler: handler.NewTodoHandler(service.NewTodoService(todoRepo, probe), nil),
	})

	req, _ := http.NewRequest("GET", "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	todoRouter.ServeHTTP(recorder, req)

	Expect(recorder.Code).To(Equal(http.StatusOK))
}

func (s *AuthHandlerSuite) TestTamperedTokenRejected() {
	rr := s.post("/signup", `{"email": "tamper@example.com", "password": "Password1!"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	created, err := s.UserRepo.GetByEmail(ctx, "tamper@example.com")
	Expect(err).To(BeNil())

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": created.ID,
	})
	forgedString, _ := forged.SignedString([]byte("wrong-secret"))

	_, err = auth.VerifyJwtToken(forgedString)
	Expect(err).ToNot(BeNil())
}
