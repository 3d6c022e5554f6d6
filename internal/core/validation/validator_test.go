package validation_test

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"todolist/internal/core/domain"
	"todolist/internal/core/validation"
)

func TestValidateSignUp(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.ValidateSignUp("user@example.com", "Password1!")).To(BeNil())

	cases := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"empty email", "", "Password1!", "Invalid email format"},
		{"malformed email", "not-an-email", "Password1!", "Invalid email format"},
		{"long email", strings.Repeat("a", 250) + "@example.com", "Password1!", "Email must be 255 characters or less"},
		{"empty password", "user@example.com", "", "Password must be at least 8 characters"},
		{"short password", "user@example.com", "Pa1!", "Password must be at least 8 characters"},
		{"long password", "user@example.com", "Aa1!" + strings.Repeat("x", 125), "Password must be 128 characters or less"},
		{"no uppercase", "user@example.com", "password1!", "Password must contain at least one uppercase letter"},
		{"no lowercase", "user@example.com", "PASSWORD1!", "Password must contain at least one lowercase letter"},
		{"no digit", "user@example.com", "Password!", "Password must contain at least one number"},
		{"no special", "user@example.com", "Password1", "Password must contain at least one special character"},
	}

	for _, tc := range cases {
		err := validation.ValidateSignUp(tc.email, tc.password)

		Expect(err).ToNot(BeNil(), tc.name)
		Expect(domain.IsValidationError(err)).To(BeTrue(), tc.name)
		Expect(err.Error()).To(Equal(tc.message), tc.name)
	}
}

func TestValidateSignUpReportsFirstViolationOnly(t *testing.T) {
	RegisterTestingT(t)

	// Email and password are both invalid; only the email message surfaces.
	err := validation.ValidateSignUp("nope", "short")

	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Invalid email format"))
}

func TestValidateLogin(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.ValidateLogin("user@example.com", "anything")).To(BeNil())

	// The signup policy is not reapplied at login.
	Expect(validation.ValidateLogin("user@example.com", "weak")).To(BeNil())

	err := validation.ValidateLogin("user@example.com", "")
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Password is required"))

	err = validation.ValidateLogin("nope", "anything")
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Invalid email format"))
}

func TestValidateTodoTitle(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.ValidateTodoTitle("a")).To(BeNil())
	Expect(validation.ValidateTodoTitle(strings.Repeat("x", 200))).To(BeNil())

	err := validation.ValidateTodoTitle("")
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Todo title is required"))

	// Whitespace-only collapses to empty before the length check.
	err = validation.ValidateTodoTitle("   ")
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Todo title is required"))

	err = validation.ValidateTodoTitle(strings.Repeat("x", 201))
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Title must be 200 characters or less"))
}

func TestValidateTodoDescription(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.ValidateTodoDescription(nil)).To(BeNil())

	ok := strings.Repeat("x", 1000)
	Expect(validation.ValidateTodoDescription(&ok)).To(BeNil())

	long := strings.Repeat("x", 1001)
	err := validation.ValidateTodoDescription(&long)
	Expect(err).ToNot(BeNil())
	Expect(err.Error()).To(Equal("Description must be 1000 characters or less"))
}

func TestValidateTodoID(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.ValidateTodoID("b4f9f6a2-7f52-4f6e-9a3e-2b1c8d7e6f5a")).To(BeNil())

	for _, id := range []string{"", "123", "not-a-uuid"} {
		err := validation.ValidateTodoID(id)

		Expect(err).ToNot(BeNil(), id)
		Expect(err.Error()).To(Equal("Invalid todo ID"), id)
	}
}

func TestNormalizeEmail(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.NormalizeEmail("  User@Example.COM  ")).To(Equal("user@example.com"))
}

func TestNormalizeDescription(t *testing.T) {
	RegisterTestingT(t)

	Expect(validation.NormalizeDescription(nil)).To(BeNil())

	empty := "   "
	Expect(validation.NormalizeDescription(&empty)).To(BeNil())

	padded := "  buy milk  "
	normalized := validation.NormalizeDescription(&padded)
	Expect(normalized).ToNot(BeNil())
	Expect(*normalized).To(Equal("buy milk"))
}
