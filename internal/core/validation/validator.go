package validation

import (
	"strings"
	"unicode"

	locale_en "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"todolist/internal/core/domain"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	en := locale_en.New()
	uni := ut.New(en, en)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	registerPasswordRules()
	addCustomTranslations()
}

type signUpInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"min=8,max=128,hasupper,haslower,hasdigit,hasspecial"`
}

type loginInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required"`
}

type todoInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=1000"`
}

// NormalizeEmail lowercases and trims; applied before validation and before
// any lookup so duplicate checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeDescription trims and collapses empty-after-trim to absent.
func NormalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*description)

	if trimmed == "" {
		return nil
	}

	return &trimmed
}

func ValidateSignUp(email, password string) error {
	return firstViolation(Validator.Struct(signUpInput{
		Email:    NormalizeEmail(email),
		Password: password,
	}))
}

// ValidateLogin only checks the password for presence: stored credentials
// are never re-validated against the signup policy.
func ValidateLogin(email, password string) error {
	return firstViolation(Validator.Struct(loginInput{
		Email:    NormalizeEmail(email),
		Password: password,
	}))
}

func ValidateTodoTitle(title string) error {
	return firstViolation(Validator.Struct(todoInput{
		Title: strings.TrimSpace(title),
	}))
}

func ValidateTodoDescription(description *string) error {
	if description == nil {
		return nil
	}

	return firstViolation(Validator.StructPartial(todoInput{
		Description: strings.TrimSpace(*description),
	}, "Description"))
}

func ValidateTodoID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return domain.NewValidationError("Invalid todo ID")
	}

	return nil
}

// firstViolation translates the first violated rule into the domain error;
// remaining violations are dropped on purpose.
func firstViolation(err error) error {
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		return domain.NewValidationError(fieldErrors[0].Translate(Translator))
	}

	return domain.NewValidationError(err.Error())
}

func registerPasswordRules() {
	Validator.RegisterValidation("hasupper", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), unicode.IsUpper)
	})

	Validator.RegisterValidation("haslower", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), unicode.IsLower)
	})

	Validator.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), unicode.IsDigit)
	})

	Validator.RegisterValidation("hasspecial", func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
	})
}

func addCustomTranslations() {
	registerStaticTranslation("required", map[string]string{
		"Email":    "Invalid email format",
		"Password": "Password is required",
		"Title":    "Todo title is required",
	})

	registerStaticTranslation("email", map[string]string{
		"Email": "Invalid email format",
	})

	registerStaticTranslation("min", map[string]string{
		"Password": "Password must be at least 8 characters",
	})

	registerStaticTranslation("max", map[string]string{
		"Email":       "Email must be 255 characters or less",
		"Password":    "Password must be 128 characters or less",
		"Title":       "Title must be 200 characters or less",
		"Description": "Description must be 1000 characters or less",
	})

	registerStaticTranslation("hasupper", map[string]string{
		"Password": "Password must contain at least one uppercase letter",
	})

	registerStaticTranslation("haslower", map[string]string{
		"Password": "Password must contain at least one lowercase letter",
	})

	registerStaticTranslation("hasdigit", map[string]string{
		"Password": "Password must contain at least one number",
	})

	registerStaticTranslation("hasspecial", map[string]string{
		"Password": "Password must contain at least one special character",
	})
}

func registerStaticTranslation(tag string, byField map[string]string) {
	Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
		return nil
	}, func(ut ut.Translator, fe validator.FieldError) string {
		if message, exists := byField[fe.Field()]; exists {
			return message
		}

		return fe.Field() + " is invalid"
	})
}
