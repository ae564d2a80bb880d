package httpserver

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AnalyzeRequest is the JSON body of POST /v1/analyze.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
	Role string `json:"role" validate:"omitempty,max=64"`
}

const maxRoleLen = 64

var (
	vldOnce sync.Once
	vld     *validator.Validate

	validRole = regexp.MustCompile(`^[a-zA-Z0-9 _.+#-]+$`)
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// ValidateStruct runs the struct tags of v and converts failures into
// field-level validation errors.
func ValidateStruct(v interface{}) ValidationResult {
	err := getValidator().Struct(v)
	if err == nil {
		return ValidationResult{Valid: true}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationResult{Valid: false, Errors: []ValidationError{{Field: "body", Code: "INVALID_FORMAT", Message: err.Error()}}}
	}
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, ValidationError{Field: field, Code: "REQUIRED", Message: field + " is required"})
		case "max":
			out = append(out, ValidationError{Field: field, Code: "TOO_LONG", Message: field + " is too long (max " + fe.Param() + " characters)"})
		default:
			out = append(out, ValidationError{Field: field, Code: "INVALID_VALUE", Message: field + " failed " + fe.Tag()})
		}
	}
	return ValidationResult{Valid: false, Errors: out}
}

// ValidateRole validates a free-form role id. Empty is valid and selects the
// default role.
func ValidateRole(role string) ValidationResult {
	if role == "" {
		return ValidationResult{Valid: true}
	}
	if len(role) > maxRoleLen {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{
					Field:   "role",
					Code:    "TOO_LONG",
					Message: "Role is too long (max 64 characters)",
				},
			},
		}
	}
	if !validRole.MatchString(role) {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{
					Field:   "role",
					Code:    "INVALID_FORMAT",
					Message: "Role contains invalid characters",
				},
			},
		}
	}
	return ValidationResult{Valid: true}
}

// SanitizeString sanitizes a string input
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	// Limit length to prevent DoS
	if len(input) > 1000 {
		input = input[:1000]
	}

	// Ensure valid UTF-8
	if !utf8.ValidString(input) {
		input = strings.ToValidUTF8(input, "")
	}

	return input
}
