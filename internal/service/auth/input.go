package auth

import (
	"strings"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// maxPasswordLength is the bcrypt input limit.
const maxPasswordLength = 72

// LoginInput holds parameters of the web login.
type LoginInput struct {
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	if err := validatePassword(i.Password); err != nil {
		return &domain.ValidationError{Errors: []domain.FieldError{*err}}
	}
	return nil
}

// BotLoginInput holds a password attempt of a bot account.
type BotLoginInput struct {
	UserID    int64
	Username  string
	FirstName string
	Password  string
}

// Validate validates the bot login input.
func (i BotLoginInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == 0 {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if err := validatePassword(i.Password); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validatePassword(p string) *domain.FieldError {
	switch {
	case strings.TrimSpace(p) == "":
		return &domain.FieldError{Field: "password", Message: "required"}
	case len(p) > maxPasswordLength:
		return &domain.FieldError{Field: "password", Message: "too long"}
	}
	return nil
}
