package httptransport

import (
	"errors"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CredentialPolicy is the configurable validation rule set applied to
// usernames and passwords at registration, login, and profile update.
type CredentialPolicy struct {
	UsernameMinLen int
	PasswordMinLen int
	// Complex additionally requires mixed case, a digit, and a special
	// character.
	Complex bool
}

// registerValidations installs the "uname" and "passwd" rules on gin's
// binding validator. Rule failures surface through the standard
// validator.ValidationErrors path, so handlers report the full per-field
// failure list.
func registerValidations(policy CredentialPolicy) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	if err := v.RegisterValidation("uname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if len(name) < policy.UsernameMinLen {
			return false
		}
		for _, r := range name {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
				return false
			}
		}
		return true
	}); err != nil {
		return err
	}

	return v.RegisterValidation("passwd", func(fl validator.FieldLevel) bool {
		pass := fl.Field().String()
		if len(pass) < policy.PasswordMinLen {
			return false
		}
		if !policy.Complex {
			return true
		}
		var upper, lower, digit, special bool
		for _, r := range pass {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				special = true
			}
		}
		return upper && lower && digit && special
	})
}
