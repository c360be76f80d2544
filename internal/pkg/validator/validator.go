package validator

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)
	phoneRe    = regexp.MustCompile(`^\d{10}$`)
)

const passwordSpecials = "@$!%*?&"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsUsername(fl.Field().String())
	})
	_ = validate.RegisterValidation("strictemail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}
	for _, e := range verrs {
		errs[e.Field()] = e.Tag()
	}
	return errs
}

func IsUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// IsEmail accepts a single-@ address with a 2-6 letter TLD and no consecutive dots.
func IsEmail(s string) bool {
	return emailRe.MatchString(s) && !strings.Contains(s, "..")
}

func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsStrongPassword requires 6+ characters drawn from letters, digits and @$!%*?&,
// with at least one of each class.
func IsStrongPassword(s string) bool {
	if len(s) < 6 {
		return false
	}

	var letter, digit, special bool
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case r < unicode.MaxASCII && unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return letter && digit && special
}
