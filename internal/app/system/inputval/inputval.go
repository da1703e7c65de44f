// Package inputval validates create/patch inputs with struct tags and turns
// validator failures into storeerr.ValidationError.
//
// Field names in errors are the JSON names, so they line up with request
// bodies. Custom tags:
//
//	notblank      string must contain a non-space character
//	email_simple  address must pass the shared email check
package inputval

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/waffle/toolkit/validate"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	notBlankTag    = "notblank"
	simpleEmailTag = "email_simple"

	maxEmailLen = 254
)

var (
	once       sync.Once
	v          *validator.Validate
	translator ut.Translator
)

func setup() {
	once.Do(func() {
		v = validator.New()

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && strings.TrimSpace(s) != ""
		})
		_ = v.RegisterValidation(simpleEmailTag, func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && IsValidEmail(s)
		})

		noop := func(ut.Translator) error { return nil }
		for _, tag := range []string{notBlankTag, simpleEmailTag} {
			_ = v.RegisterTranslation(tag, translator, noop, translateCustom)
		}
	})
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case simpleEmailTag:
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}

// Struct validates s against its validate tags. A nil return means valid;
// otherwise the error is a *storeerr.ValidationError listing every failing
// field in declaration order.
func Struct(entity, op string, s any) error {
	setup()
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return storeerr.Invalidf(entity, op, "%v", err)
	}
	fields := make([]storeerr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, storeerr.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(translator),
		})
	}
	return storeerr.Invalid(entity, op, fields...)
}

// IsValidEmail reports whether s looks like a deliverable address.
// Surrounding whitespace is ignored.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxEmailLen {
		return false
	}
	return validate.SimpleEmailValid(s)
}

// Field builds a single-field ValidationError. Stores use it for checks that
// do not fit a struct tag (time ordering, timezone lookups).
func Field(entity, op, field, message string) error {
	return storeerr.Invalid(entity, op, storeerr.FieldError{Field: field, Message: message})
}
