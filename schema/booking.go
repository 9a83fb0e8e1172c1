// Package schema holds the booking rule set shared by the booking form client
// and the booking endpoint. Both sides call Validate so they accept exactly the
// same drafts.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Draft is a booking as typed into the form, before the store assigns id and
// createdAt.
type Draft struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required"`
	Date    string  `json:"date" validate:"required,isodate"`
	Time    string  `json:"time" validate:"required,clock"`
	Guests  int     `json:"guests" validate:"required,min=1"`
	Message *string `json:"message,omitempty"`
}

// MessageOr returns the message, or fallback when it is absent or blank.
func (d Draft) MessageOr(fallback string) string {
	if d.Message == nil || strings.TrimSpace(*d.Message) == "" {
		return fallback
	}
	return *d.Message
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field of a draft that broke a rule.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

func engine() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		english := en.New()
		t, _ := ut.New(english, english).GetTranslator("en")
		if err := entranslations.RegisterDefaultTranslations(v, t); err != nil {
			panic(err)
		}

		mustRegister(v, t, "isodate", isISODate, "{0} must be a date in YYYY-MM-DD format")
		mustRegister(v, t, "clock", isClock, "{0} must be a time in HH:MM format")

		validate, trans = v, t
	})
	return validate, trans
}

func mustRegister(v *validator.Validate, t ut.Translator, tag string, fn func(string) bool, text string) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}

	err = v.RegisterTranslation(tag, t, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		msg, _ := ut.T(tag, fe.Field())
		return msg
	})
	if err != nil {
		panic(err)
	}
}

func isISODate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func isClock(s string) bool {
	return clockPattern.MatchString(s)
}

// Normalize trims surrounding whitespace from the text fields.
func Normalize(d Draft) Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	if d.Message != nil {
		msg := strings.TrimSpace(*d.Message)
		d.Message = &msg
	}
	return d
}

// Validate checks the normalized draft against the booking rules. It returns
// nil or a *ValidationError.
func Validate(d Draft) error {
	v, t := engine()

	err := v.Struct(Normalize(d))
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(t),
		})
	}
	return out
}

// FromDecodeError turns a JSON decoding failure of a draft into a readable
// *ValidationError. Errors it does not recognise are returned unchanged.
func FromDecodeError(err error) error {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &ValidationError{Fields: []FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s must be %s", field, describeKind(typeErr.Type)),
		}}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Message: "request body must be valid JSON"}}}
	}
	if errors.Is(err, io.EOF) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Message: "request body is required"}}}
	}
	return err
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a whole number"
	case reflect.String:
		return "text"
	case reflect.Ptr:
		return describeKind(t.Elem())
	default:
		return "a valid " + t.Kind().String()
	}
}
