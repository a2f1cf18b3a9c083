package backlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("title is empty")
	// ErrInvalidValue is returned for a status, month, year or field name
	// outside the known vocabularies.
	ErrInvalidValue = errors.New("invalid value")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	rules := map[string]validator.Func{
		"status": func(fl validator.FieldLevel) bool {
			return Status(fl.Field().String()).Valid()
		},
		"month": func(fl validator.FieldLevel) bool {
			return IsMonth(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %q validation: %v", tag, err))
		}
	}
	return v
}

// Normalize trims the title and fills in a missing status.
func (g GameRecord) Normalize() GameRecord {
	g.Title = strings.TrimSpace(g.Title)
	g.Month = strings.TrimSpace(g.Month)
	g.Year = strings.TrimSpace(g.Year)
	if g.Status == "" {
		g.Status = NotStarted
	}
	return g
}

// Validate checks a normalized record before it is added by a user.
func (g GameRecord) Validate(currentYear int) error {
	if g.Title == "" {
		return ErrEmptyTitle
	}
	if err := validate.Struct(g); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s %q", ErrInvalidValue, strings.ToLower(fe.Field()), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if g.Year != "" && !ValidYear(g.Year, currentYear) {
		return fmt.Errorf("%w: year %q outside %d-%d", ErrInvalidValue, g.Year, MinYear, currentYear)
	}
	return nil
}

// ValidateField checks a single field update. Empty month and year clear the
// field and are always accepted.
func ValidateField(field Field, value string, currentYear int) error {
	switch field {
	case FieldStatus:
		if !Status(value).Valid() {
			return fmt.Errorf("%w: status %q", ErrInvalidValue, value)
		}
	case FieldMonth:
		if value != "" && !IsMonth(value) {
			return fmt.Errorf("%w: month %q", ErrInvalidValue, value)
		}
	case FieldYear:
		if value != "" && !ValidYear(value, currentYear) {
			return fmt.Errorf("%w: year %q", ErrInvalidValue, value)
		}
	default:
		return fmt.Errorf("%w: field %q", ErrInvalidValue, field)
	}
	return nil
}

// ParseField matches s against the mutable field names.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldStatus, FieldMonth, FieldYear:
		return f, true
	}
	return "", false
}
