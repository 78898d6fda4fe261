package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"jyotish-chart/src/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// -----------------------------------------------------------------------------

// ValidateBirthData checks every required field and range, then the calendar
// date itself. All failures are reported together in one InputError.
func ValidateBirthData(b *models.MBirthData) error {
	if b == nil {
		return NewInputError("birth data is required")
	}

	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return NewInputError(err.Error())
		}
		fields := make([]string, 0, len(verrs))
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			fields = append(fields, e.Field())
			msgs = append(msgs, formatFieldError(e))
		}
		return NewInputError(strings.Join(msgs, "; "), fields...)
	}

	// day=31 passes the range tag in a 30-day month
	d := time.Date(*b.Year, time.Month(*b.Month), *b.Day, 0, 0, 0, 0, time.UTC)
	if d.Day() != *b.Day {
		return NewInputError(fmt.Sprintf("day %d does not exist in %04d-%02d", *b.Day, *b.Year, *b.Month), "day")
	}
	return nil
}

// -----------------------------------------------------------------------------

func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
