package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Struct validates s against its `validate` tags. Failures wrap apperr.ErrInvalid
// and list field=tag pairs.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := ProcessValidationErrors(verrs)
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+"="+tag)
	}
	sort.Strings(parts)
	return fmt.Errorf("%w: %s", apperr.ErrInvalid, strings.Join(parts, ", "))
}

// Var validates a single value against tag.
func Var(v interface{}, tag string) error {
	if err := instance().Var(v, tag); err != nil {
		return fmt.Errorf("%w: %v failed %s", apperr.ErrInvalid, v, tag)
	}
	return nil
}

func ProcessValidationErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, ve := range verrs {
		out[ve.Namespace()] = ve.Tag()
	}
	return out
}

// NormalizePhone parses a phone number, using region when the number has no
// country code, and returns it in E.164 form.
func NormalizePhone(phone, region string) (string, error) {
	p, err := libphonenumber.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("%w: phone %q: %v", apperr.ErrInvalid, phone, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("%w: phone %q is not valid", apperr.ErrInvalid, phone)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
