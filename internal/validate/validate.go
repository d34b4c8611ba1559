// Package validate wraps go-playground/validator so handlers can return
// every violation of a submission at once instead of only the first.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// Report violations under the json field name the client sent.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return v
}

// Struct validates s and returns a field -> messages map holding every
// violation, nil when the struct is valid.  Field names come from the json
// tag path validator reports, lowercased.
func Struct(s any) map[string][]string {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], message(fe))
	}
	return out
}

// message renders a human-readable description for one violation.
func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "email":
		return fmt.Sprintf("the %s field must be a valid email address", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("the %s field must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("the %s field must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("the %s field may not be greater than %s characters", field, fe.Param())
		}
		return fmt.Sprintf("the %s field may not be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("the %s field must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("the %s field must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("the %s field is invalid", field)
	}
}
