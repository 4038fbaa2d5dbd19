package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct tag validation and converts the first failure into
// a ValidationError.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("invalid input")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid("%s is required", fe.Field())
	case "email":
		return invalid("%s must be a valid email address", fe.Field())
	case "oneof":
		return invalid("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return invalid("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return invalid("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return invalid("%s is invalid", fe.Field())
	}
}

// TechList accepts either a JSON array of strings or a comma separated string
// and keeps the trimmed, non-empty entries.
type TechList []string

func (t *TechList) UnmarshalJSON(data []byte) error {
	var raw []string

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		raw = list
	} else {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("tech must be a list or a comma separated string")
		}
		raw = strings.Split(s, ",")
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*t = out
	return nil
}

// trimmed returns nil for a nil or blank pointer and the trimmed value otherwise.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
