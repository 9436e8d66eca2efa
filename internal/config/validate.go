package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by the name users write them with
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"yaml", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct validates any struct carrying validate tags
func Struct(v any) error {
	return validate.Struct(v)
}

// Messages turns validation errors into one readable line per field.
// It returns nil for errors that did not come from validation.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, e.Field()+" is required")
		case "hostname_rfc1123|ip":
			msgs = append(msgs, e.Field()+" must be a host name or IP address")
		case "oneof":
			msgs = append(msgs, e.Field()+" must be one of: "+e.Param())
		case "min", "gte":
			msgs = append(msgs, e.Field()+" must be at least "+e.Param())
		case "max", "lte":
			msgs = append(msgs, e.Field()+" must be at most "+e.Param())
		case "gt":
			msgs = append(msgs, e.Field()+" must be greater than "+e.Param())
		default:
			msgs = append(msgs, e.Field()+" is invalid")
		}
	}
	return msgs
}

func joinMessages(msgs []string) string {
	return strings.Join(msgs, "; ")
}
