package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields under the name the client sent them as: the
// json key, or the path param name for fields bound from the URL.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := tagName(f.Tag.Get("json")); name != "" {
			return name
		}
		if name := tagName(f.Tag.Get("param")); name != "" {
			return name
		}
		return f.Name
	})

	if err := v.RegisterValidation("clock", isClock); err != nil {
		panic(err)
	}

	return v
}

// clockLayouts are the accepted time-of-day forms, with or without seconds.
var clockLayouts = []string{"15:04", "15:04:05"}

func isClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range clockLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}
