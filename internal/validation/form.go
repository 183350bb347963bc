package validation

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures under the submitted form field name instead of the
	// Go struct field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Result is the outcome of a form check: Valid is true when no required
// field is missing, and Missing flags each absent field by its form name.
// A field is missing only when its submitted value is the empty string;
// whitespace-only values count as present.
type Result struct {
	Valid   bool
	Missing map[string]bool
}

// UserForm covers user creation: image_url is optional, the store applies
// the default avatar.
type UserForm struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	ImageURL  string `form:"image_url"`
}

type PostForm struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
}

type TagForm struct {
	Name string `form:"tag_name" validate:"required"`
}

func Check(form any) Result {
	err := validate.Struct(form)
	if err == nil {
		return Result{Valid: true, Missing: map[string]bool{}}
	}

	result := Result{Missing: make(map[string]bool)}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			result.Missing[fieldError.Field()] = true
		}
	}
	return result
}
