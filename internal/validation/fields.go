package validation

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tallykeep/tally/internal/scope"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("scope", func(fl validator.FieldLevel) bool {
		return scope.Validate(fl.Field().String()) == nil
	})
	return v
}

// Fields applies the struct tag rules of v. The first failing field is reported.
func Fields(entity Entity, v any) Rule {
	return Rule{
		Name: string(entity) + " fields",
		Check: func(ctx context.Context, _ Store) error {
			err := validate.StructCtx(ctx, v)
			if err == nil {
				return nil
			}
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
				return err
			}
			fe := fieldErrs[0]
			return &Error{Entity: entity, Field: fe.Field(), Value: fe.Value(), Message: describeTag(fe)}
		},
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "scope":
		if err := scope.Validate(fe.Value().(string)); err != nil {
			return err.Error()
		}
		return "is not a valid scope"
	default:
		return "failed " + fe.Tag()
	}
}
