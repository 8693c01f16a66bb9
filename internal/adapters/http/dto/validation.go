package dto

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

var (
	// ErrValidation marks a body or query that was read but rejected.
	ErrValidation = errors.New("validation failed")

	// ErrBinding marks a body or query that could not be read at all.
	ErrBinding = errors.New("binding failed")
)

// rule is a custom validator tag backed by a domain parser.
type rule struct {
	check   func(string) error
	message string
}

// rules are the tags request structs may use beyond the validator
// built-ins. Empty values pass; pair them with required where needed.
var rules = map[string]rule{
	"column": {
		check:   func(s string) error { _, err := domain.NormalizeColumnName(s); return err },
		message: "must be a column name of letters, digits and underscores",
	},
	"coltype": {
		check:   func(s string) error { _, err := domain.ParseColumnType(s); return err },
		message: "must be one of: string, integer, int, boolean, bool, float, date",
	},
	"scope": {
		check:   func(s string) error { _, err := layout.ParseScope(s); return err },
		message: "must be quotation or global",
	},
}

var builtinMessages = map[string]string{
	"required": "this field is required",
	"notempty": "must not be empty",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"gt":       "must be greater than %s",
	"lt":       "must be less than %s",
	"oneof":    "must be one of: %s",
}

var (
	v    *validator.Validate
	once sync.Once
)

func structValidator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		_ = v.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		for tag, r := range rules {
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				s := fl.Field().String()
				return s == "" || r.check(s) == nil
			})
		}
	})

	return v
}

// Validatable is implemented by bodies with rules that span fields.
type Validatable interface {
	Validate() error
}

// ValidateAll checks the struct tags of in, then its Validate method.
func ValidateAll(in any) error {
	if err := structValidator().Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if vv, ok := in.(Validatable); ok {
		if err := vv.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return nil
}

// BindAndValidate reads the JSON body into in and validates it.
func BindAndValidate(c *gin.Context, in any) error {
	if err := c.ShouldBindJSON(in); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return ValidateAll(in)
}

// BindQueryAndValidate reads the query string into in and validates it.
func BindQueryAndValidate(c *gin.Context, in any) error {
	if err := c.ShouldBindQuery(in); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return ValidateAll(in)
}

// ValidationErrors lists the rejected fields of err with a message each.
// Domain validation details are merged in.
func ValidationErrors(err error) map[string]string {
	out := map[string]string{}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[fe.Field()] = message(fe)
		}
	}

	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		maps.Copy(out, domainErr.Details())
	}

	return out
}

func message(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()

	if r, ok := rules[tag]; ok {
		return r.message
	}

	switch tag {
	case "min", "max":
		unit := ""
		if fe.Kind() == reflect.String {
			unit = " characters"
		}
		if tag == "min" {
			return "must be at least " + param + unit
		}
		return "must be at most " + param + unit
	}

	if m, ok := builtinMessages[tag]; ok {
		if strings.Contains(m, "%s") {
			return fmt.Sprintf(m, param)
		}
		return m
	}

	return "failed validation: " + tag
}
