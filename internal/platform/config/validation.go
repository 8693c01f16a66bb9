package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// configValidator reports fields by their koanf keys, so a message names
// the yaml path and, upper-cased with an APP_ prefix, the env variable.
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name, _, _ := strings.Cut(f.Tag.Get("koanf"), ","); name != "" {
				return name
			}
			return strings.ToLower(f.Name)
		})

		validate.RegisterStructValidation(layoutBackendRules, LayoutConfig{})
		validate.RegisterStructValidation(retryRules, RetryConfig{})
	})

	return validate
}

// layoutBackendRules requires the settings of the selected backend only.
func layoutBackendRules(sl validator.StructLevel) {
	l := sl.Current().Interface().(LayoutConfig)

	switch l.Backend {
	case LayoutBackendRedis:
		if l.Redis.Addr == "" {
			sl.ReportError(l.Redis.Addr, "redis.addr", "Addr", "backend_redis", "")
		}
	case LayoutBackendMongo:
		for _, f := range []struct{ key, value string }{
			{"mongo.uri", l.Mongo.URI},
			{"mongo.database", l.Mongo.Database},
			{"mongo.collection", l.Mongo.Collection},
		} {
			if f.value == "" {
				sl.ReportError(f.value, f.key, f.key, "backend_mongo", "")
			}
		}
	}
}

func retryRules(sl validator.StructLevel) {
	r := sl.Current().Interface().(RetryConfig)

	if r.MaxInterval > 0 && r.MaxInterval < r.InitialInterval {
		sl.ReportError(r.MaxInterval, "max_interval", "MaxInterval", "gte_initial", "")
	}
}

// Validate checks the whole configuration. The service refuses to start
// on the first error it returns.
func (c *Config) Validate() error {
	err := configValidator().Struct(c)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := keyPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, fe.Param())
	case "backend_redis":
		return key + " is required when layout.backend is redis"
	case "backend_mongo":
		return key + " is required when layout.backend is mongo"
	case "gte_initial":
		return key + " must not be shorter than initial_interval"
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "url":
		return key + " must be a valid URL"
	case "startswith":
		return fmt.Sprintf("%s must start with %q", key, fe.Param())
	}

	return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
}

// keyPath drops the root type from a namespace: "Config.server.port"
// becomes "server.port".
func keyPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}
