// Package env populates configuration structs from environment variables.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Validator is implemented by config structs that need validation.
type Validator interface {
	Validate() error
}

// ErrInvalidValue is returned when an environment variable value cannot be parsed.
type ErrInvalidValue struct {
	Field  string
	EnvVar string
	Value  string
	Err    error
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s=%q (field: %s): %v", e.EnvVar, e.Value, e.Field, e.Err)
}

func (e ErrInvalidValue) Unwrap() error {
	return e.Err
}

// ErrNotStructPointer is returned when Load is called with a non-pointer or non-struct argument.
type ErrNotStructPointer struct {
	Type string
}

func (e ErrNotStructPointer) Error() string {
	return fmt.Sprintf("env.Load: argument must be a pointer to struct, got %s", e.Type)
}

// ErrUnsupportedType is returned when a field has an unsupported type.
type ErrUnsupportedType struct {
	Kind string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Kind)
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// Load fills the struct pointed to by v from the environment.
//
// Supported struct tags:
//   - env:"VAR_NAME"  maps the field to VAR_NAME
//   - default:"value" used when VAR_NAME is not set at all
//
// Supported field types are string, signed integers, bool, time.Duration and
// []string (comma separated, blanks dropped). Nested structs are loaded
// recursively and validated when they implement Validator; the root struct
// is validated last.
//
// A variable that is set to the empty string is respected for string fields
// and does not fall back to the default.
func Load(v any) error {
	ptrVal := reflect.ValueOf(v)
	if ptrVal.Kind() != reflect.Pointer || ptrVal.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer{Type: fmt.Sprintf("%T", v)}
	}

	if err := parseStruct(ptrVal.Elem()); err != nil {
		return err
	}

	if validator, ok := v.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func parseStruct(val reflect.Value) error {
	typ := val.Type()

	for i := range val.NumField() {
		field := val.Field(i)
		structField := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := parseStruct(field); err != nil {
				return err
			}
			if validator, ok := field.Addr().Interface().(Validator); ok {
				if err := validator.Validate(); err != nil {
					return err
				}
			}
			continue
		}

		envKey := structField.Tag.Get("env")
		if envKey == "" {
			continue
		}

		value, exists := os.LookupEnv(envKey)
		if !exists {
			def, hasDefault := structField.Tag.Lookup("default")
			if !hasDefault {
				continue
			}
			value = def
		}

		// Non-string fields treat an empty value as unset.
		if value == "" && field.Kind() != reflect.String {
			continue
		}

		if err := setField(field, value); err != nil {
			return ErrInvalidValue{
				Field:  structField.Name,
				EnvVar: envKey,
				Value:  value,
				Err:    err,
			}
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}

		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
		return nil

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return ErrUnsupportedType{Kind: "[]" + field.Type().Elem().Kind().String()}
		}
		var parts []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		field.Set(reflect.ValueOf(parts))
		return nil

	default:
		return ErrUnsupportedType{Kind: field.Kind().String()}
	}
}
