package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Bind decodes tool arguments into target, a pointer to an input struct.
// Fields already set on target survive when the argument is absent, so callers
// pre-fill defaults before binding. Numeric and boolean fields also accept
// their string forms ("1", "50.5", "true").
func Bind(args map[string]interface{}, target interface{}) error {
	if len(args) == 0 {
		return nil
	}
	args, err := coerce(args, target)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// coerce converts string arguments bound to numeric or boolean fields of
// target. Anything else is left for the JSON decoder to accept or reject.
func coerce(args map[string]interface{}, target interface{}) (map[string]interface{}, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return args, nil
	}

	var out map[string]interface{}
	rt := rv.Elem().Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name := fieldName(field)
		if name == "" {
			continue
		}
		str, ok := args[name].(string)
		if !ok {
			continue
		}

		var (
			value interface{}
			err   error
			want  string
		)
		switch field.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			value, err = parseString(str, cast.ToInt64E)
			want = "an integer"
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			value, err = parseString(str, cast.ToUint64E)
			want = "a non-negative integer"
		case reflect.Float32, reflect.Float64:
			value, err = parseString(str, cast.ToFloat64E)
			want = "a number"
		case reflect.Bool:
			value, err = parseString(str, cast.ToBoolE)
			want = "a boolean"
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("invalid arguments: argument %s must be %s", name, want)
		}

		if out == nil {
			out = make(map[string]interface{}, len(args))
			for k, v := range args {
				out[k] = v
			}
		}
		out[name] = value
	}
	if out == nil {
		return args, nil
	}
	return out, nil
}

func parseString[T any](s string, fn func(interface{}) (T, error)) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		var zero T
		return zero, fmt.Errorf("empty value")
	}
	return fn(s)
}

func fieldName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

// Executor adapts a typed function to a ToolExecutor. newInput returns the
// input struct with its defaults filled in.
func Executor[In any, Out any](newInput func() *In, fn func(ctx context.Context, in *In) (Out, error)) ToolExecutor {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := newInput()
		if err := Bind(args, in); err != nil {
			return nil, err
		}
		return fn(ctx, in)
	}
}

// Float reads a numeric argument. Numeric strings are accepted the way a
// lenient JSON client would send them.
func Float(args map[string]interface{}, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument: %s", key)
	}
	if _, isBool := raw.(bool); isBool {
		return 0, fmt.Errorf("argument %s must be a number", key)
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("argument %s must be a number", key)
	}
	return value, nil
}
