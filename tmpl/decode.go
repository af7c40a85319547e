package tmpl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"reflect"

	"github.com/goccy/go-yaml"
)

// DecodeContext decodes a YAML (or JSON) document into an argument context.
// Empty input decodes to [Null].
func DecodeContext(r io.Reader) (Value, error) {
	var native any

	err := yaml.NewDecoder(r).Decode(&native)
	if errors.Is(err, io.EOF) {
		return Null{}, nil
	}

	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return FromNative(native)
}

// FromNative converts decoded Go data into a [Value]. It accepts the shapes
// produced by YAML, JSON and expression evaluators: nil, booleans, strings,
// integers, floats, maps with string-like keys, and slices.
func FromNative(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return fromUint(v), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil

	case map[string]any:
		out := make(Object, len(v))

		for k, e := range v {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			out[k] = ev
		}

		return out, nil

	case map[any]any:
		out := make(Object, len(v))

		for k, e := range v {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			out[keyString(k)] = ev
		}

		return out, nil

	case yaml.MapSlice:
		out := make(Object, len(v))

		for _, item := range v {
			ev, err := FromNative(item.Value)
			if err != nil {
				return nil, err
			}

			out[keyString(item.Key)] = ev
		}

		return out, nil

	case []any:
		out := make(Array, len(v))

		for i, e := range v {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			out[i] = ev
		}

		return out, nil
	}

	return fromReflect(reflect.ValueOf(v))
}

// fromReflect converts typed slices and maps not covered by [FromNative].
func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(Array, rv.Len())

		for i := range rv.Len() {
			ev, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}

			out[i] = ev
		}

		return out, nil

	case reflect.Map:
		out := make(Object, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			ev, err := FromNative(iter.Value().Interface())
			if err != nil {
				return nil, err
			}

			out[keyString(iter.Key().Interface())] = ev
		}

		return out, nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}

		return FromNative(rv.Elem().Interface())

	case reflect.Invalid:
		return Null{}, nil
	}

	return nil, ErrDecode.With(
		slog.String("issue", "unsupported type"),
		slog.String("type", rv.Type().String()),
	)
}

func fromUint(u uint64) Number {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}

	return Int(int64(u))
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	return fmt.Sprint(k)
}

// ToNative converts v into plain Go data: nil, bool, int64, float64, string,
// map[string]any and []any.
func ToNative(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		if v.IsFloat() {
			return v.Float64()
		}

		return v.Int64()
	case String:
		return string(v)

	case Object:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = ToNative(e)
		}

		return out

	case Array:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ToNative(e)
		}

		return out

	default:
		return nil
	}
}
