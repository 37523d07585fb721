// Package typeconv contains the helpers used for converting the query string literals
// into the resource field types.
package typeconv

import (
	"encoding"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/internal/safemap"
)

var (
	// ErrConversion is the error classification for the type conversion failures.
	ErrConversion = errors.Wrap(errors.ErrInvalidInput, "type conversion")
	// ErrUnsupportedType is the error classification used when the type is not convertible.
	ErrUnsupportedType = errors.Wrap(ErrConversion, "unsupported type")
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	uuidType            = reflect.TypeOf(uuid.UUID{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	defaultValues = safemap.New[reflect.Type, interface{}]()
)

// ConvertTo converts the string 'value' into the provided type 't'.
// Pointer types are converted into the pointer to the converted base value.
func ConvertTo(value string, t reflect.Type) (interface{}, error) {
	if t.Kind() == reflect.Ptr {
		converted, err := ConvertTo(value, t.Elem())
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(reflect.ValueOf(converted))
		return ptr.Interface(), nil
	}
	v := reflect.New(t).Elem()
	if err := setValue(value, v); err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// DefaultValue gets the zero value for given type. The values are cached.
func DefaultValue(t reflect.Type) interface{} {
	return defaultValues.GetOrCompute(t, func() interface{} {
		return reflect.Zero(t).Interface()
	})
}

// CanContainNull checks if the values of given type could be nil.
func CanContainNull(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

// Dereference returns the base value of provided 'v' removing all the pointers.
// If any pointer within the path is nil the function returns false.
func Dereference(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, true
}

func setValue(value string, v reflect.Value) error {
	t := v.Type()
	switch t {
	case timeType:
		tm, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return errors.WrapDetf(ErrConversion, "invalid time value: '%s'", value).
				WithDetailf("Failed to convert '%s' into a RFC3339 time.", value)
		}
		v.Set(reflect.ValueOf(tm))
		return nil
	case uuidType:
		id, err := uuid.Parse(value)
		if err != nil {
			return errors.WrapDetf(ErrConversion, "invalid uuid value: '%s'", value).
				WithDetailf("Failed to convert '%s' into an UUID.", value)
		}
		v.Set(reflect.ValueOf(id))
		return nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		if err := v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value)); err != nil {
			return errors.WrapDetf(ErrConversion, "unmarshal text failed: %v", err).
				WithDetailf("Failed to convert '%s' into type '%s'.", value, t.Name())
		}
		return nil
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return conversionError(value, t)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, t.Bits())
		if err != nil {
			return conversionError(value, t)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, t.Bits())
		if err != nil {
			return conversionError(value, t)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, t.Bits())
		if err != nil {
			return conversionError(value, t)
		}
		v.SetFloat(f)
	default:
		return errors.WrapDetf(ErrUnsupportedType, "unsupported type: '%s'", t).
			WithDetailf("Filtering over values of type '%s' is not supported.", t.Name())
	}
	return nil
}

func conversionError(value string, t reflect.Type) error {
	return errors.WrapDetf(ErrConversion, "invalid '%s' value: '%s'", t.Kind(), value).
		WithDetailf("Failed to convert '%s' of type 'String' to type '%s'.", value, t.Name())
}
