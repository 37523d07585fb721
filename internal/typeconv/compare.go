package typeconv

import (
	"reflect"
	"time"
)

// Compare compares the values 'a' and 'b' of the same kind. The string values are compared
// with the 'compareStrings' function. Returns -1 if a < b, 0 if a == b and 1 if a > b.
// The second result is false if the values are not comparable.
func Compare(a, b interface{}, compareStrings func(a, b string) int) (int, bool) {
	av, aok := Dereference(reflect.ValueOf(a))
	bv, bok := Dereference(reflect.ValueOf(b))
	if !aok || !bok || !av.IsValid() || !bv.IsValid() {
		return 0, false
	}
	if at, ok := av.Interface().(time.Time); ok {
		bt, ok := bv.Interface().(time.Time)
		if !ok {
			return 0, false
		}
		return at.Compare(bt), true
	}

	switch av.Kind() {
	case reflect.String:
		if bv.Kind() != reflect.String {
			return 0, false
		}
		if compareStrings == nil {
			return compareOrdered(av.String(), bv.String()), true
		}
		return compareStrings(av.String(), bv.String()), true
	case reflect.Bool:
		if bv.Kind() != reflect.Bool {
			return 0, false
		}
		x, y := av.Bool(), bv.Bool()
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch bv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return compareOrdered(av.Int(), bv.Int()), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if av.Int() < 0 {
				return -1, true
			}
			return compareOrdered(uint64(av.Int()), bv.Uint()), true
		case reflect.Float32, reflect.Float64:
			return compareOrdered(float64(av.Int()), bv.Float()), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch bv.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return compareOrdered(av.Uint(), bv.Uint()), true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if bv.Int() < 0 {
				return 1, true
			}
			return compareOrdered(av.Uint(), uint64(bv.Int())), true
		case reflect.Float32, reflect.Float64:
			return compareOrdered(float64(av.Uint()), bv.Float()), true
		}
	case reflect.Float32, reflect.Float64:
		switch bv.Kind() {
		case reflect.Float32, reflect.Float64:
			return compareOrdered(av.Float(), bv.Float()), true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return compareOrdered(av.Float(), float64(bv.Int())), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return compareOrdered(av.Float(), float64(bv.Uint())), true
		}
	}
	if av.Type() == bv.Type() && av.Comparable() {
		if av.Interface() == bv.Interface() {
			return 0, true
		}
	}
	return 0, false
}

type ordered interface {
	~int64 | ~uint64 | ~float64 | ~string
}

func compareOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
