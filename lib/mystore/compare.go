package mystore

import (
	"fmt"
	"reflect"
	"time"
)

// fieldByName resolves the exported struct field as datastore would index it
func fieldByName(value any, fieldName string) (any, error) {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("nil value has no field %s", fieldName)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("value of type %T is not a struct", value)
	}

	f := v.FieldByName(fieldName)
	if !f.IsValid() {
		return nil, fmt.Errorf("type %T has no field %s", value, fieldName)
	}

	return f.Interface(), nil
}

func evaluate(fieldValue any, operator string, filterValue any) (bool, error) {
	cmp, err := compare(fieldValue, filterValue)
	if err != nil {
		return false, err
	}

	switch operator {
	case CompareEqual:
		return cmp == 0, nil
	case CompareNotEqual:
		return cmp != 0, nil
	case CompareLessThan:
		return cmp < 0, nil
	case CompareLessOrEqual:
		return cmp <= 0, nil
	case CompareGreaterThan:
		return cmp > 0, nil
	case CompareGreaterOrEqual:
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unsupported operator %q", operator)
	}
}

func compare(left any, right any) (int, error) {
	if lt, ok := left.(time.Time); ok {
		rt, ok := right.(time.Time)
		if !ok {
			return 0, fmt.Errorf("cannot compare time with %T", right)
		}
		return lt.Compare(rt), nil
	}

	lv := reflect.ValueOf(left)
	rv := reflect.ValueOf(right)

	switch {
	case isInt(lv) && isInt(rv):
		return compareOrdered(lv.Int(), rv.Int()), nil
	case isUint(lv) && isUint(rv):
		return compareOrdered(lv.Uint(), rv.Uint()), nil
	case isNumber(lv) && isNumber(rv):
		return compareOrdered(asFloat(lv), asFloat(rv)), nil
	case lv.Kind() == reflect.String && rv.Kind() == reflect.String:
		return compareOrdered(lv.String(), rv.String()), nil
	case lv.Kind() == reflect.Bool && rv.Kind() == reflect.Bool:
		l, r := 0, 0
		if lv.Bool() {
			l = 1
		}
		if rv.Bool() {
			r = 1
		}
		return compareOrdered(l, r), nil
	default:
		return 0, fmt.Errorf("cannot compare %T with %T", left, right)
	}
}

type ordered interface {
	~int | ~int64 | ~uint64 | ~float64 | ~string
}

func compareOrdered[T ordered](l, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || isFloat(v)
}

func asFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
