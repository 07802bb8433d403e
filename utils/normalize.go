package utils

import (
	"reflect"
	"strings"
)

// normalizeField trims strings and rounds float64s in place.
func normalizeField(f reflect.Value) {
	switch f.Kind() {
	case reflect.String:
		if f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	case reflect.Float64:
		if f.CanSet() {
			f.SetFloat(Round2(f.Float()))
		}
	}
}

// NormalizePtrDTO normalizes the set fields of a pointer-to-struct patch DTO.
// Nil pointer fields are left alone so GORM skips them on update.
func NormalizePtrDTO(dto any) {
	s := structOf(dto)
	if !s.IsValid() {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		normalizeField(f.Elem())
	}
}

// NormalizeDTO normalizes every string and float64 field of a
// pointer-to-struct create DTO.
func NormalizeDTO(dto any) {
	s := structOf(dto)
	if !s.IsValid() {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		normalizeField(s.Field(i))
	}
}

// structOf unwraps a pointer-to-struct, returning a zero Value otherwise.
func structOf(dto any) reflect.Value {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return reflect.Value{}
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return s
}
