// Package assert provides minimal test helpers.
package assert

import (
	"reflect"
	"testing"
)

// Equal fails the test if got != want.
func Equal[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v; want %v", got, want)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// Nil fails the test if v is non-nil. Typed nil pointers count as nil.
func Nil(t *testing.T, v any) {
	t.Helper()
	if !isNil(v) {
		t.Errorf("got %v; want nil", v)
	}
}

// NotNil fails the test if v is nil.
func NotNil(t *testing.T, v any) {
	t.Helper()
	if isNil(v) {
		t.Error("got nil; want non-nil")
	}
}

// True fails the test if the condition is false.
func True(t *testing.T, condition bool) {
	t.Helper()
	if !condition {
		t.Error("got false; want true")
	}
}

// False fails the test if the condition is true.
func False(t *testing.T, condition bool) {
	t.Helper()
	if condition {
		t.Error("got true; want false")
	}
}
