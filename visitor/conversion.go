package visitor

import (
	"reflect"

	"github.com/erraggy/bpmnconv/convertible"
)

// AddConversion applies fn to the nearest enclosing convertible that
// implements T.
func AddConversion[T any](ctx Context, fn func(T)) error {
	c, err := Enclosing[T](ctx)
	if err != nil {
		return err
	}
	fn(c)
	return nil
}

// Enclosing returns the nearest enclosing convertible that implements T.
func Enclosing[T any](ctx Context) (T, error) {
	var zero T
	c, err := ctx.Convertible(capabilityName[T](), func(c convertible.Convertible) bool {
		_, ok := c.(T)
		return ok
	})
	if err != nil {
		return zero, err
	}
	return c.(T), nil
}

func capabilityName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
