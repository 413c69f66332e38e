package markup

import (
	"reflect"
)

// RegisterConverter teaches renderer how to turn values of type T into a tree.
func RegisterConverter[T any](renderer *Renderer, fn ConvertFn[T]) {
	t := reflect.TypeFor[T]()
	renderer.converters[t] = func(v reflect.Value) any {
		return fn(v.Interface().(T))
	}
}
