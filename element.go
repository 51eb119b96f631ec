package rawbuf

import (
	"fmt"
	"reflect"
	"sync"
)

var plainTypes sync.Map // reflect.Type -> error

// checkPlain rejects element types the garbage collector would need to see
// inside the buffer. Storage is raw bytes, so only pointer-free values can
// be copied in and out safely.
func checkPlain[T any]() error {
	t := reflect.TypeFor[T]()
	if v, ok := plainTypes.Load(t); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}

	var err error
	if path, kind, ok := findPointer(t, t.String()); ok {
		err = fmt.Errorf("%w: %s holds a %s at %s", ErrUnsupportedType, t, kind, path)
	}
	plainTypes.Store(t, err)
	return err
}

// findPointer walks t and returns the location of the first pointer-bearing
// component.
func findPointer(t reflect.Type, path string) (string, reflect.Kind, bool) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "", 0, false
	case reflect.Array:
		return findPointer(t.Elem(), path+"[]")
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if p, k, ok := findPointer(f.Type, path+"."+f.Name); ok {
				return p, k, true
			}
		}
		return "", 0, false
	default:
		return path, t.Kind(), true
	}
}
