package capability

import (
	"fmt"
	"reflect"
)

// Layout describes the physical layout of a combined configuration
// value: its total size and the offset, size, and emptiness of every
// field, recursively.
//
// Describe is the introspection side of the combinator contract: every
// fragment must have a fixed, offset-addressable layout, and Layout
// makes that layout visible to tests and tooling. It is never used on a
// hot path.
type Layout struct {
	Size   uintptr `json:"size"`
	Fields []Field `json:"fields,omitempty"`
}

// Field is one struct field within a Layout.
type Field struct {
	Name   string  `json:"name"`
	Offset uintptr `json:"offset"`
	Size   uintptr `json:"size"`
	Empty  bool    `json:"empty"`
	Fields []Field `json:"fields,omitempty"`
}

// Describe reports the layout of v, which must be a struct or a pointer
// to one. Fragment authors violating the fixed-layout precondition (for
// example by supplying an interface-typed fragment) get an error here,
// at composition time, never a fault at access time.
func Describe(v any) (Layout, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return Layout{}, fmt.Errorf("capability: cannot describe untyped nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if err := checkFixedLayout(t, nil); err != nil {
		return Layout{}, err
	}
	return Layout{Size: t.Size(), Fields: describeFields(t)}, nil
}

func describeFields(t reflect.Type) []Field {
	if t.Kind() != reflect.Struct {
		return nil
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fields = append(fields, Field{
			Name:   f.Name,
			Offset: f.Offset,
			Size:   f.Type.Size(),
			Empty:  f.Type.Size() == 0,
			Fields: describeFields(f.Type),
		})
	}
	return fields
}

// checkFixedLayout rejects types whose in-memory position of state is
// not determined by the type alone. Interfaces hide their dynamic
// value behind a pointer, so a fragment stored as an interface would
// defeat the offset-addressable guarantee.
func checkFixedLayout(t reflect.Type, path []string) error {
	switch t.Kind() {
	case reflect.Interface:
		return fmt.Errorf("capability: fragment %s has interface type %s; fragments must be concrete struct or scalar types", fieldPath(path), t)
	case reflect.Map, reflect.Chan, reflect.Func:
		return fmt.Errorf("capability: fragment %s has unaddressable type %s", fieldPath(path), t)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := checkFixedLayout(f.Type, append(path, f.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func fieldPath(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	s := path[0]
	for _, p := range path[1:] {
		s += "." + p
	}
	return s
}
