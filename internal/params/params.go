// Package params holds the immutable parameter sets that parameterized
// methods are expanded over.
package params

import (
	"fmt"
	"reflect"
	"strings"
)

// Field is one named value of a parameter set.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for building a Field literal.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// ParameterSet is an ordered, read-only sequence of named values.
//
// A ParameterSet is sealed at construction: New deep-copies every slice, map
// and pointer it is given, Value hands out deep copies, and no method
// modifies the receiver, so a set can be shared between goroutines and cases
// without locking.
type ParameterSet struct {
	index  int
	fields []Field
}

// New builds a parameter set from fields in declaration order. Later fields
// with a name already present replace the earlier value in place.
func New(fields ...Field) ParameterSet {
	ps := ParameterSet{fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		f.Value = copyValue(f.Value)
		if i := ps.lookup(f.Name); i >= 0 {
			ps.fields[i] = f
			continue
		}
		ps.fields = append(ps.fields, f)
	}
	return ps
}

// At returns a copy of the set tagged with its position in a source list.
func (p ParameterSet) At(index int) ParameterSet {
	p.index = index
	return p
}

// Index returns the position of the set in the list it was expanded from.
func (p ParameterSet) Index() int {
	return p.index
}

// Len returns the number of fields.
func (p ParameterSet) Len() int {
	return len(p.fields)
}

// Names returns field names in declaration order.
func (p ParameterSet) Names() []string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the set declares a field.
func (p ParameterSet) Has(name string) bool {
	return p.lookup(name) >= 0
}

// Value returns a deep copy of the raw value of a field.
func (p ParameterSet) Value(name string) (any, error) {
	i := p.lookup(name)
	if i < 0 {
		return nil, missing(name, KindAny)
	}
	return copyValue(p.fields[i].Value), nil
}

// GetString returns a string field.
func (p ParameterSet) GetString(name string) (string, error) {
	v, err := p.Value(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", mistyped(name, KindString, v)
	}
	return s, nil
}

// GetStrings returns a sequence-of-strings field. The returned slice is a
// copy and may be modified by the caller.
func (p ParameterSet) GetStrings(name string) ([]string, error) {
	v, err := p.Value(name)
	if err != nil {
		return nil, err
	}
	switch vv := v.(type) {
	case []string:
		return vv, nil
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, mistyped(name, KindStrings, v)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, mistyped(name, KindStrings, v)
}

// GetInt returns an integer field.
func (p ParameterSet) GetInt(name string) (int, error) {
	v, err := p.Value(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	}
	return 0, mistyped(name, KindInt, v)
}

// GetBool returns a boolean field.
func (p ParameterSet) GetBool(name string) (bool, error) {
	v, err := p.Value(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, mistyped(name, KindBool, v)
	}
	return b, nil
}

// MustString is GetString for method bodies: it panics with a *FieldError,
// which the case runner reports as an errored case.
func (p ParameterSet) MustString(name string) string {
	s, err := p.GetString(name)
	if err != nil {
		panic(err)
	}
	return s
}

// MustStrings is the panicking form of GetStrings.
func (p ParameterSet) MustStrings(name string) []string {
	s, err := p.GetStrings(name)
	if err != nil {
		panic(err)
	}
	return s
}

// MustInt is the panicking form of GetInt.
func (p ParameterSet) MustInt(name string) int {
	n, err := p.GetInt(name)
	if err != nil {
		panic(err)
	}
	return n
}

// MustBool is the panicking form of GetBool.
func (p ParameterSet) MustBool(name string) bool {
	b, err := p.GetBool(name)
	if err != nil {
		panic(err)
	}
	return b
}

// String renders the set as {name: value, ...} in declaration order.
func (p ParameterSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range p.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Name, render(f.Value))
	}
	b.WriteString("}")
	return b.String()
}

func (p ParameterSet) lookup(name string) int {
	for i, f := range p.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func render(v any) string {
	switch vv := v.(type) {
	case string:
		return fmt.Sprintf("%q", vv)
	case []string:
		quoted := make([]string, len(vv))
		for i, s := range vv {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%v", v)
}

// copyValue detaches v from the caller's storage. Slices, arrays, maps,
// pointers and the exported fields of structs are copied deeply; channels,
// funcs and unexported struct fields are shared.
func copyValue(v any) any {
	switch vv := v.(type) {
	case nil:
		return nil
	case string, bool, int, int64, float64:
		return v
	case []string:
		if vv == nil {
			return []string(nil)
		}
		return append(make([]string, 0, len(vv)), vv...)
	}
	return deepCopy(reflect.ValueOf(v)).Interface()
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(deepCopy(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(deepCopy(v.Elem()))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if out.Field(i).CanSet() {
				out.Field(i).Set(deepCopy(v.Field(i)))
			}
		}
		return out
	}
	return v
}
