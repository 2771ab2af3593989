// Package unpack decodes JSON into Go values whose fields include
// interface types.  Each concrete type that may appear behind an interface
// is registered with a Reflector, which selects it by the value of the
// JSON field tagged with `unpack:""` (typically "kind").
package unpack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/agnivade/levenshtein"
)

type Reflector struct {
	// rules maps an unpack key (e.g., "kind") to the types selected by
	// each value of that key.
	rules map[string]map[string]reflect.Type
}

// New returns a Reflector with each template added per its unpack tag.
// New panics if a template's tags are malformed since this is a
// programming error caught at init time.
func New(templates ...interface{}) *Reflector {
	r := &Reflector{rules: make(map[string]map[string]reflect.Type)}
	for _, t := range templates {
		if err := r.add(t, ""); err != nil {
			panic(err)
		}
	}
	return r
}

// AddAs registers template under the explicit unpack value name.
func (r *Reflector) AddAs(template interface{}, name string) *Reflector {
	if err := r.add(template, name); err != nil {
		panic(err)
	}
	return r
}

func (r *Reflector) add(template interface{}, name string) error {
	typ := reflect.TypeOf(template)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	key, val, err := structToUnpackRule(typ)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("unpack: type %s has no unpack tag", typ.Name())
	}
	if name != "" {
		val = name
	}
	vals, ok := r.rules[key]
	if !ok {
		vals = make(map[string]reflect.Type)
		r.rules[key] = vals
	}
	vals[val] = typ
	return nil
}

// Unmarshal decodes b into result, which must be a non-nil pointer.
func (r *Reflector) Unmarshal(b []byte, result interface{}) error {
	dst := reflect.ValueOf(result)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.New("unpack: result must be a non-nil pointer")
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return err
	}
	return r.decode(generic, dst.Elem())
}

func (r *Reflector) decode(in interface{}, dst reflect.Value) error {
	if in == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if dst.CanAddr() {
		if u, ok := dst.Addr().Interface().(json.Unmarshaler); ok {
			b, err := json.Marshal(in)
			if err != nil {
				return err
			}
			return u.UnmarshalJSON(b)
		}
	}
	switch dst.Kind() {
	case reflect.Interface:
		return r.decodeInterface(in, dst)
	case reflect.Ptr:
		elem := reflect.New(dst.Type().Elem())
		if err := r.decode(in, elem.Elem()); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case reflect.Struct:
		obj, ok := in.(map[string]interface{})
		if !ok {
			return typeError(in, dst.Type())
		}
		return r.decodeStruct(obj, dst)
	case reflect.Slice:
		list, ok := in.([]interface{})
		if !ok {
			return typeError(in, dst.Type())
		}
		out := reflect.MakeSlice(dst.Type(), len(list), len(list))
		for k, elem := range list {
			if err := r.decode(elem, out.Index(k)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Map:
		obj, ok := in.(map[string]interface{})
		if !ok || dst.Type().Key().Kind() != reflect.String {
			return typeError(in, dst.Type())
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(obj))
		for k, v := range obj {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := r.decode(v, elem); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
		}
		dst.Set(out)
		return nil
	}
	return decodeScalar(in, dst)
}

func (r *Reflector) decodeInterface(in interface{}, dst reflect.Value) error {
	obj, ok := in.(map[string]interface{})
	if !ok {
		if dst.NumMethod() == 0 {
			dst.Set(reflect.ValueOf(in))
			return nil
		}
		return typeError(in, dst.Type())
	}
	typ, err := r.lookup(obj)
	if err != nil {
		return err
	}
	if typ == nil {
		if dst.NumMethod() == 0 {
			dst.Set(reflect.ValueOf(in))
			return nil
		}
		return fmt.Errorf("unpack: no unpack key found for %s", dst.Type())
	}
	ptr := reflect.New(typ)
	if !ptr.Type().Implements(dst.Type()) {
		return fmt.Errorf("unpack: %s does not implement %s", typ.Name(), dst.Type())
	}
	if err := r.decodeStruct(obj, ptr.Elem()); err != nil {
		return err
	}
	dst.Set(ptr)
	return nil
}

func (r *Reflector) lookup(obj map[string]interface{}) (reflect.Type, error) {
	for key, vals := range r.rules {
		v, ok := obj[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unpack: field %q must be a string", key)
		}
		if typ, ok := vals[s]; ok {
			return typ, nil
		}
		return nil, unknownValue(key, s, vals)
	}
	return nil, nil
}

func unknownValue(key, val string, vals map[string]reflect.Type) error {
	var best string
	dist := -1
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if d := levenshtein.ComputeDistance(val, name); dist < 0 || d < dist {
			best, dist = name, d
		}
	}
	if best != "" && dist <= len(best)/2 {
		return fmt.Errorf("unpack: unknown %s %q (did you mean %q?)", key, val, best)
	}
	return fmt.Errorf("unpack: unknown %s %q", key, val)
}

func (r *Reflector) decodeStruct(obj map[string]interface{}, dst reflect.Value) error {
	typ := dst.Type()
	for k := 0; k < typ.NumField(); k++ {
		field := typ.Field(k)
		if field.PkgPath != "" {
			continue
		}
		name, ok := jsonFieldName(field)
		if name == "-" {
			continue
		}
		if !ok || name == "" {
			name = field.Name
		}
		v, ok := obj[name]
		if !ok {
			continue
		}
		if err := r.decode(v, dst.Field(k)); err != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name(), name, err)
		}
	}
	return nil
}

func decodeScalar(in interface{}, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.String:
		s, ok := in.(string)
		if !ok {
			return typeError(in, dst.Type())
		}
		dst.SetString(s)
	case reflect.Bool:
		b, ok := in.(bool)
		if !ok {
			return typeError(in, dst.Type())
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := in.(json.Number)
		if !ok {
			return typeError(in, dst.Type())
		}
		i, err := n.Int64()
		if err != nil {
			return err
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := in.(json.Number)
		if !ok {
			return typeError(in, dst.Type())
		}
		i, err := n.Int64()
		if err != nil || i < 0 {
			return typeError(in, dst.Type())
		}
		dst.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		n, ok := in.(json.Number)
		if !ok {
			return typeError(in, dst.Type())
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	default:
		return fmt.Errorf("unpack: unsupported type %s", dst.Type())
	}
	return nil
}

func typeError(in interface{}, typ reflect.Type) error {
	return fmt.Errorf("unpack: cannot decode JSON %T into %s", in, typ)
}
