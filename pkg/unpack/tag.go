package unpack

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const (
	tagJSON   = "json"
	tagUnpack = "unpack"
)

var ErrTag = errors.New(`unpack tag must have form "" or "<value>"`)

func parseTag(which string, f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup(which)
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, true
}

func jsonFieldName(f reflect.StructField) (string, bool) {
	return parseTag(tagJSON, f)
}

// structToUnpackRule checks that the JSON tags of a struct are unique, since
// package json silently drops duplicates, and returns the JSON name of the
// single field carrying an unpack tag along with the value that selects
// this type.  An empty unpack tag selects the type by its Go name.
func structToUnpackRule(typ reflect.Type) (string, string, error) {
	if typ.Kind() != reflect.Struct {
		return "", "", errors.New("unpack: cannot unpack into non-struct")
	}
	names := make(map[string]struct{})
	var key, val string
	for k := 0; k < typ.NumField(); k++ {
		field := typ.Field(k)
		jsonName, jsonOK := jsonFieldName(field)
		if jsonOK {
			if _, ok := names[jsonName]; ok {
				return "", "", fmt.Errorf("json field tag %q in struct type %q not unique", jsonName, typ.Name())
			}
			names[jsonName] = struct{}{}
		}
		unpackVal, ok := field.Tag.Lookup(tagUnpack)
		if !ok {
			continue
		}
		if strings.Contains(unpackVal, ",") {
			return "", "", ErrTag
		}
		if key != "" {
			return "", "", fmt.Errorf("unpack key appears twice (for JSON field %s and %s)", key, jsonName)
		}
		if jsonName == "" {
			jsonName = field.Name
		}
		key = jsonName
		val = unpackVal
		if val == "" {
			val = typ.Name()
		}
	}
	return key, val, nil
}
