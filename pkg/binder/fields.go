package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindStruct fills the exported fields of the struct v points to. Fields are
// keyed by their tagName tag, or by the lowercased field name when untagged.
// Keys missing from values leave the field untouched.
func bindStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", bindErr)
	}
	rv = rv.Elem()

	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, ok := fieldKey(sf, tagName)
		if !ok {
			continue
		}
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		if err := assign(rv.Field(i), vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func fieldKey(sf reflect.StructField, tagName string) (string, bool) {
	name, _, _ := strings.Cut(sf.Tag.Get(tagName), ",")
	switch name {
	case "-":
		return "", false
	case "":
		return strings.ToLower(sf.Name), true
	}
	return name, true
}

// assign stores vals into field. Slices take every value, splitting
// comma-separated entries; other kinds take the first value.
func assign(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assign(field.Elem(), vals)

	case reflect.Slice:
		var items []string
		for _, v := range vals {
			for item := range strings.SplitSeq(v, ",") {
				items = append(items, strings.TrimSpace(item))
			}
		}
		s := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(s.Index(i), []string{item}); err != nil {
				return err
			}
		}
		field.Set(s)
		return nil
	}
	return assignScalar(field, vals[0])
}

func assignScalar(field reflect.Value, s string) error {
	var err error
	switch {
	case field.Kind() == reflect.String:
		field.SetString(s)
	case field.Kind() == reflect.Bool:
		var b bool
		if b, err = parseBool(s); err == nil {
			field.SetBool(b)
		}
	case field.CanInt():
		var n int64
		if n, err = strconv.ParseInt(s, 10, field.Type().Bits()); err == nil {
			field.SetInt(n)
		}
	case field.CanUint():
		var n uint64
		if n, err = strconv.ParseUint(s, 10, field.Type().Bits()); err == nil {
			field.SetUint(n)
		}
	case field.CanFloat():
		var f float64
		if f, err = strconv.ParseFloat(s, field.Type().Bits()); err == nil {
			field.SetFloat(f)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	if err != nil {
		return fmt.Errorf("invalid %s value %q", field.Kind(), s)
	}
	return nil
}

// parseBool accepts checkbox and yes/no spellings on top of the strconv forms.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "on", "yes":
		return true, nil
	case "", "0", "f", "false", "off", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
