package csvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Struct fields map to columns through `csv:"name"` tags. A tag option
// ",omitempty" leaves zero values out of the row, which lets AddRecord assign
// ids and creation stamps. Fields of slice, map or struct type (other than
// time.Time) are stored as JSON text.

type fieldInfo struct {
	index     []int
	column    string
	omitEmpty bool
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

var timeType = reflect.TypeOf(time.Time{})

func fieldsOf(t reflect.Type) []fieldInfo {
	if v, ok := fieldCache.Load(t); ok {
		return v.([]fieldInfo)
	}
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("csv")
		if tag == "-" || tag == "" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fields = append(fields, fieldInfo{
			index:     f.Index,
			column:    name,
			omitEmpty: opts == "omitempty",
		})
	}
	fieldCache.Store(t, fields)
	return fields
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, errors.New("csvstore: nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("csvstore: expected struct, got %s", rv.Kind())
	}
	return rv, nil
}

// Marshal converts a tagged struct into a Row.
func Marshal(v any) (Row, error) {
	rv, err := structValue(v)
	if err != nil {
		return nil, err
	}
	fields := fieldsOf(rv.Type())
	row := make(Row, len(fields))
	for _, f := range fields {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		val, err := marshalField(fv)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", f.column, err)
		}
		row[f.column] = val
	}
	return row, nil
}

func marshalField(fv reflect.Value) (any, error) {
	if fv.Type() == timeType {
		t := fv.Interface().(time.Time)
		if t.IsZero() {
			return nil, nil
		}
		return t, nil
	}
	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			return nil, nil
		}
		return marshalField(fv.Elem())
	case reflect.String:
		return fv.String(), nil
	case reflect.Bool:
		return fv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(fv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return fv.Float(), nil
	case reflect.Slice, reflect.Map, reflect.Struct, reflect.Array:
		b, err := json.Marshal(fv.Interface())
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return nil, fmt.Errorf("unsupported kind %s", fv.Kind())
}

// Unmarshal fills a tagged struct from row. Conversion is lenient: a cell
// that cannot be represented in the field's type leaves the field at its zero
// value. Only malformed JSON in JSON fields is reported.
func Unmarshal(row Row, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("csvstore: Unmarshal needs a non-nil pointer")
	}
	sv, err := structValue(v)
	if err != nil {
		return err
	}
	for _, f := range fieldsOf(sv.Type()) {
		val, ok := row[f.column]
		if !ok || val == nil {
			continue
		}
		if err := unmarshalField(sv.FieldByIndex(f.index), val); err != nil {
			return fmt.Errorf("unmarshal %s: %w", f.column, err)
		}
	}
	return nil
}

func unmarshalField(fv reflect.Value, val any) error {
	if fv.Type() == timeType {
		switch t := val.(type) {
		case time.Time:
			fv.Set(reflect.ValueOf(t))
		case RawTime:
			fv.Set(reflect.ValueOf(t.Fallback))
		case string:
			if parsed, ok := parseTime(t, time.Local); ok {
				fv.Set(reflect.ValueOf(parsed))
			}
		}
		return nil
	}
	switch fv.Kind() {
	case reflect.Pointer:
		elem := reflect.New(fv.Type().Elem())
		if err := unmarshalField(elem.Elem(), val); err != nil {
			return err
		}
		fv.Set(elem)
	case reflect.String:
		s, _ := encodeCell("", val)
		fv.SetString(s)
	case reflect.Bool:
		switch b := val.(type) {
		case bool:
			fv.SetBool(b)
		case string:
			parsed, _ := strconv.ParseBool(strings.TrimSpace(b))
			fv.SetBool(parsed)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fv.SetInt(Row{"v": val}.Int("v"))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n := (Row{"v": val}).Int("v"); n > 0 {
			fv.SetUint(uint64(n))
		}
	case reflect.Float32, reflect.Float64:
		switch f := val.(type) {
		case float64:
			fv.SetFloat(f)
		case int64:
			fv.SetFloat(float64(f))
		case string:
			parsed, _ := strconv.ParseFloat(strings.TrimSpace(f), 64)
			fv.SetFloat(parsed)
		}
	case reflect.Slice, reflect.Map, reflect.Struct, reflect.Array:
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(s), fv.Addr().Interface()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}
