package csvstore

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// DateTimeLayout is the layout datetime cells are written with.
	DateTimeLayout = "2006-01-02 15:04:05"
	// DateLayout is the layout date cells are written with.
	DateLayout = "2006-01-02"
)

// dateLayouts are tried in order before falling back to dateparse.
var dateLayouts = []string{
	DateTimeLayout,
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	DateLayout,
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
}

// RawTime is a datetime cell that matched no known format. Typed reads see
// Fallback; writes put Raw back unchanged, so a load and save round trip
// never replaces the original text.
type RawTime struct {
	Raw      string
	Fallback time.Time
}

// parseTime runs the datetime chain. ok is false when no layout and no
// auto-detection matched.
func parseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseIn(s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// pandas writes integer columns holding blanks as floats ("3.0")
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int64(f), true
	}
	return 0, false
}

// decodeCell turns a raw cell into its typed value. Empty typed cells decode
// to nil; cells that do not parse as their kind are returned as text.
func (s *Store) decodeCell(table, column, cell string) any {
	kind := KindOf(column)
	if kind == KindString {
		return cell
	}
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	switch kind {
	case KindInt:
		if n, ok := parseInt(cell); ok {
			return n
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
			return f
		}
	case KindBool:
		if b, err := strconv.ParseBool(strings.TrimSpace(cell)); err == nil {
			return b
		}
	case KindDate, KindDateTime:
		if t, ok := parseTime(cell, s.loc); ok {
			return t
		}
		s.logger.Warn("unparsable datetime, using fallback",
			"table", table, "column", column, "value", cell)
		return RawTime{Raw: cell, Fallback: s.dateFallback}
	}
	return cell
}

// encodeCell formats a value for the given column. Values that do not match
// the column kind are written as plain text.
func encodeCell(column string, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		if KindOf(column) == KindInt && val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10), nil
		}
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case RawTime:
		return val.Raw, nil
	case time.Time:
		if KindOf(column) == KindDate {
			return val.Format(DateLayout), nil
		}
		return val.Format(DateTimeLayout), nil
	case *time.Time:
		if val == nil {
			return "", nil
		}
		return encodeCell(column, *val)
	case []byte:
		return string(val), nil
	default:
		rv := reflect.ValueOf(val)
		switch rv.Kind() {
		case reflect.String:
			return rv.String(), nil
		case reflect.Bool:
			return strconv.FormatBool(rv.Bool()), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(rv.Int(), 10), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(rv.Uint(), 10), nil
		case reflect.Float32, reflect.Float64:
			return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
		}
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encode column %s: %w", column, err)
		}
		return string(b), nil
	}
}
