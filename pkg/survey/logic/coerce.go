package logic

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// normalizeValue brings answer values decoded from JSON, BSON or Go literals into a small set of
// shapes: string, float64, bool, []interface{}, nil. Anything else is returned as is.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case string, bool, float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int8:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case uint:
		return float64(val)
	case uint8:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case uint64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return f
	case []interface{}:
		return val
	case []string:
		list := make([]interface{}, len(val))
		for i, s := range val {
			list[i] = s
		}
		return list
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			list[i] = rv.Index(i).Interface()
		}
		return list
	}
	return v
}

func asList(v interface{}) ([]interface{}, bool) {
	list, ok := normalizeValue(v).([]interface{})
	return list, ok
}

func isEmptyAnswer(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func coerceEquals(actual interface{}, expected interface{}) bool {
	actual = normalizeValue(actual)
	expected = normalizeValue(expected)

	if strictEquals(actual, expected) {
		return true
	}

	aStr, aIsStr := actual.(string)
	eStr, eIsStr := expected.(string)
	if aIsStr && eIsStr {
		return strings.EqualFold(aStr, eStr)
	}

	_, aIsBool := actual.(bool)
	_, eIsBool := expected.(bool)
	if aIsBool || eIsBool {
		return coerceBoolean(actual) == coerceBoolean(expected)
	}

	aNum, aOK := toNumber(actual)
	eNum, eOK := toNumber(expected)
	if aOK && eOK {
		return aNum == eNum
	}

	return strings.EqualFold(toString(actual), toString(expected))
}

// strictEquals matches identical scalars only; lists are never identical to anything.
func strictEquals(a interface{}, b interface{}) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

func coerceBoolean(v interface{}) bool {
	switch val := normalizeValue(v).(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(val)
		return lower == "true" || lower == "yes" || lower == "1"
	case float64:
		return val != 0
	case nil:
		return false
	default:
		return true
	}
}

// coerceNumber converts to a number, using 0 for anything unparseable.
func coerceNumber(v interface{}) float64 {
	n, ok := toNumber(normalizeValue(v))
	if !ok {
		return 0
	}
	return n
}

// toNumber follows loose numeric conversion: blank strings are 0, booleans are 0 or 1, a list is
// converted through its single element.
func toNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case nil:
		return 0, true
	case string:
		return parseNumber(val)
	case []interface{}:
		switch len(val) {
		case 0:
			return 0, true
		case 1:
			return parseNumber(toString(normalizeValue(val[0])))
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(i), true
	}
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toString renders a value the way it would be shown in a text comparison.
func toString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		switch {
		case math.IsInf(val, 1):
			return "Infinity"
		case math.IsInf(val, -1):
			return "-Infinity"
		case math.IsNaN(val):
			return "NaN"
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			item = normalizeValue(item)
			if item == nil {
				continue
			}
			parts[i] = toString(item)
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		return "[object Object]"
	default:
		normalized := normalizeValue(v)
		if _, isList := normalized.([]interface{}); isList {
			return toString(normalized)
		}
		if f, isNum := normalized.(float64); isNum {
			return toString(f)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
