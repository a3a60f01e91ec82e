package normalization

import (
	"math"
	"strconv"
	"strings"
)

// AsInt coerces JSON numbers and numeric strings into an int. Fractions are
// truncated. ok is false for nil and blank strings; other non-numeric
// values return a *NumberError.
func AsInt(value any) (n int, ok bool, err error) {
	switch typed := value.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return truncate(typed)
	case float32:
		return truncate(float64(typed))
	case int:
		return typed, true, nil
	case int32:
		return int(typed), true, nil
	case int64:
		return int(typed), true, nil
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false, nil
		}
		if parsed, perr := strconv.Atoi(trimmed); perr == nil {
			return parsed, true, nil
		}
		parsed, perr := strconv.ParseFloat(trimmed, 64)
		if perr != nil {
			return 0, false, &NumberError{Value: typed}
		}
		return truncate(parsed)
	default:
		return 0, false, &NumberError{Value: value}
	}
}

func truncate(f float64) (int, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, &NumberError{Value: f}
	}
	return int(f), true, nil
}

// NumberError reports a value that cannot be read as an integer.
type NumberError struct {
	Value any
}

func (e *NumberError) Error() string {
	return "not an integer: " + strconv.Quote(fmtValue(e.Value))
}

func fmtValue(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return "?"
	}
}
