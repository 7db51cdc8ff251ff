package tablediff

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"table-compare/core/utils"
)

// Tolerance is the absolute tolerance used when two values both parse as numbers.
const Tolerance = 1e-10

// Kind identifies the variant held by a Value.
// The numeric order of the kinds is also the order used to sort mixed-kind join keys.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindDate
	KindDateTime
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value is a scalar field value: null, string, number, date or datetime.
// The zero Value is null.
//
// Integer numbers keep their exact decimal text in str, so values beyond the
// float64 mantissa stay distinct.
type Value struct {
	kind Kind
	str  string
	num  float64
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns an exact integer value.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), str: strconv.FormatInt(i, 10)}
}

// Uint returns an exact unsigned integer value.
func Uint(u uint64) Value {
	return Value{kind: KindNumber, num: float64(u), str: strconv.FormatUint(u, 10)}
}

// Date returns a date value. The clock part of t is dropped.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// DateTime returns a timestamp value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// FromAny converts a value coming from a database driver or decoder into a Value.
// Unknown types fall back to their fmt representation as a string.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case []byte:
		if x == nil {
			return Null()
		}
		return String(string(x))
	case bool:
		if x {
			return Int(1)
		}
		return Int(0)
	case int, int8, int16, int32, int64:
		return Int(utils.ToInt64(x))
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case time.Time:
		return DateTime(x)
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return Int(i)
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return Uint(u)
		}
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return String(x.String())
	case sql.NullString:
		if !x.Valid {
			return Null()
		}
		return String(x.String)
	case sql.NullInt64:
		if !x.Valid {
			return Null()
		}
		return Int(x.Int64)
	case sql.NullFloat64:
		if !x.Valid {
			return Null()
		}
		return Number(x.Float64)
	case sql.NullTime:
		if !x.Valid {
			return Null()
		}
		return DateTime(x.Time)
	default:
		return String(utils.ToString(x))
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// String returns the natural string form of v. Null is the empty string.
// Dates and timestamps use ISO 8601; timestamps are rendered in UTC so the
// same instant has one form whatever its zone.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindNumber:
		if v.str != "" {
			return v.str
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.t.Format(time.DateOnly)
	case KindDateTime:
		return v.t.UTC().Format(time.RFC3339Nano)
	default:
		return v.str
	}
}

// Format renders v for display and export.
// Dates render as YYYY-MM-DD and timestamps as YYYY-MM-DD HH:MM:SS.
func (v Value) Format() string {
	switch v.kind {
	case KindDate:
		return v.t.Format(time.DateOnly)
	case KindDateTime:
		return v.t.Format(time.DateTime)
	default:
		return v.String()
	}
}

// MarshalJSON encodes v with its natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		if v.str != "" {
			return []byte(v.str), nil
		}
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.Format())
	}
}

// UnmarshalJSON decodes null, numbers and strings. Dates and timestamps come
// back as strings since JSON carries no date type.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// Equal reports whether a and b hold the same value, tolerating type and
// format differences.
//
// Null only equals null. Otherwise both values are stringified and trimmed.
// Two integers must match exactly; when both parse as numbers they are
// compared within Tolerance, else the trimmed strings must match exactly.
func Equal(a, b Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}

	s1 := strings.TrimSpace(a.String())
	s2 := strings.TrimSpace(b.String())

	if i, ok := parseInteger(s1); ok {
		if j, ok := parseInteger(s2); ok {
			return i.Cmp(j) == 0
		}
	}

	x, err1 := strconv.ParseFloat(s1, 64)
	y, err2 := strconv.ParseFloat(s2, 64)
	if err1 == nil && err2 == nil && !math.IsNaN(x) && !math.IsNaN(y) {
		return x == y || math.Abs(x-y) < Tolerance
	}

	return s1 == s2
}

// parseInteger parses a base 10 integer of any size.
func parseInteger(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}

// exact returns the numeric value of a number without rounding.
// It must not be called for NaN.
func (v Value) exact() *big.Float {
	if v.str != "" {
		if i, ok := parseInteger(v.str); ok {
			return new(big.Float).SetInt(i)
		}
	}
	return big.NewFloat(v.num)
}
