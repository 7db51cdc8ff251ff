package tablediff

import (
	"cmp"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// keyID is the canonical map key for a join-key value.
//
// Numbers and numeric-looking strings share one numeric identity, so a CSV key
// "7" meets a database key 7. Integers keep their exact digits. Other values
// are identified by kind and string form.
type keyID string

func idOf(v Value) keyID {
	if v.kind == KindNumber || v.kind == KindString {
		if n, ok := numericID(strings.TrimSpace(v.String())); ok {
			return keyID("n:" + n)
		}
	}
	return keyID(strconv.Itoa(int(v.kind)) + ":" + v.String())
}

// numericID returns the canonical numeric text of s.
func numericID(s string) (string, bool) {
	if i, ok := parseInteger(s); ok {
		return i.String(), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return "", false
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	i, _ := big.NewFloat(f).Int(nil)
	return i.String(), true
}

// numericKey converts a numeric-looking string key to a number.
func numericKey(v Value) (Value, bool) {
	if v.kind != KindString {
		return v, false
	}
	s := strings.TrimSpace(v.str)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), true
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return v, false
	}
	return Number(f), true
}

// CompareKeys orders join keys: numbers numerically, strings lexically,
// dates chronologically, and mixed kinds by kind (null, number, string, date, datetime).
func CompareKeys(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindNumber:
		return compareNumbers(a, b)
	case KindDate, KindDateTime:
		return a.t.Compare(b.t)
	default:
		return cmp.Compare(a.str, b.str)
	}
}

// compareNumbers orders two numbers without rounding integers.
func compareNumbers(a, b Value) int {
	if a.str != "" && b.str != "" {
		x, errX := strconv.ParseInt(a.str, 10, 64)
		y, errY := strconv.ParseInt(b.str, 10, 64)
		if errX == nil && errY == nil {
			return cmp.Compare(x, y)
		}
	}
	if math.IsNaN(a.num) || math.IsNaN(b.num) {
		return cmp.Compare(a.num, b.num)
	}
	return a.exact().Cmp(b.exact())
}
