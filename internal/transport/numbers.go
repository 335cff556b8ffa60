package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int accepts a JSON number or a numeric string, e.g. 8, 8.0 or "8".
type Int int

// Float accepts a JSON number or a numeric string. NaN and infinities are rejected.
type Float float64

func numberText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(b), nil
}

func parseFinite(b []byte) (float64, error) {
	s, err := numberText(b)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s is not a number", b)
	}
	return v, nil
}

func (n *Int) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}
	v, err := parseFinite(b)
	if err != nil {
		return err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("%s is not an integer", b)
	}
	*n = Int(v)
	return nil
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return nil
	}
	v, err := parseFinite(b)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
