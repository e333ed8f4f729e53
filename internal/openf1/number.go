package openf1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DriverNumber is a car number in canonical text form. The API sends numbers
// as JSON numbers, users type them as text; both decode to the same value.
type DriverNumber string

// UnmarshalJSON accepts a JSON number or string.
func (n *DriverNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = DriverNumber(CanonicalNumber(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("driver_number: %w", err)
	}
	*n = DriverNumber(CanonicalNumber(num.String()))
	return nil
}

// CanonicalNumber normalizes a driver number: surrounding space is dropped and
// integral numerics lose any sign padding or fractional zeros, so "16", " 16",
// "16.0" and 16 all become "16". Non-numeric text is returned trimmed.
func CanonicalNumber(s string) string {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// NumberText canonicalizes any value used as a driver key.
func NumberText(v any) string {
	switch x := v.(type) {
	case string:
		return CanonicalNumber(x)
	case DriverNumber:
		return CanonicalNumber(string(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return CanonicalNumber(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		return CanonicalNumber(x.String())
	case fmt.Stringer:
		return CanonicalNumber(x.String())
	default:
		return CanonicalNumber(fmt.Sprint(v))
	}
}
