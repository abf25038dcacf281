package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexNumber accepts a JSON number, a numeric string, a boolean or null.
// null and "" read as zero, true as 1.
type FlexNumber struct {
	Value float64
	Set   bool
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	n.Set = true

	if bytes.Equal(data, []byte("null")) {
		n.Value = 0
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		n.Value = v
	case bool:
		if v {
			n.Value = 1
		} else {
			n.Value = 0
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			n.Value = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%q is not a number", v)
		}
		n.Value = f
	default:
		return fmt.Errorf("expected a number, got %s", string(data))
	}
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// Int returns the value as an integer and whether it had no fractional part.
func (n FlexNumber) Int() (int, bool) {
	if n.Value != math.Trunc(n.Value) || n.Value > math.MaxInt32 || n.Value < math.MinInt32 {
		return 0, false
	}
	return int(n.Value), true
}

// FlexBool accepts booleans, numbers (non-zero is true), strings and null.
// Strings in strconv.ParseBool form are read as such; any other non-empty
// string is true.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*b = false
	case bool:
		*b = FlexBool(v)
	case float64:
		*b = FlexBool(v != 0 && !math.IsNaN(v))
	case string:
		s := strings.TrimSpace(v)
		if parsed, err := strconv.ParseBool(s); err == nil {
			*b = FlexBool(parsed)
		} else {
			*b = s != ""
		}
	default:
		// objects and arrays are truthy
		*b = true
	}
	return nil
}
