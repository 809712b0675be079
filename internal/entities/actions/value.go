package actions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies which scalar a Value holds
type ValueKind string

// Value kinds
const (
	ValueKindInt   ValueKind = "int"
	ValueKindReal  ValueKind = "real"
	ValueKindLabel ValueKind = "label"
)

// Value is a tagged scalar stored in the execution value bag.
// The zero Value is the integer 0.
type Value struct {
	kind  ValueKind
	i     int
	f     float64
	label string
}

// IntValue creates an integer value
func IntValue(v int) Value {
	return Value{kind: ValueKindInt, i: v}
}

// RealValue creates a real value
func RealValue(v float64) Value {
	return Value{kind: ValueKindReal, f: v}
}

// LabelValue creates a label value
func LabelValue(v string) Value {
	return Value{kind: ValueKindLabel, label: v}
}

// Kind returns the scalar kind
func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueKindInt
	}
	return v.kind
}

// IsNumeric reports whether the value is an int or a real
func (v Value) IsNumeric() bool {
	return v.Kind() == ValueKindInt || v.Kind() == ValueKindReal
}

// Float returns the numeric form of the value. Labels convert only when
// they parse as a number.
func (v Value) Float() (float64, bool) {
	switch v.Kind() {
	case ValueKindInt:
		return float64(v.i), true
	case ValueKindReal:
		return v.f, true
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.label), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}

// Int returns the integer form of the value. Reals are floored.
func (v Value) Int() (int, bool) {
	if v.Kind() == ValueKindInt {
		return v.i, true
	}
	f, ok := v.Float()
	if !ok {
		return 0, false
	}
	return int(math.Floor(f)), true
}

// Label returns the label and whether the value is a label
func (v Value) Label() (string, bool) {
	if v.Kind() != ValueKindLabel {
		return "", false
	}
	return v.label, true
}

// String returns the canonical string form. Reals with no fractional part
// print as integers, so 1 and 1.0 share the form "1".
func (v Value) String() string {
	switch v.Kind() {
	case ValueKindInt:
		return strconv.Itoa(v.i)
	case ValueKindReal:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return v.label
	}
}

// Equal compares canonical string forms
func (v Value) Equal(other Value) bool {
	return v.String() == other.String()
}

// Interface returns the value as a plain Go scalar
func (v Value) Interface() interface{} {
	switch v.Kind() {
	case ValueKindInt:
		return v.i
	case ValueKindReal:
		return v.f
	default:
		return v.label
	}
}

// MarshalJSON encodes ints and reals as numbers and labels as strings
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar. Integral numbers without a fraction
// or exponent become ints.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = LabelValue(s)
		return nil
	}

	if bytes.Equal(trimmed, []byte("true")) {
		*v = IntValue(1)
		return nil
	}
	if bytes.Equal(trimmed, []byte("false")) {
		*v = IntValue(0)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("value must be a number or string: %w", err)
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		i, err := n.Int64()
		if err == nil {
			*v = IntValue(int(i))
			return nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	*v = RealValue(f)
	return nil
}

// ValueFromInterface converts a decoded scalar into a Value
func ValueFromInterface(raw interface{}) (Value, bool) {
	switch t := raw.(type) {
	case int:
		return IntValue(t), true
	case int32:
		return IntValue(int(t)), true
	case int64:
		return IntValue(int(t)), true
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return IntValue(int(t)), true
		}
		return RealValue(t), true
	case string:
		return LabelValue(t), true
	case bool:
		if t {
			return IntValue(1), true
		}
		return IntValue(0), true
	default:
		return Value{}, false
	}
}
