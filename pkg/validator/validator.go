// Package validator implements a declarative, field-list-driven input check.
//
// Each operation declares a list of Field descriptors (name, required or not,
// expected kind). Check walks the list against a raw key-value map, coercing
// present values to their declared kind and rejecting on the first missing
// required field or failed coercion. Unknown keys in the raw input are
// silently dropped.
package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"patient-registry-service/pkg/apierror"
)

// Kind enumerates the value types a field may declare.
type Kind int

const (
	String Kind = iota
	Number
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "string"
	}
}

// Field describes one expected input field.
type Field struct {
	Name     string
	Required bool
	Kind     Kind
}

// Values holds the coerced output of a Check call. Optional fields that were
// absent from the input are absent here too; they are never defaulted.
type Values map[string]any

// String returns the named value and whether it was present.
func (v Values) String(name string) (string, bool) {
	raw, ok := v[name]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// Number returns the named value and whether it was present.
func (v Values) Number(name string) (float64, bool) {
	raw, ok := v[name]
	if !ok {
		return 0, false
	}
	n, ok := raw.(float64)
	return n, ok
}

// Bool returns the named value and whether it was present.
func (v Values) Bool(name string) (bool, bool) {
	raw, ok := v[name]
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	return b, ok
}

// Check applies a field list to raw input. The first failure aborts the whole
// check with a code-200 validation error naming the offending field.
func Check(fields []Field, raw map[string]any) (Values, error) {
	out := make(Values, len(fields))

	for _, field := range fields {
		value, present := raw[field.Name]
		if !present {
			if field.Required {
				return nil, apierror.Validation(
					fmt.Sprintf("Required parameter %s was not found in this request", field.Name))
			}
			continue
		}

		coerced, err := coerce(field.Kind, value)
		if err != nil {
			return nil, apierror.Validation(
				fmt.Sprintf("Cannot convert %s to type %s. Value: %v", field.Name, field.Kind, value))
		}
		out[field.Name] = coerced
	}

	return out, nil
}

func coerce(kind Kind, value any) (any, error) {
	switch kind {
	case String:
		return toString(value), nil
	case Number:
		return toNumber(value)
	case Boolean:
		return toBoolean(value)
	}
	return nil, fmt.Errorf("unknown kind %d", kind)
}

// toString stringifies any input. It cannot fail.
func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		// ParseFloat accepts "NaN" and the infinity spellings; neither is a
		// usable number here, so they fail coercion like any other junk.
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("not a number: %v", value)
		}
		return n, nil
	}
	return 0, fmt.Errorf("not a number: %v", value)
}

// toBoolean accepts a literal bool or the case-insensitive strings "true" and
// "false". Anything else fails.
func toBoolean(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a boolean: %v", value)
}
