// Package models defines the core domain models for the workflow rule engine.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ResolveField walks a dot-path ("severity", "assignedTo.role") through
// nested maps in data. It returns nil as soon as an intermediate value is
// missing or not a map; it never panics on malformed paths.
func ResolveField(field string, data map[string]any) any {
	var current any = data

	for part := range strings.SplitSeq(field, ".") {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		current, ok = asMap[part]
		if !ok {
			return nil
		}
	}

	return current
}

// Evaluate applies the condition's operator to the field resolved from data.
// Unknown operators evaluate to false rather than erroring: a misconfigured
// condition must never block the rest of the rule set.
func (c Condition) Evaluate(data map[string]any) bool {
	fieldValue := ResolveField(c.Field, data)

	switch c.Operator {
	case OperatorEquals:
		return stringify(fieldValue) == stringify(c.Value)
	case OperatorNotEquals:
		return stringify(fieldValue) != stringify(c.Value)
	case OperatorContains:
		return strings.Contains(
			strings.ToLower(stringify(fieldValue)),
			strings.ToLower(stringify(c.Value)),
		)
	case OperatorGreaterThan:
		left, right := toNumber(fieldValue), toNumber(c.Value)

		return !math.IsNaN(left) && !math.IsNaN(right) && left > right
	case OperatorLessThan:
		left, right := toNumber(fieldValue), toNumber(c.Value)

		return !math.IsNaN(left) && !math.IsNaN(right) && left < right
	case OperatorIsEmpty:
		return isEmpty(fieldValue)
	case OperatorIsNotEmpty:
		return !isEmpty(fieldValue)
	case OperatorInList:
		return inList(fieldValue, c.Value)
	default:
		return false
	}
}

// Evaluate combines the group's conditions with its logic. An empty group is
// always true.
func (g ConditionGroup) Evaluate(data map[string]any) bool {
	if len(g.Conditions) == 0 {
		return true
	}

	if g.Logic == LogicOr {
		for _, condition := range g.Conditions {
			if condition.Evaluate(data) {
				return true
			}
		}

		return false
	}

	for _, condition := range g.Conditions {
		if !condition.Evaluate(data) {
			return false
		}
	}

	return true
}

// stringify renders a value for type-loose comparison, so numeric and string
// payload values compare uniformly. Missing values render as "".
func stringify(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toNumber coerces a value for numeric comparison. Values with no numeric
// interpretation become NaN, which comparisons resolve to false.
func toNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}

		return parsed
	case bool:
		if v {
			return 1
		}

		return 0
	default:
		return math.NaN()
	}
}

// isEmpty reports whether a value is missing or the empty string. Numeric
// zero and false are not empty.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	s, ok := value.(string)

	return ok && s == ""
}

// inList reports membership of the field value in the condition value, which
// must be a list; anything else is unconditionally false. Membership uses
// string equality so "3" matches 3.
func inList(fieldValue, conditionValue any) bool {
	needle := stringify(fieldValue)

	switch list := conditionValue.(type) {
	case []any:
		for _, item := range list {
			if stringify(item) == needle {
				return true
			}
		}
	case []string:
		for _, item := range list {
			if item == needle {
				return true
			}
		}
	}

	return false
}
