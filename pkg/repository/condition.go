// Package repository provides a generic, type-safe data-access facade over
// PostgreSQL. A Repository[T] is parameterized by an entity type and bound
// to an explicit storage.Querier; filtering is declarative, expressed as a
// conjunction of (column, operator, value) conditions interpreted here.
package repository

import (
	"fmt"
	"sort"
	"strings"
)

// Operator represents a comparison operator.
type Operator string

const (
	// OpEqual represents the = operator.
	OpEqual Operator = "="
	// OpNotEqual represents the != operator.
	OpNotEqual Operator = "!="
	// OpGreaterThan represents the > operator.
	OpGreaterThan Operator = ">"
	// OpGreaterThanOrEqual represents the >= operator.
	OpGreaterThanOrEqual Operator = ">="
	// OpLessThan represents the < operator.
	OpLessThan Operator = "<"
	// OpLessThanOrEqual represents the <= operator.
	OpLessThanOrEqual Operator = "<="
	// OpIn represents the IN operator.
	OpIn Operator = "IN"
	// OpLike represents the LIKE operator.
	OpLike Operator = "LIKE"
	// OpIsNull represents the IS NULL operator.
	OpIsNull Operator = "IS NULL"
	// OpIsNotNull represents the IS NOT NULL operator.
	OpIsNotNull Operator = "IS NOT NULL"
)

// Condition represents a single WHERE predicate. A slice of conditions is
// always combined as a conjunction (AND).
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Eq creates an equality condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpEqual, Value: value}
}

// NotEq creates a not-equal condition.
func NotEq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpNotEqual, Value: value}
}

// Gt creates a greater-than condition.
func Gt(column string, value any) Condition {
	return Condition{Column: column, Operator: OpGreaterThan, Value: value}
}

// Gte creates a greater-than-or-equal condition.
func Gte(column string, value any) Condition {
	return Condition{Column: column, Operator: OpGreaterThanOrEqual, Value: value}
}

// Lt creates a less-than condition.
func Lt(column string, value any) Condition {
	return Condition{Column: column, Operator: OpLessThan, Value: value}
}

// Lte creates a less-than-or-equal condition.
func Lte(column string, value any) Condition {
	return Condition{Column: column, Operator: OpLessThanOrEqual, Value: value}
}

// In creates an IN condition.
func In(column string, values ...any) Condition {
	return Condition{Column: column, Operator: OpIn, Value: values}
}

// Like creates a LIKE condition.
func Like(column string, pattern string) Condition {
	return Condition{Column: column, Operator: OpLike, Value: pattern}
}

// IsNull creates an IS NULL condition.
func IsNull(column string) Condition {
	return Condition{Column: column, Operator: OpIsNull}
}

// IsNotNull creates an IS NOT NULL condition.
func IsNotNull(column string) Condition {
	return Condition{Column: column, Operator: OpIsNotNull}
}

// Filters expands a keyword-equality map into a sorted slice of Eq
// conditions, mirroring the by-field filter maps domain callers pass
// alongside explicit conditions. Sorting keeps generated SQL stable.
func Filters(byField map[string]any) []Condition {
	keys := make([]string, 0, len(byField))
	for k := range byField {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]Condition, 0, len(keys))
	for _, k := range keys {
		conds = append(conds, Eq(k, byField[k]))
	}
	return conds
}

// BuildWhere generates a WHERE clause and its arguments from a conjunction
// of conditions. paramStart is the number of the first placeholder, letting
// callers append the clause after earlier parameters (e.g. UPDATE sets).
func BuildWhere(conds []Condition, paramStart int) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(conds))
	var args []any
	paramNum := paramStart

	for _, cond := range conds {
		sql, condArgs, err := buildCondition(cond, paramNum)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, condArgs...)
		paramNum += len(condArgs)
	}

	return "WHERE " + strings.Join(parts, " AND "), args, nil
}

// buildCondition builds a single condition.
func buildCondition(cond Condition, paramNum int) (string, []any, error) {
	switch cond.Operator {
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual, OpLike:
		return fmt.Sprintf("%s %s $%d", cond.Column, cond.Operator, paramNum), []any{cond.Value}, nil

	case OpIn:
		values, ok := cond.Value.([]any)
		if !ok {
			return "", nil, fmt.Errorf("IN operator requires []any value, got %T", cond.Value)
		}
		if len(values) == 0 {
			return "", nil, fmt.Errorf("IN operator requires at least one value")
		}

		placeholders := make([]string, len(values))
		for i := range values {
			placeholders[i] = fmt.Sprintf("$%d", paramNum+i)
		}
		return fmt.Sprintf("%s IN (%s)", cond.Column, strings.Join(placeholders, ", ")), values, nil

	case OpIsNull:
		return fmt.Sprintf("%s IS NULL", cond.Column), nil, nil

	case OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", cond.Column), nil, nil

	default:
		return "", nil, fmt.Errorf("unknown operator: %s", cond.Operator)
	}
}
