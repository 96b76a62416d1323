package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	tests := []struct {
		name           string
		conditions     []Condition
		expectedSQL    string
		expectedArgLen int
	}{
		{
			name:           "empty conditions",
			conditions:     []Condition{},
			expectedSQL:    "",
			expectedArgLen: 0,
		},
		{
			name: "single equality condition",
			conditions: []Condition{
				Eq("is_active", true),
			},
			expectedSQL:    "WHERE is_active = $1",
			expectedArgLen: 1,
		},
		{
			name: "multiple AND conditions",
			conditions: []Condition{
				Gt("stock", 0),
				Eq("is_active", true),
			},
			expectedSQL:    "WHERE stock > $1 AND is_active = $2",
			expectedArgLen: 2,
		},
		{
			name: "not equal",
			conditions: []Condition{
				NotEq("username", "admin"),
			},
			expectedSQL:    "WHERE username != $1",
			expectedArgLen: 1,
		},
		{
			name: "range conditions",
			conditions: []Condition{
				Gte("price", 10.0),
				Lte("price", 100.0),
				Lt("stock", 5),
			},
			expectedSQL:    "WHERE price >= $1 AND price <= $2 AND stock < $3",
			expectedArgLen: 3,
		},
		{
			name: "IN condition",
			conditions: []Condition{
				In("category_id", int64(1), int64(2), int64(3)),
			},
			expectedSQL:    "WHERE category_id IN ($1, $2, $3)",
			expectedArgLen: 3,
		},
		{
			name: "LIKE condition",
			conditions: []Condition{
				Like("name", "%phone%"),
			},
			expectedSQL:    "WHERE name LIKE $1",
			expectedArgLen: 1,
		},
		{
			name: "IS NULL condition",
			conditions: []Condition{
				IsNull("parent_id"),
			},
			expectedSQL:    "WHERE parent_id IS NULL",
			expectedArgLen: 0,
		},
		{
			name: "IS NOT NULL condition",
			conditions: []Condition{
				IsNotNull("parent_id"),
			},
			expectedSQL:    "WHERE parent_id IS NOT NULL",
			expectedArgLen: 0,
		},
		{
			name: "null check does not consume a placeholder",
			conditions: []Condition{
				IsNull("parent_id"),
				Eq("is_active", true),
			},
			expectedSQL:    "WHERE parent_id IS NULL AND is_active = $1",
			expectedArgLen: 1,
		},
		{
			name: "IN followed by equality numbers placeholders contiguously",
			conditions: []Condition{
				In("category_id", int64(7), int64(8)),
				Eq("is_active", true),
			},
			expectedSQL:    "WHERE category_id IN ($1, $2) AND is_active = $3",
			expectedArgLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildWhere(tt.conditions, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Len(t, args, tt.expectedArgLen)
		})
	}
}

func TestBuildWhere_ParamStart(t *testing.T) {
	sql, args, err := BuildWhere([]Condition{Eq("id", int64(9)), Eq("is_active", true)}, 3)
	require.NoError(t, err)
	assert.Equal(t, "WHERE id = $3 AND is_active = $4", sql)
	assert.Equal(t, []any{int64(9), true}, args)
}

func TestBuildWhere_Errors(t *testing.T) {
	t.Run("empty IN", func(t *testing.T) {
		_, _, err := BuildWhere([]Condition{In("id")}, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one value")
	})

	t.Run("IN with non-slice value", func(t *testing.T) {
		_, _, err := BuildWhere([]Condition{{Column: "id", Operator: OpIn, Value: 42}}, 1)
		require.Error(t, err)
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, _, err := BuildWhere([]Condition{{Column: "id", Operator: "BETWEEN", Value: 1}}, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown operator")
	})
}

func TestFilters(t *testing.T) {
	conds := Filters(map[string]any{
		"is_active":  true,
		"product_id": int64(5),
		"grade":      4,
	})

	// Keys come out sorted so generated SQL is stable.
	require.Len(t, conds, 3)
	assert.Equal(t, Eq("grade", 4), conds[0])
	assert.Equal(t, Eq("is_active", true), conds[1])
	assert.Equal(t, Eq("product_id", int64(5)), conds[2])
}

func TestFilters_Empty(t *testing.T) {
	assert.Empty(t, Filters(nil))
	assert.Empty(t, Filters(map[string]any{}))
}
