package repository

import (
	"strings"
	"testing"
)

type ticket struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	Owner    string `db:"owner"`
	Open     bool   `db:"open"`
	Internal string
}

func (ticket) TableName() string { return "tickets" }

func newTicketRepo(t *testing.T) *Repository[ticket] {
	t.Helper()
	repo := New[ticket](nil)
	if repo.err != nil {
		t.Fatalf("unexpected metadata error: %v", repo.err)
	}
	return repo
}

func TestBuildSelect(t *testing.T) {
	repo := newTicketRepo(t)

	tests := []struct {
		name        string
		conditions  []Condition
		limit       int
		expectedSQL string
	}{
		{
			name:        "no conditions",
			conditions:  nil,
			limit:       0,
			expectedSQL: "SELECT id, title, owner, open FROM tickets",
		},
		{
			name:        "single condition",
			conditions:  []Condition{Eq("open", true)},
			limit:       0,
			expectedSQL: "SELECT id, title, owner, open FROM tickets WHERE open = $1",
		},
		{
			name:        "conditions with limit",
			conditions:  []Condition{Eq("owner", "ann"), Eq("open", true)},
			limit:       2,
			expectedSQL: "SELECT id, title, owner, open FROM tickets WHERE owner = $1 AND open = $2 LIMIT 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.buildSelect(tt.conditions, tt.limit)
			if err != nil {
				t.Fatalf("buildSelect failed: %v", err)
			}
			if sql != tt.expectedSQL {
				t.Errorf("expected %q, got %q", tt.expectedSQL, sql)
			}
			if len(args) != len(tt.conditions) {
				t.Errorf("expected %d args, got %d", len(tt.conditions), len(args))
			}
		})
	}
}

func TestBuildInsert(t *testing.T) {
	repo := newTicketRepo(t)

	sql, args, err := repo.buildInsert(Values{
		"title": "broken checkout",
		"owner": "ann",
		"open":  true,
	})
	if err != nil {
		t.Fatalf("buildInsert failed: %v", err)
	}

	// Columns are sorted, so the statement is deterministic.
	expected := "INSERT INTO tickets (open, owner, title) VALUES ($1, $2, $3) RETURNING id"
	if sql != expected {
		t.Errorf("expected %q, got %q", expected, sql)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != true || args[1] != "ann" || args[2] != "broken checkout" {
		t.Errorf("args not in sorted column order: %v", args)
	}
}

func TestBuildInsert_Empty(t *testing.T) {
	repo := newTicketRepo(t)
	if _, _, err := repo.buildInsert(Values{}); err == nil {
		t.Fatal("expected error for empty values")
	}
}

func TestBuildUpdate(t *testing.T) {
	repo := newTicketRepo(t)

	sql, args, err := repo.buildUpdate(
		[]Condition{Eq("id", int64(7))},
		Values{"open": false, "owner": "bob"},
	)
	if err != nil {
		t.Fatalf("buildUpdate failed: %v", err)
	}

	// SET placeholders come first, WHERE continues the numbering.
	expected := "UPDATE tickets SET open = $1, owner = $2 WHERE id = $3"
	if sql != expected {
		t.Errorf("expected %q, got %q", expected, sql)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[2] != int64(7) {
		t.Errorf("expected WHERE arg last, got %v", args)
	}
}

func TestBuildUpdate_NoValues(t *testing.T) {
	repo := newTicketRepo(t)
	if _, _, err := repo.buildUpdate([]Condition{Eq("id", int64(1))}, Values{}); err == nil {
		t.Fatal("expected error for empty value set")
	}
}

func TestCheckColumns(t *testing.T) {
	repo := newTicketRepo(t)

	if err := repo.checkColumns([]Condition{Eq("owner", "ann")}, Values{"open": true}); err != nil {
		t.Fatalf("expected declared columns to pass: %v", err)
	}

	err := repo.checkColumns([]Condition{Eq("priority", 1)}, nil)
	if err == nil {
		t.Fatal("expected error for undeclared condition column")
	}
	if !strings.Contains(err.Error(), "priority") {
		t.Errorf("error should name the column: %v", err)
	}

	if err := repo.checkColumns(nil, Values{"priority": 1}); err == nil {
		t.Fatal("expected error for undeclared value column")
	}
}

func TestCheckColumns_QualifiedNames(t *testing.T) {
	repo := newTicketRepo(t)
	if err := repo.checkColumns([]Condition{Eq("tickets.open", true)}, nil); err != nil {
		t.Fatalf("qualified own-table column should pass: %v", err)
	}
}
