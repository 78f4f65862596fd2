package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "LOWER(name) LIKE LOWER(?)") {
		t.Fatalf("condition should contain lowered name LIKE, got %s", condition)
	}
	if !strings.Contains(condition, " OR ") {
		t.Fatalf("columns should be joined by OR, got %s", condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"name"})
	if condition != `name ILIKE ? ESCAPE '\'` {
		t.Fatalf("postgres condition mismatch, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike("50%_off"); got != `50\%\_off` {
		t.Fatalf("unexpected escape result: %s", got)
	}
}
