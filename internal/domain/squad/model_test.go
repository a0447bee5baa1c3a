package squad

import (
	"testing"
	"time"
)

func TestGroupForPosition(t *testing.T) {
	cases := map[string]string{
		"Goalkeeper":          GroupGoalkeeper,
		"Centre-Back":         GroupDefender,
		"Left-Back":           GroupDefender,
		"Defence":             GroupDefender,
		"Central Midfield":    GroupMidfielder,
		"Defensive Midfield":  GroupMidfielder,
		"Centre-Forward":      GroupForward,
		"Left Winger":         GroupForward,
		"Attacking Midfield":  GroupMidfielder,
		"Striker":             GroupForward,
		"Offence":             GroupForward,
		"":                    GroupUnknown,
		"Sweeper Keeper":      GroupGoalkeeper,
		"Technical Director":  GroupUnknown,
	}

	for input, want := range cases {
		if got := GroupForPosition(input); got != want {
			t.Fatalf("GroupForPosition(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("birthday passed this year", func(t *testing.T) {
		age := AgeAt("2000-03-15", now)
		if age == nil || *age != 26 {
			t.Fatalf("expected age 26, got %v", age)
		}
	})

	t.Run("birthday not yet reached", func(t *testing.T) {
		age := AgeAt("2000-11-02", now)
		if age == nil || *age != 25 {
			t.Fatalf("expected age 25, got %v", age)
		}
	})

	t.Run("birthday today", func(t *testing.T) {
		age := AgeAt("2000-08-30", now)
		if age == nil || *age != 26 {
			t.Fatalf("expected age 26 on birthday, got %v", age)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		if age := AgeAt("not-a-date", now); age != nil {
			t.Fatalf("expected nil age, got %d", *age)
		}
	})

	t.Run("empty date", func(t *testing.T) {
		if age := AgeAt("", now); age != nil {
			t.Fatalf("expected nil age, got %d", *age)
		}
	})
}
