package standings

import (
	"errors"
	"testing"
)

func line(mp, w, d, l, gf, ga int) StatLine {
	return StatLine{MatchesPlayed: mp, Wins: w, Draws: d, Losses: l, GoalsFor: gf, GoalsAgainst: ga}
}

func TestAggregate_RecomputesDerivedFields(t *testing.T) {
	stale := line(3, 2, 1, 0, 7, 2)
	stale.Points = 99
	stale.GoalDifference = -40

	rows, err := Aggregate([]RawTeam{{TeamID: "t1", DisplayName: "Lions", Stat: stale}}, TournamentScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0].Stat
	if got.Points != 7 {
		t.Errorf("points: want 7, got %d", got.Points)
	}
	if got.GoalDifference != 5 {
		t.Errorf("goal difference: want 5, got %d", got.GoalDifference)
	}
	if rows[0].DisplayName != "Lions" {
		t.Errorf("display name not passed through: %q", rows[0].DisplayName)
	}
}

func TestAggregate_PreservesInputOrder(t *testing.T) {
	raw := []RawTeam{
		{TeamID: "b", Stat: line(1, 0, 0, 1, 0, 1)},
		{TeamID: "a", Stat: line(1, 1, 0, 0, 1, 0)},
		{TeamID: "c", Stat: line(1, 0, 1, 0, 2, 2)},
	}
	rows, err := Aggregate(raw, TournamentScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"b", "a", "c"} {
		if rows[i].TeamID != want {
			t.Errorf("row %d: want %s, got %s", i, want, rows[i].TeamID)
		}
	}
}

func TestAggregate_PhaseScopeFallsBackToZero(t *testing.T) {
	raw := []RawTeam{{
		TeamID: "X",
		Stat:   line(5, 3, 1, 1, 9, 4),
		PhaseStats: map[string]StatLine{
			"QUARTERFINAL": line(1, 1, 0, 0, 2, 1),
		},
	}}

	rows, err := Aggregate(raw, PhaseScope("SEMIFINAL"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("team without phase record must still appear, got %d rows", len(rows))
	}
	if rows[0].Stat != ZeroStatLine {
		t.Errorf("want zero stat line, got %+v", rows[0].Stat)
	}

	rows, err = Aggregate(raw, PhaseScope("QUARTERFINAL"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Stat.Points != 3 || rows[0].Stat.GoalDifference != 1 {
		t.Errorf("phase stat not used: %+v", rows[0].Stat)
	}
}

func TestAggregate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  []RawTeam
	}{
		{"missing id", []RawTeam{{TeamID: "a"}, {TeamID: "  "}}},
		{"duplicate id", []RawTeam{{TeamID: "a"}, {TeamID: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Aggregate(tt.raw, TournamentScope)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
			if rows != nil {
				t.Errorf("no partial result expected, got %d rows", len(rows))
			}
		})
	}
}

func TestAggregate_KeepsTeamIDAsGiven(t *testing.T) {
	rows, err := Aggregate([]RawTeam{{TeamID: " 07 "}, {TeamID: "07"}}, TournamentScope)
	if err == nil {
		t.Fatalf("ids equal after trimming must be rejected as duplicates, got %d rows", len(rows))
	}

	rows, err = Aggregate([]RawTeam{{TeamID: " 07 "}, {TeamID: "team-8"}}, TournamentScope)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if rows[0].TeamID != " 07 " || rows[1].TeamID != "team-8" {
		t.Errorf("team ids = %q, %q; want them unchanged", rows[0].TeamID, rows[1].TeamID)
	}
}

func TestAggregate_Empty(t *testing.T) {
	rows, err := Aggregate(nil, TournamentScope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("want no rows, got %d", len(rows))
	}
}
