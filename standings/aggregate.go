package standings

import (
	"fmt"
	"strings"
)

// RawTeam is one team's persisted statistics as supplied by the caller.
type RawTeam struct {
	TeamID      string
	DisplayName string
	LogoRef     string
	// Group is the sub-competition label; empty means ungrouped.
	Group string
	Stat  StatLine
	// PhaseStats is keyed by phase identifier. Nil is fine.
	PhaseStats map[string]StatLine
}

// StandingRow is a team's derived line for one scope. Rows are rebuilt on
// every call and never mutated afterwards.
type StandingRow struct {
	TeamID      string   `json:"team_id"`
	DisplayName string   `json:"display_name"`
	LogoRef     string   `json:"logo_ref,omitempty"`
	Group       string   `json:"group,omitempty"`
	Stat        StatLine `json:"stat"`
}

// Scope selects which StatLine a row carries. The zero value is the whole
// tournament.
type Scope struct {
	PhaseID string
}

// TournamentScope selects tournament-wide statistics.
var TournamentScope = Scope{}

// PhaseScope selects the statistics recorded for a single phase.
func PhaseScope(phaseID string) Scope {
	return Scope{PhaseID: phaseID}
}

func (s Scope) IsTournament() bool {
	return s.PhaseID == ""
}

func (s Scope) String() string {
	if s.IsTournament() {
		return "TOURNAMENT"
	}
	return "phase " + s.PhaseID
}

// Aggregate emits one row per input team, in input order.
//
// For a phase scope a team without a record for that phase still gets a row,
// with a zeroed StatLine, so it shows up as not having played yet.
func Aggregate(raw []RawTeam, scope Scope) ([]StandingRow, error) {
	rows := make([]StandingRow, 0, len(raw))
	seen := make(map[string]int, len(raw))

	for i, t := range raw {
		id := strings.TrimSpace(t.TeamID)
		if id == "" {
			return nil, fmt.Errorf("%w: team record %d has no team id", ErrInvalidInput, i)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: team id %q appears at records %d and %d", ErrInvalidInput, id, prev, i)
		}
		seen[id] = i

		stat := t.Stat
		if !scope.IsTournament() {
			phaseStat, ok := t.PhaseStats[scope.PhaseID]
			if !ok {
				phaseStat = ZeroStatLine
			}
			stat = phaseStat
		}

		rows = append(rows, StandingRow{
			TeamID:      t.TeamID,
			DisplayName: t.DisplayName,
			LogoRef:     t.LogoRef,
			Group:       t.Group,
			Stat:        stat.Normalize(),
		})
	}

	return rows, nil
}
