package models

import "time"

// TournamentStanding holds a team's cumulative counters for a tournament.
// Points and goal difference are not stored; they are derived on read.
type TournamentStanding struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	TeamID        int       `json:"team_id" db:"team_id"`
	GroupLabel    *string   `json:"group_label,omitempty" db:"group_label"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	Wins          int       `json:"wins" db:"wins"`
	Draws         int       `json:"draws" db:"draws"`
	Losses        int       `json:"losses" db:"losses"`
	GoalsFor      int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst  int       `json:"goals_against" db:"goals_against"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Populated by the repository join, not a column of tournament_teams.
	Team *Team `json:"team,omitempty" db:"-"`
}

// PhaseStanding is the same set of counters restricted to one phase.
type PhaseStanding struct {
	TournamentID  int `json:"tournament_id" db:"tournament_id"`
	TeamID        int `json:"team_id" db:"team_id"`
	PhaseID       int `json:"phase_id" db:"phase_id"`
	MatchesPlayed int `json:"matches_played" db:"matches_played"`
	Wins          int `json:"wins" db:"wins"`
	Draws         int `json:"draws" db:"draws"`
	Losses        int `json:"losses" db:"losses"`
	GoalsFor      int `json:"goals_for" db:"goals_for"`
	GoalsAgainst  int `json:"goals_against" db:"goals_against"`
}
