package models

import "time"

type MatchStatus string

const (
	StatusScheduled      MatchStatus = "scheduled"
	StatusInProgress     MatchStatus = "in_progress"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCanceled  MatchStatus = "canceled"
)

// Match is a fixture between two teams. PhaseTag is joined from phases and
// is nil for matches not attached to a phase.
type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	PhaseID      *int        `json:"phase_id,omitempty" db:"phase_id"`
	PhaseTag     *string     `json:"phase_tag,omitempty" db:"-"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	HomeGoals    *int        `json:"home_goals,omitempty" db:"home_goals"`
	AwayGoals    *int        `json:"away_goals,omitempty" db:"away_goals"`
	MatchTime    time.Time   `json:"match_time" db:"match_time"`
	Status       MatchStatus `json:"status" db:"status"`
}
