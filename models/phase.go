package models

// Phase is one stage of a tournament. Tag is drawn from the closed phase tag
// set (MATCHDAY, GROUP_STAGE, ROUND_OF_16, ...); Name is the organiser's label.
type Phase struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Tag          string `json:"tag" db:"tag"`
	Name         string `json:"name" db:"name"`
	Position     int    `json:"position" db:"position"`
}
