package standings

// Points awarded per result.
const (
	PointsPerWin  = 3
	PointsPerDraw = 1
)

// StatLine holds a team's counters over one scope (whole tournament or a
// single phase). GoalDifference and Points are derived and are always
// recomputed by Normalize.
type StatLine struct {
	MatchesPlayed int `json:"matches_played"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsFor      int `json:"goals_for"`
	GoalsAgainst  int `json:"goals_against"`

	GoalDifference int `json:"goal_difference"`
	Points         int `json:"points"`
}

// ZeroStatLine is the line used for a team that has no record in a scope.
var ZeroStatLine = StatLine{}

// Normalize returns a copy with GoalDifference and Points derived from the
// raw counters, discarding whatever values were supplied for them.
func (s StatLine) Normalize() StatLine {
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	s.Points = s.Wins*PointsPerWin + s.Draws*PointsPerDraw
	return s
}
