package standings

import (
	"cmp"
	"slices"
)

// Compare orders two rows by competitive standing. It returns a negative
// number when a ranks above b, positive when below and 0 when the rows are
// tied on every criterion.
//
// Criteria, in order: points, goal difference, wins, goals scored. There is
// no head-to-head or fair-play criterion; full ties keep input order in Rank.
func Compare(a, b StandingRow) int {
	if c := cmp.Compare(b.Stat.Points, a.Stat.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Stat.GoalDifference, a.Stat.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Stat.Wins, a.Stat.Wins); c != 0 {
		return c
	}
	return cmp.Compare(b.Stat.GoalsFor, a.Stat.GoalsFor)
}

// Rank returns a new slice sorted best first. The input is left untouched.
func Rank(rows []StandingRow) []StandingRow {
	ranked := slices.Clone(rows)
	slices.SortStableFunc(ranked, Compare)
	return ranked
}
