package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/football-standings/models"
)

type MatchRepository interface {
	// ListByTournament returns the tournament's matches with the phase tag
	// joined in, ordered by kick-off time.
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT m.id, m.tournament_id, m.phase_id, p.tag,
		       m.home_team_id, m.away_team_id, m.home_goals, m.away_goals,
		       m.match_time, m.status
		FROM matches m
		LEFT JOIN phases p ON p.id = m.phase_id
		WHERE m.tournament_id = $1
		ORDER BY m.match_time ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.PhaseID, &m.PhaseTag,
			&m.HomeTeamID, &m.AwayTeamID, &m.HomeGoals, &m.AwayGoals,
			&m.MatchTime, &m.Status,
		); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
