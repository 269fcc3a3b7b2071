package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/football-standings/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentStandingNotFound = errors.New("tournament standing not found")
	ErrStandingTeamInvalid        = errors.New("standing team conflict or invalid")
	ErrStandingCountersInvalid    = errors.New("standing counters violate table constraints")
)

type StandingRepository interface {
	// ListByTournament returns every team registered for the tournament, in
	// registration order, with team name and logo key joined in.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentStanding, error)
	ListPhaseStatsByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.PhaseStanding, error)
	// Upsert writes the counters and group label of one team.
	Upsert(ctx context.Context, exec SQLExecutor, standing *models.TournamentStanding) error
}

type postgresStandingRepository struct {
	db *sql.DB // Main DB connection, can be used if exec is nil
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentStanding, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT tt.id, tt.tournament_id, tt.team_id, tt.group_label,
		       tt.matches_played, tt.wins, tt.draws, tt.losses,
		       tt.goals_for, tt.goals_against, tt.updated_at,
		       t.name, t.logo_key
		FROM tournament_teams tt
		JOIN teams t ON t.id = tt.team_id
		WHERE tt.tournament_id = $1
		ORDER BY tt.id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.TournamentStanding, 0)
	for rows.Next() {
		s := &models.TournamentStanding{Team: &models.Team{}}
		if err := rows.Scan(
			&s.ID, &s.TournamentID, &s.TeamID, &s.GroupLabel,
			&s.MatchesPlayed, &s.Wins, &s.Draws, &s.Losses,
			&s.GoalsFor, &s.GoalsAgainst, &s.UpdatedAt,
			&s.Team.Name, &s.Team.LogoKey,
		); err != nil {
			return nil, err
		}
		s.Team.ID = s.TeamID
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

func (r *postgresStandingRepository) ListPhaseStatsByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.PhaseStanding, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT tournament_id, team_id, phase_id, matches_played, wins, draws, losses,
		       goals_for, goals_against
		FROM team_phase_stats
		WHERE tournament_id = $1
		ORDER BY phase_id ASC, team_id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*models.PhaseStanding, 0)
	for rows.Next() {
		var ps models.PhaseStanding
		if err := rows.Scan(
			&ps.TournamentID, &ps.TeamID, &ps.PhaseID, &ps.MatchesPlayed,
			&ps.Wins, &ps.Draws, &ps.Losses, &ps.GoalsFor, &ps.GoalsAgainst,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &ps)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *postgresStandingRepository) Upsert(ctx context.Context, exec SQLExecutor, standing *models.TournamentStanding) error {
	executor := r.getExecutor(exec)
	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO tournament_teams
		    (tournament_id, team_id, group_label, matches_played, wins, draws, losses,
		     goals_for, goals_against, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tournament_id, team_id) DO UPDATE SET
		    group_label = EXCLUDED.group_label,
		    matches_played = EXCLUDED.matches_played,
		    wins = EXCLUDED.wins,
		    draws = EXCLUDED.draws,
		    losses = EXCLUDED.losses,
		    goals_for = EXCLUDED.goals_for,
		    goals_against = EXCLUDED.goals_against,
		    updated_at = EXCLUDED.updated_at
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		standing.TournamentID, standing.TeamID, standing.GroupLabel,
		standing.MatchesPlayed, standing.Wins, standing.Draws, standing.Losses,
		standing.GoalsFor, standing.GoalsAgainst, standing.UpdatedAt,
	).Scan(&standing.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23503": // foreign_key_violation
				return ErrStandingTeamInvalid
			case "23514": // check_violation
				return ErrStandingCountersInvalid
			}
		}
		return err
	}
	return nil
}
