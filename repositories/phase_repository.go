package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/football-standings/models"
)

type PhaseRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Phase, error)
}

type postgresPhaseRepository struct {
	db *sql.DB
}

func NewPostgresPhaseRepository(db *sql.DB) PhaseRepository {
	return &postgresPhaseRepository{db: db}
}

func (r *postgresPhaseRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Phase, error) {
	query := `
		SELECT id, tournament_id, tag, name, position
		FROM phases
		WHERE tournament_id = $1
		ORDER BY position ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phases := make([]models.Phase, 0)
	for rows.Next() {
		var p models.Phase
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.Tag, &p.Name, &p.Position); err != nil {
			return nil, err
		}
		phases = append(phases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return phases, nil
}
