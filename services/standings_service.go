package services

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/football-standings/models"
	"github.com/Dosada05/football-standings/realtime"
	"github.com/Dosada05/football-standings/repositories"
	"github.com/Dosada05/football-standings/standings"
	"github.com/Dosada05/football-standings/storage"
	"golang.org/x/sync/errgroup"
)

const MessageStandingsUpdated = "STANDINGS_UPDATED"

// Broadcaster pushes messages to the subscribers of a room.
type Broadcaster interface {
	BroadcastToRoom(room string, msg realtime.Message) error
}

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID int, query StandingsQuery) (*StandingsView, error)
	ListPhases(ctx context.Context, tournamentID int) ([]PhaseView, error)
	PublishStandings(ctx context.Context, tournamentID int) (*StandingsView, error)
	ExportStandings(ctx context.Context, tournamentID int) (*ExportResult, error)
	RecordTeamStanding(ctx context.Context, tournamentID, teamID int, input RecordStandingInput) (*models.TournamentStanding, error)
}

// StandingsQuery carries the viewer's selections. A nil PhaseID means the
// whole tournament.
type StandingsQuery struct {
	PhaseID *int
	Group   string
}

type StandingsView struct {
	TournamentID   int        `json:"tournament_id"`
	TournamentName string     `json:"tournament_name"`
	Format         string     `json:"format"`
	LogoURL        *string    `json:"logo_url,omitempty"`
	Phase          *PhaseView `json:"phase,omitempty"`
	GeneratedAt    time.Time  `json:"generated_at"`
	*standings.View
}

type PhaseView struct {
	ID       int                 `json:"id"`
	Name     string              `json:"name"`
	Tag      standings.PhaseTag  `json:"tag"`
	Kind     standings.PhaseKind `json:"kind"`
	Order    *int                `json:"order,omitempty"`
	Position int                 `json:"position"`
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type RecordStandingInput struct {
	GroupLabel    *string `json:"group_label"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	GoalsFor      int     `json:"goals_for"`
	GoalsAgainst  int     `json:"goals_against"`
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	standingRepo   repositories.StandingRepository
	phaseRepo      repositories.PhaseRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader // nil when storage is not configured
	broadcaster    Broadcaster
	logger         *slog.Logger
	now            func() time.Time
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	standingRepo repositories.StandingRepository,
	phaseRepo repositories.PhaseRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	broadcaster Broadcaster,
	logger *slog.Logger,
) StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &standingsService{
		tournamentRepo: tournamentRepo,
		standingRepo:   standingRepo,
		phaseRepo:      phaseRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		broadcaster:    broadcaster,
		logger:         logger,
		now:            time.Now,
	}
}

// tournamentData is everything read from the database for one view.
type tournamentData struct {
	tournament *models.Tournament
	standings  []*models.TournamentStanding
	phaseStats []*models.PhaseStanding
	phases     []models.Phase
	matches    []*models.Match
}

func (s *standingsService) load(ctx context.Context, tournamentID int) (*tournamentData, error) {
	var d tournamentData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
		}
		d.tournament = t
		return nil
	})
	g.Go(func() error {
		rows, err := s.standingRepo.ListByTournament(gctx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list standings for tournament %d: %w", tournamentID, err)
		}
		d.standings = rows
		return nil
	})
	g.Go(func() error {
		stats, err := s.standingRepo.ListPhaseStatsByTournament(gctx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list phase stats for tournament %d: %w", tournamentID, err)
		}
		d.phaseStats = stats
		return nil
	})
	g.Go(func() error {
		phases, err := s.phaseRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list phases for tournament %d: %w", tournamentID, err)
		}
		d.phases = phases
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
		}
		d.matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID int, query StandingsQuery) (*StandingsView, error) {
	d, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.buildView(d, query)
}

func (s *standingsService) buildView(d *tournamentData, query StandingsQuery) (*StandingsView, error) {
	opts := standings.ViewOptions{
		Scope: standings.TournamentScope,
		Group: strings.TrimSpace(query.Group),
	}

	var phaseView *PhaseView
	if query.PhaseID != nil {
		idx := slices.IndexFunc(d.phases, func(p models.Phase) bool { return p.ID == *query.PhaseID })
		if idx < 0 {
			return nil, fmt.Errorf("%w: phase %d", ErrPhaseNotFound, *query.PhaseID)
		}
		pv, err := toPhaseView(d.phases[idx])
		if err != nil {
			return nil, mapEngineError(d.tournament.ID, err)
		}
		phaseView = &pv
		opts.Scope = standings.PhaseScope(strconv.Itoa(*query.PhaseID))
	}

	raw := toRawTeams(d.standings, d.phaseStats, s.uploader)
	view, err := standings.BuildView(raw, toMatchSummaries(d.matches), standings.FormatTag(d.tournament.Format), opts)
	if err != nil {
		return nil, mapEngineError(d.tournament.ID, err)
	}

	populateTournamentLogoURLFunc(d.tournament, s.uploader)
	return &StandingsView{
		TournamentID:   d.tournament.ID,
		TournamentName: d.tournament.Name,
		Format:         d.tournament.Format,
		LogoURL:        d.tournament.LogoURL,
		Phase:          phaseView,
		GeneratedAt:    s.now().UTC(),
		View:           view,
	}, nil
}

func toPhaseView(p models.Phase) (PhaseView, error) {
	class, err := standings.ClassifyPhase(standings.PhaseTag(strings.TrimSpace(p.Tag)))
	if err != nil {
		return PhaseView{}, fmt.Errorf("phase %d: %w", p.ID, err)
	}
	return PhaseView{
		ID:       p.ID,
		Name:     p.Name,
		Tag:      class.Tag,
		Kind:     class.Kind,
		Order:    class.Order,
		Position: p.Position,
	}, nil
}

// ListPhases returns league phases by position, then knockout phases in
// bracket order.
func (s *standingsService) ListPhases(ctx context.Context, tournamentID int) ([]PhaseView, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}
	phases, err := s.phaseRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases for tournament %d: %w", tournamentID, err)
	}

	views := make([]PhaseView, 0, len(phases))
	for _, p := range phases {
		pv, err := toPhaseView(p)
		if err != nil {
			return nil, mapEngineError(tournamentID, err)
		}
		views = append(views, pv)
	}

	slices.SortStableFunc(views, func(a, b PhaseView) int {
		switch {
		case a.Kind != b.Kind:
			if a.Kind == standings.KindLeague {
				return -1
			}
			return 1
		case a.Kind == standings.KindKnockout:
			return cmp.Compare(*a.Order, *b.Order)
		default:
			return cmp.Compare(a.Position, b.Position)
		}
	})
	return views, nil
}

func (s *standingsService) PublishStandings(ctx context.Context, tournamentID int) (*StandingsView, error) {
	if s.broadcaster == nil {
		return nil, ErrRealtimeUnavailable
	}
	view, err := s.GetStandings(ctx, tournamentID, StandingsQuery{})
	if err != nil {
		return nil, err
	}

	room := realtime.TournamentRoom(tournamentID)
	if err := s.broadcaster.BroadcastToRoom(room, realtime.Message{Type: MessageStandingsUpdated, Payload: view}); err != nil {
		if errors.Is(err, realtime.ErrHubStopped) {
			return nil, ErrRealtimeUnavailable
		}
		return nil, fmt.Errorf("failed to broadcast standings for tournament %d: %w", tournamentID, err)
	}
	s.logger.InfoContext(ctx, "standings published",
		slog.Int("tournament_id", tournamentID),
		slog.String("display_mode", string(view.DisplayMode)),
		slog.Int("teams", len(view.Rows)))
	return view, nil
}

func (s *standingsService) ExportStandings(ctx context.Context, tournamentID int) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	view, err := s.GetStandings(ctx, tournamentID, StandingsQuery{})
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings for tournament %d: %w", tournamentID, err)
	}

	key := fmt.Sprintf("standings/%d/%s.json", tournamentID, view.GeneratedAt.Format("20060102T150405Z"))
	res, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "standings export failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to export standings for tournament %d: %w", tournamentID, err)
	}
	s.logger.InfoContext(ctx, "standings exported", slog.Int("tournament_id", tournamentID), slog.String("key", res.Key))
	return &ExportResult{Key: res.Key, URL: res.Location}, nil
}

func (in RecordStandingInput) validate() error {
	counters := []struct {
		name  string
		value int
	}{
		{"matches_played", in.MatchesPlayed},
		{"wins", in.Wins},
		{"draws", in.Draws},
		{"losses", in.Losses},
		{"goals_for", in.GoalsFor},
		{"goals_against", in.GoalsAgainst},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrValidationFailed, c.name, c.value)
		}
	}
	if in.MatchesPlayed != in.Wins+in.Draws+in.Losses {
		return fmt.Errorf("%w: matches_played (%d) must equal wins + draws + losses (%d)",
			ErrValidationFailed, in.MatchesPlayed, in.Wins+in.Draws+in.Losses)
	}
	return nil
}

func (s *standingsService) RecordTeamStanding(ctx context.Context, tournamentID, teamID int, input RecordStandingInput) (*models.TournamentStanding, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	var group *string
	if g := derefString(input.GroupLabel); g != "" {
		group = &g
	}
	standing := &models.TournamentStanding{
		TournamentID:  tournamentID,
		TeamID:        teamID,
		GroupLabel:    group,
		MatchesPlayed: input.MatchesPlayed,
		Wins:          input.Wins,
		Draws:         input.Draws,
		Losses:        input.Losses,
		GoalsFor:      input.GoalsFor,
		GoalsAgainst:  input.GoalsAgainst,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.standingRepo.Upsert(ctx, nil, standing); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStandingTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrStandingCountersInvalid):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		default:
			return nil, fmt.Errorf("failed to save standing for team %d in tournament %d: %w", teamID, tournamentID, err)
		}
	}
	s.logger.InfoContext(ctx, "team standing recorded", slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	return standing, nil
}
