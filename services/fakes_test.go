package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/football-standings/models"
	"github.com/Dosada05/football-standings/realtime"
	"github.com/Dosada05/football-standings/repositories"
	"github.com/Dosada05/football-standings/storage"
)

var errBoom = errors.New("boom")

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	err         error
	lastFilter  repositories.ListTournamentsFilter
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Tournament, 0, len(r.tournaments))
	for id := 1; id <= len(r.tournaments); id++ {
		if t, ok := r.tournaments[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeStandingRepo struct {
	mu         sync.Mutex
	rows       []*models.TournamentStanding
	phaseStats []*models.PhaseStanding
	upsertErr  error
	upserted   []*models.TournamentStanding
}

func (r *fakeStandingRepo) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) ([]*models.TournamentStanding, error) {
	var out []*models.TournamentStanding
	for _, row := range r.rows {
		if row.TournamentID == tournamentID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeStandingRepo) ListPhaseStatsByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) ([]*models.PhaseStanding, error) {
	var out []*models.PhaseStanding
	for _, ps := range r.phaseStats {
		if ps.TournamentID == tournamentID {
			out = append(out, ps)
		}
	}
	return out, nil
}

func (r *fakeStandingRepo) Upsert(_ context.Context, _ repositories.SQLExecutor, standing *models.TournamentStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	standing.ID = len(r.upserted) + 1
	r.upserted = append(r.upserted, standing)
	return nil
}

type fakePhaseRepo struct {
	phases []models.Phase
	err    error
}

func (r *fakePhaseRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Phase, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Phase
	for _, p := range r.phases {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMatchRepo struct {
	matches []*models.Match
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range r.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUploader struct {
	keys   []string
	bodies []string
	types  []string
	err    error
}

func (u *fakeUploader) Upload(_ context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	u.bodies = append(u.bodies, string(b))
	u.types = append(u.types, contentType)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + strings.TrimPrefix(key, "/")
}

type fakeBroadcaster struct {
	rooms    []string
	messages []realtime.Message
	err      error
}

func (b *fakeBroadcaster) BroadcastToRoom(room string, msg realtime.Message) error {
	if b.err != nil {
		return b.err
	}
	b.rooms = append(b.rooms, room)
	b.messages = append(b.messages, msg)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func standing(tournamentID, teamID int, group string, mp, w, d, l, gf, ga int) *models.TournamentStanding {
	s := &models.TournamentStanding{
		TournamentID:  tournamentID,
		TeamID:        teamID,
		MatchesPlayed: mp,
		Wins:          w,
		Draws:         d,
		Losses:        l,
		GoalsFor:      gf,
		GoalsAgainst:  ga,
		Team:          &models.Team{ID: teamID, Name: fmt.Sprintf("Club %d", teamID)},
	}
	if group != "" {
		s.GroupLabel = strPtr(group)
	}
	return s
}

func match(tournamentID, id int, tag string) *models.Match {
	m := &models.Match{ID: id, TournamentID: tournamentID}
	if tag != "" {
		m.PhaseTag = strPtr(tag)
	}
	return m
}

type fixture struct {
	tournaments *fakeTournamentRepo
	standings   *fakeStandingRepo
	phases      *fakePhaseRepo
	matches     *fakeMatchRepo
	uploader    *fakeUploader
	broadcaster *fakeBroadcaster
}

// newFixture seeds two tournaments: 1 is a league with three teams, 2 is
// groups plus knockout.
func newFixture() *fixture {
	return &fixture{
		tournaments: &fakeTournamentRepo{tournaments: map[int]*models.Tournament{
			1: {ID: 1, Name: "Premier", Format: "LEAGUE", Status: models.StatusActive, LogoKey: strPtr("logos/premier.png")},
			2: {ID: 2, Name: "Cup", Format: "GROUPS_PLUS_KNOCKOUT", Status: models.StatusActive},
		}},
		standings: &fakeStandingRepo{
			rows: []*models.TournamentStanding{
				standing(1, 10, "", 2, 0, 1, 1, 1, 3),
				standing(1, 11, "", 2, 2, 0, 0, 5, 1),
				standing(1, 12, "", 2, 0, 1, 1, 2, 4),
				standing(2, 20, "B", 3, 2, 1, 0, 6, 2),
				standing(2, 21, "A", 3, 1, 1, 1, 4, 4),
				standing(2, 22, "A", 3, 3, 0, 0, 7, 1),
			},
			phaseStats: []*models.PhaseStanding{
				{TournamentID: 1, TeamID: 10, PhaseID: 100, MatchesPlayed: 1, Wins: 1, GoalsFor: 1},
				{TournamentID: 1, TeamID: 12, PhaseID: 100, MatchesPlayed: 1, Losses: 1, GoalsAgainst: 1},
			},
		},
		phases: &fakePhaseRepo{phases: []models.Phase{
			{ID: 100, TournamentID: 1, Tag: "MATCHDAY", Name: "Matchday 1", Position: 1},
			{ID: 203, TournamentID: 2, Tag: "FINAL", Name: "Final", Position: 3},
			{ID: 202, TournamentID: 2, Tag: "SEMIFINAL", Name: "Semis", Position: 2},
			{ID: 201, TournamentID: 2, Tag: "GROUP_STAGE", Name: "Groups", Position: 1},
		}},
		matches: &fakeMatchRepo{matches: []*models.Match{
			match(1, 1, "MATCHDAY"),
			match(2, 5, "FINAL"),
			match(2, 3, "SEMIFINAL"),
			match(2, 4, "SEMIFINAL"),
			match(2, 1, "GROUP_STAGE"),
			match(2, 2, ""),
		}},
		uploader:    &fakeUploader{},
		broadcaster: &fakeBroadcaster{},
	}
}

func (f *fixture) service() *standingsService {
	svc := NewStandingsService(f.tournaments, f.standings, f.phases, f.matches, f.uploader, f.broadcaster, discardLogger()).(*standingsService)
	svc.now = func() time.Time { return time.Date(2024, 5, 19, 18, 30, 0, 0, time.UTC) }
	return svc
}
