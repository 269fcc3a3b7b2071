package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/football-standings/models"
	"github.com/Dosada05/football-standings/services"
	"github.com/Dosada05/football-standings/standings"
	"github.com/go-chi/chi/v5"
)

type fakeStandingsService struct {
	view      *services.StandingsView
	phases    []services.PhaseView
	export    *services.ExportResult
	err       error
	lastQuery services.StandingsQuery
	lastInput services.RecordStandingInput
}

func (f *fakeStandingsService) GetStandings(_ context.Context, _ int, q services.StandingsQuery) (*services.StandingsView, error) {
	f.lastQuery = q
	return f.view, f.err
}

func (f *fakeStandingsService) ListPhases(context.Context, int) ([]services.PhaseView, error) {
	return f.phases, f.err
}

func (f *fakeStandingsService) PublishStandings(context.Context, int) (*services.StandingsView, error) {
	return f.view, f.err
}

func (f *fakeStandingsService) ExportStandings(context.Context, int) (*services.ExportResult, error) {
	return f.export, f.err
}

func (f *fakeStandingsService) RecordTeamStanding(_ context.Context, tournamentID, teamID int, in services.RecordStandingInput) (*models.TournamentStanding, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.TournamentStanding{ID: 1, TournamentID: tournamentID, TeamID: teamID, MatchesPlayed: in.MatchesPlayed}, nil
}

type fakeTournamentService struct {
	err error
}

func (f *fakeTournamentService) GetTournamentByID(_ context.Context, id int) (*models.Tournament, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Tournament{ID: id, Name: "Premier", Format: "LEAGUE"}, nil
}

func (f *fakeTournamentService) ListTournaments(context.Context, services.ListTournamentsFilter) ([]models.Tournament, error) {
	return []models.Tournament{{ID: 1, Name: "Premier"}}, f.err
}

func newRouter(ss services.StandingsService, ts services.TournamentService) http.Handler {
	sh := NewStandingsHandler(ss)
	th := NewTournamentHandler(ts)

	r := chi.NewRouter()
	r.Get("/tournaments", th.ListHandler)
	r.Get("/tournaments/{tournamentID}", th.GetByIDHandler)
	r.Get("/tournaments/{tournamentID}/standings", sh.GetStandings)
	r.Get("/tournaments/{tournamentID}/phases", sh.ListPhases)
	r.Post("/tournaments/{tournamentID}/standings/publish", sh.PublishStandings)
	r.Post("/tournaments/{tournamentID}/standings/export", sh.ExportStandings)
	r.Put("/tournaments/{tournamentID}/teams/{teamID}/standing", sh.RecordTeamStanding)
	r.Get("/phases/classify", sh.ClassifyPhase)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleView() *services.StandingsView {
	return &services.StandingsView{
		TournamentID:   1,
		TournamentName: "Premier",
		Format:         "LEAGUE",
		View: &standings.View{
			DisplayMode: standings.DisplayTableOnly,
			Scope:       "TOURNAMENT",
			Rows: []standings.StandingRow{
				{TeamID: "11", DisplayName: "Club 11", Stat: standings.StatLine{MatchesPlayed: 1, Wins: 1, Points: 3, GoalsFor: 2, GoalDifference: 2}},
			},
			KnockoutPhases: []standings.PhaseGroup{},
		},
	}
}

func TestGetStandings_OK(t *testing.T) {
	ss := &fakeStandingsService{view: sampleView()}
	rec := do(t, newRouter(ss, &fakeTournamentService{}), http.MethodGet, "/tournaments/1/standings?phase=4&group=A", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ss.lastQuery.PhaseID == nil || *ss.lastQuery.PhaseID != 4 || ss.lastQuery.Group != "A" {
		t.Errorf("query = %+v", ss.lastQuery)
	}

	var body struct {
		TournamentID int    `json:"tournament_id"`
		DisplayMode  string `json:"display_mode"`
		Rows         []struct {
			TeamID string `json:"team_id"`
			Stat   struct {
				Points int `json:"points"`
			} `json:"stat"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DisplayMode != "TABLE_ONLY" || len(body.Rows) != 1 || body.Rows[0].Stat.Points != 3 {
		t.Errorf("body = %+v", body)
	}
}

func TestGetStandings_BadInput(t *testing.T) {
	h := newRouter(&fakeStandingsService{view: sampleView()}, &fakeTournamentService{})
	for _, target := range []string{"/tournaments/abc/standings", "/tournaments/0/standings", "/tournaments/1/standings?phase=x", "/tournaments/1/standings?phase=0"} {
		if rec := do(t, h, http.MethodGet, target, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrTournamentNotFound, http.StatusNotFound},
		{services.ErrPhaseNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: wins", services.ErrValidationFailed), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: %w", services.ErrStandingsDataInvalid, standings.ErrUnknownPhaseTag), http.StatusUnprocessableEntity},
		{services.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{services.ErrRealtimeUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := newRouter(&fakeStandingsService{err: tt.err}, &fakeTournamentService{})
			rec := do(t, h, http.MethodPost, "/tournaments/1/standings/export", "")
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body has no error field: %s", rec.Body.String())
			}
		})
	}
}

func TestExportStandings_Created(t *testing.T) {
	ss := &fakeStandingsService{export: &services.ExportResult{Key: "standings/1/x.json", URL: "https://cdn/x.json"}}
	rec := do(t, newRouter(ss, &fakeTournamentService{}), http.MethodPost, "/tournaments/1/standings/export", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "standings/1/x.json") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRecordTeamStanding(t *testing.T) {
	ss := &fakeStandingsService{}
	h := newRouter(ss, &fakeTournamentService{})

	rec := do(t, h, http.MethodPut, "/tournaments/1/teams/5/standing", `{"matches_played":3,"wins":1,"draws":1,"losses":1,"goals_for":2,"goals_against":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ss.lastInput.MatchesPlayed != 3 || ss.lastInput.Draws != 1 {
		t.Errorf("input = %+v", ss.lastInput)
	}

	rec = do(t, h, http.MethodPut, "/tournaments/1/teams/5/standing", `{"points":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", rec.Code)
	}
	rec = do(t, h, http.MethodPut, "/tournaments/1/teams/5/standing", ``)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d, want 400", rec.Code)
	}
}

func TestClassifyPhase(t *testing.T) {
	h := newRouter(&fakeStandingsService{}, &fakeTournamentService{})

	rec := do(t, h, http.MethodGet, "/phases/classify?tag=round+of+16", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var class standings.PhaseClass
	if err := json.Unmarshal(rec.Body.Bytes(), &class); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if class.Tag != standings.PhaseRoundOf16 || class.Kind != standings.KindKnockout || class.Order == nil || *class.Order != 2 {
		t.Errorf("class = %+v", class)
	}

	if rec := do(t, h, http.MethodGet, "/phases/classify?tag=PLAY_IN", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown tag: status = %d, want 422", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/phases/classify", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing tag: status = %d, want 400", rec.Code)
	}
}

func TestTournamentHandlers(t *testing.T) {
	h := newRouter(&fakeStandingsService{}, &fakeTournamentService{})

	if rec := do(t, h, http.MethodGet, "/tournaments?status=active&limit=5", ""); rec.Code != http.StatusOK {
		t.Errorf("list: status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/tournaments?status=unknown", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/tournaments?limit=-1", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/tournaments/3", ""); rec.Code != http.StatusOK {
		t.Errorf("get: status = %d", rec.Code)
	}

	missing := newRouter(&fakeStandingsService{}, &fakeTournamentService{err: services.ErrTournamentNotFound})
	if rec := do(t, missing, http.MethodGet, "/tournaments/3", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing: status = %d, want 404", rec.Code)
	}
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("down")}).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
