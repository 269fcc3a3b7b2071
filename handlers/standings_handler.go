package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/football-standings/middleware"
	"github.com/Dosada05/football-standings/services"
	"github.com/Dosada05/football-standings/standings"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetStandings godoc
// @Summary Турнирная таблица и сетка
// @Tags standings
// @Description Ranked table, group buckets, knockout rounds and the display mode to render.
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param phase query int false "Phase ID; omitted means the whole tournament"
// @Param group query string false "Group label filter"
// @Success 200 {object} services.StandingsView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Турнир или фаза не найдены"
// @Failure 422 {object} map[string]string "Данные турнира некорректны"
// @Router /tournaments/{tournamentID}/standings [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	phaseID, err := optionalIntQuery(r, "phase", 1)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.standingsService.GetStandings(r.Context(), tournamentID, services.StandingsQuery{
		PhaseID: phaseID,
		Group:   r.URL.Query().Get("group"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPhases godoc
// @Summary Фазы турнира
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/phases [get]
func (h *StandingsHandler) ListPhases(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	phases, err := h.standingsService.ListPhases(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"phases": phases}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublishStandings godoc
// @Summary Разослать таблицу подписчикам турнира
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} services.StandingsView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/standings/publish [post]
func (h *StandingsHandler) PublishStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.standingsService.PublishStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportStandings godoc
// @Summary Выгрузить снимок таблицы в хранилище
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 201 {object} services.ExportResult
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/standings/export [post]
func (h *StandingsHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.standingsService.ExportStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": res}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordTeamStanding godoc
// @Summary Записать показатели команды
// @Tags standings
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Param input body services.RecordStandingInput true "Counters and group label"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams/{teamID}/standing [put]
func (h *StandingsHandler) RecordTeamStanding(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordStandingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standing, err := h.standingsService.RecordTeamStanding(r.Context(), tournamentID, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		slog.InfoContext(r.Context(), "standing updated by user",
			slog.Int("user_id", userID),
			slog.Int("tournament_id", tournamentID),
			slog.Int("team_id", teamID))
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standing": standing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClassifyPhase godoc
// @Summary Классифицировать тег фазы
// @Tags standings
// @Produce json
// @Param tag query string true "Phase tag, e.g. ROUND_OF_16 or 'round of 16'"
// @Success 200 {object} standings.PhaseClass
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string "Неизвестный тег"
// @Router /phases/classify [get]
func (h *StandingsHandler) ClassifyPhase(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("tag"))
	if raw == "" {
		errorResponse(w, r, http.StatusBadRequest, "tag query parameter is required")
		return
	}

	tag, err := standings.ParsePhaseTag(raw)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	class, err := standings.ClassifyPhase(tag)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, class, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
