package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/football-standings/models"
	"github.com/Dosada05/football-standings/standings"
	"github.com/Dosada05/football-standings/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// logoRefFunc resolves a stored logo key to a public URL when storage is
// configured; otherwise the key itself is handed to the client.
func logoRefFunc(key *string, uploader storage.FileUploader) string {
	k := derefString(key)
	if k == "" {
		return ""
	}
	if uploader != nil {
		if url := uploader.GetPublicURL(k); url != "" {
			return url
		}
	}
	return k
}

func populateTournamentLogoURLFunc(t *models.Tournament, uploader storage.FileUploader) {
	if t == nil {
		return
	}
	if ref := logoRefFunc(t.LogoKey, uploader); ref != "" {
		t.LogoURL = &ref
	}
}

// toRawTeams joins tournament-wide counters with per-phase counters into the
// engine's input shape.
func toRawTeams(rows []*models.TournamentStanding, phaseStats []*models.PhaseStanding, uploader storage.FileUploader) []standings.RawTeam {
	byTeam := make(map[int]map[string]standings.StatLine, len(rows))
	for _, ps := range phaseStats {
		if ps == nil {
			continue
		}
		m, ok := byTeam[ps.TeamID]
		if !ok {
			m = make(map[string]standings.StatLine)
			byTeam[ps.TeamID] = m
		}
		m[strconv.Itoa(ps.PhaseID)] = standings.StatLine{
			MatchesPlayed: ps.MatchesPlayed,
			Wins:          ps.Wins,
			Draws:         ps.Draws,
			Losses:        ps.Losses,
			GoalsFor:      ps.GoalsFor,
			GoalsAgainst:  ps.GoalsAgainst,
		}
	}

	raw := make([]standings.RawTeam, 0, len(rows))
	for _, r := range rows {
		if r == nil {
			continue
		}
		team := standings.RawTeam{
			Group: derefString(r.GroupLabel),
			Stat: standings.StatLine{
				MatchesPlayed: r.MatchesPlayed,
				Wins:          r.Wins,
				Draws:         r.Draws,
				Losses:        r.Losses,
				GoalsFor:      r.GoalsFor,
				GoalsAgainst:  r.GoalsAgainst,
			},
			PhaseStats: byTeam[r.TeamID],
		}
		if r.TeamID > 0 {
			team.TeamID = strconv.Itoa(r.TeamID)
		}
		if r.Team != nil {
			team.DisplayName = r.Team.Name
			team.LogoRef = logoRefFunc(r.Team.LogoKey, uploader)
		}
		if team.DisplayName == "" && team.TeamID != "" {
			team.DisplayName = fmt.Sprintf("Team %d", r.TeamID)
		}
		raw = append(raw, team)
	}
	return raw
}

func toMatchSummaries(matches []*models.Match) []standings.MatchSummary {
	out := make([]standings.MatchSummary, 0, len(matches))
	for _, m := range matches {
		if m == nil {
			continue
		}
		out = append(out, standings.MatchSummary{
			ID:    strconv.Itoa(m.ID),
			Phase: standings.PhaseTag(derefString(m.PhaseTag)),
		})
	}
	return out
}

// mapEngineError turns engine failures caused by stored data into a service
// error while keeping the engine sentinel in the chain.
func mapEngineError(tournamentID int, err error) error {
	if errors.Is(err, standings.ErrInvalidInput) || errors.Is(err, standings.ErrUnknownPhaseTag) {
		return fmt.Errorf("%w (tournament %d): %w", ErrStandingsDataInvalid, tournamentID, err)
	}
	return fmt.Errorf("building standings for tournament %d: %w", tournamentID, err)
}
