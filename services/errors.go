package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPhaseNotFound      = errors.New("phase not found in this tournament")

	// Stored data the standings engine refuses to work with (unknown phase
	// tags, teams without ids).
	ErrStandingsDataInvalid = errors.New("tournament standings data is inconsistent")

	ErrStorageUnavailable  = errors.New("object storage is not configured")
	ErrRealtimeUnavailable = errors.New("realtime updates are not available")
)
