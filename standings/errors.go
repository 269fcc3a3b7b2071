package standings

import "errors"

var (
	// ErrInvalidInput is returned when a caller-supplied record is missing a
	// required identifier or is otherwise unusable.
	ErrInvalidInput = errors.New("invalid standings input")

	// ErrUnknownPhaseTag is returned when a phase tag is outside the
	// recognised set. The engine never guesses a kind for such tags.
	ErrUnknownPhaseTag = errors.New("unknown phase tag")
)
