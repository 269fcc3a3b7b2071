package standings

import (
	"fmt"
	"strings"
)

// PhaseTag names a stage of a tournament.
type PhaseTag string

const (
	PhaseMatchday   PhaseTag = "MATCHDAY"
	PhaseGroupStage PhaseTag = "GROUP_STAGE"

	// PhaseCrossover is a playoff round not yet split into named rounds.
	PhaseCrossover    PhaseTag = "CROSSOVER"
	PhaseRoundOf32    PhaseTag = "ROUND_OF_32"
	PhaseRoundOf16    PhaseTag = "ROUND_OF_16"
	PhaseQuarterfinal PhaseTag = "QUARTERFINAL"
	PhaseSemifinal    PhaseTag = "SEMIFINAL"
	PhaseFinal        PhaseTag = "FINAL"
)

// PhaseKind says whether a phase feeds the points table or the bracket.
type PhaseKind string

const (
	KindLeague   PhaseKind = "LEAGUE"
	KindKnockout PhaseKind = "KNOCKOUT"
)

// knockoutOrder is the single source of truth for bracket sequencing.
var knockoutOrder = map[PhaseTag]int{
	PhaseCrossover:    0,
	PhaseRoundOf32:    1,
	PhaseRoundOf16:    2,
	PhaseQuarterfinal: 3,
	PhaseSemifinal:    4,
	PhaseFinal:        5,
}

var leaguePhases = map[PhaseTag]struct{}{
	PhaseMatchday:   {},
	PhaseGroupStage: {},
}

// PhaseTags lists every recognised tag, league tags first and knockout tags
// in bracket order.
func PhaseTags() []PhaseTag {
	return []PhaseTag{
		PhaseMatchday,
		PhaseGroupStage,
		PhaseCrossover,
		PhaseRoundOf32,
		PhaseRoundOf16,
		PhaseQuarterfinal,
		PhaseSemifinal,
		PhaseFinal,
	}
}

// PhaseClass is the result of classifying a tag. Order is only meaningful
// for knockout phases.
type PhaseClass struct {
	Tag   PhaseTag  `json:"tag"`
	Kind  PhaseKind `json:"kind"`
	Order *int      `json:"order,omitempty"`
}

func (c PhaseClass) IsKnockout() bool {
	return c.Kind == KindKnockout
}

// ClassifyPhase maps a tag to its kind and, for knockout rounds, its order.
func ClassifyPhase(tag PhaseTag) (PhaseClass, error) {
	if order, ok := knockoutOrder[tag]; ok {
		return PhaseClass{Tag: tag, Kind: KindKnockout, Order: &order}, nil
	}
	if _, ok := leaguePhases[tag]; ok {
		return PhaseClass{Tag: tag, Kind: KindLeague}, nil
	}
	return PhaseClass{}, fmt.Errorf("%w: %q", ErrUnknownPhaseTag, string(tag))
}

// ParsePhaseTag normalises case, spaces and hyphens ("round of 16" becomes
// ROUND_OF_16) and rejects anything outside the recognised set.
func ParsePhaseTag(s string) (PhaseTag, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	tag := PhaseTag(norm)
	if _, err := ClassifyPhase(tag); err != nil {
		return "", err
	}
	return tag, nil
}
