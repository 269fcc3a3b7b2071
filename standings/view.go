package standings

import (
	"cmp"
	"fmt"
	"slices"
)

// MatchSummary is the only part of a match the engine looks at. Phase is
// empty for matches that are not attached to a phase.
type MatchSummary struct {
	ID    string
	Phase PhaseTag
}

// ViewOptions are the caller's explicit view selections.
type ViewOptions struct {
	// Scope picks tournament-wide or single-phase statistics.
	Scope Scope
	// Group, when set, limits Rows and Groups to that label.
	Group string
	// RequirePhase makes a match without a phase an error instead of being
	// left out of the bracket.
	RequirePhase bool
}

// PhaseGroup is one knockout round with the matches played in it.
type PhaseGroup struct {
	Tag      PhaseTag `json:"tag"`
	Order    int      `json:"order"`
	MatchIDs []string `json:"match_ids"`
}

// View is everything the presentation layer needs to render a tournament's
// standings.
type View struct {
	DisplayMode    DisplayMode   `json:"display_mode"`
	Scope          string        `json:"scope"`
	Rows           []StandingRow `json:"rows"`
	Groups         []Group       `json:"groups,omitempty"`
	KnockoutPhases []PhaseGroup  `json:"knockout_phases"`
}

// BuildView aggregates and ranks the table, buckets it by group when there
// is more than one group, collects the knockout rounds present in matches in
// bracket order and picks the display mode. It either succeeds fully or
// returns an error and no view.
func BuildView(raw []RawTeam, matches []MatchSummary, format FormatTag, opts ViewOptions) (*View, error) {
	rows, err := Aggregate(raw, opts.Scope)
	if err != nil {
		return nil, err
	}
	ranked := Rank(rows)

	knockout, observed, err := KnockoutPhases(matches, opts.RequirePhase)
	if err != nil {
		return nil, err
	}

	view := &View{
		DisplayMode:    SelectDisplayMode(format, observed),
		Scope:          opts.Scope.String(),
		Rows:           ranked,
		KnockoutPhases: knockout,
	}

	if HasMultipleGroups(ranked) {
		view.Groups = PartitionByGroup(ranked)
	}

	if opts.Group != "" {
		view.Rows = filterGroup(ranked, opts.Group)
		if view.Groups != nil {
			view.Groups = slices.DeleteFunc(view.Groups, func(g Group) bool { return g.Label != opts.Group })
		}
	}

	return view, nil
}

// KnockoutPhases classifies every match's phase and returns the distinct
// knockout rounds sorted by bracket order, together with every observed tag.
// Unknown tags fail with ErrUnknownPhaseTag.
func KnockoutPhases(matches []MatchSummary, requirePhase bool) ([]PhaseGroup, []PhaseTag, error) {
	byTag := make(map[PhaseTag]*PhaseGroup)
	observed := make([]PhaseTag, 0, len(matches))

	for i, m := range matches {
		if m.Phase == "" {
			if requirePhase {
				return nil, nil, fmt.Errorf("%w: match %d (%q) has no phase", ErrInvalidInput, i, m.ID)
			}
			continue
		}
		class, err := ClassifyPhase(m.Phase)
		if err != nil {
			return nil, nil, fmt.Errorf("match %q: %w", m.ID, err)
		}
		observed = append(observed, m.Phase)
		if !class.IsKnockout() {
			continue
		}
		pg, ok := byTag[m.Phase]
		if !ok {
			pg = &PhaseGroup{Tag: m.Phase, Order: *class.Order, MatchIDs: make([]string, 0, 4)}
			byTag[m.Phase] = pg
		}
		if m.ID != "" {
			pg.MatchIDs = append(pg.MatchIDs, m.ID)
		}
	}

	phases := make([]PhaseGroup, 0, len(byTag))
	for _, pg := range byTag {
		phases = append(phases, *pg)
	}
	slices.SortFunc(phases, func(a, b PhaseGroup) int { return cmp.Compare(a.Order, b.Order) })

	return phases, observed, nil
}

func filterGroup(rows []StandingRow, label string) []StandingRow {
	out := make([]StandingRow, 0, len(rows))
	for _, r := range rows {
		if r.Group == label {
			out = append(out, r)
		}
	}
	return out
}
