package standings

import "strings"

// FormatTag is the tournament's declared competition format.
type FormatTag string

const (
	FormatLeague             FormatTag = "LEAGUE"
	FormatGroups             FormatTag = "GROUPS"
	FormatGroupsPlusKnockout FormatTag = "GROUPS_PLUS_KNOCKOUT"
	FormatLeaguePlusPlayoff  FormatTag = "LEAGUE_PLUS_PLAYOFF"
	FormatKnockoutOnly       FormatTag = "KNOCKOUT_ONLY"
)

// FormatTags lists every recognised format.
func FormatTags() []FormatTag {
	return []FormatTag{
		FormatLeague,
		FormatGroups,
		FormatGroupsPlusKnockout,
		FormatLeaguePlusPlayoff,
		FormatKnockoutOnly,
	}
}

// IsPureKnockout is true for bracket-only competitions without any table.
func (f FormatTag) IsPureKnockout() bool {
	return FormatTag(strings.ToUpper(strings.TrimSpace(string(f)))) == FormatKnockoutOnly
}

// DisplayMode tells the presentation layer what to render.
type DisplayMode string

const (
	DisplayTableOnly   DisplayMode = "TABLE_ONLY"
	DisplayBracketOnly DisplayMode = "BRACKET_ONLY"
	DisplayMixed       DisplayMode = "MIXED"
)

// SelectDisplayMode never fails: tags it cannot classify simply do not count
// as knockout, and TABLE_ONLY is the fallback.
func SelectDisplayMode(format FormatTag, observed []PhaseTag) DisplayMode {
	if format.IsPureKnockout() {
		return DisplayBracketOnly
	}
	for _, tag := range observed {
		class, err := ClassifyPhase(tag)
		if err == nil && class.IsKnockout() {
			return DisplayMixed
		}
	}
	return DisplayTableOnly
}
