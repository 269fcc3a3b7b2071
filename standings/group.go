package standings

import "slices"

// Ungrouped is the key used for rows without a group label.
const Ungrouped = ""

// Group is one sub-competition's rows.
type Group struct {
	Label string        `json:"label"`
	Rows  []StandingRow `json:"rows"`
}

// IsUngrouped reports whether the group collects unlabelled rows.
func (g Group) IsUngrouped() bool {
	return g.Label == Ungrouped
}

// PartitionByGroup buckets rows by their group label. Each bucket keeps the
// order the rows arrived in, so call it after Rank for per-group tables.
// Labelled groups come first, sorted by label; the ungrouped bucket, if any,
// comes last.
func PartitionByGroup(rows []StandingRow) []Group {
	buckets := make(map[string][]StandingRow)
	labels := make([]string, 0, 4)

	for _, r := range rows {
		if _, ok := buckets[r.Group]; !ok && r.Group != Ungrouped {
			labels = append(labels, r.Group)
		}
		buckets[r.Group] = append(buckets[r.Group], r)
	}

	slices.Sort(labels)

	groups := make([]Group, 0, len(buckets))
	for _, l := range labels {
		groups = append(groups, Group{Label: l, Rows: buckets[l]})
	}
	if rest, ok := buckets[Ungrouped]; ok {
		groups = append(groups, Group{Label: Ungrouped, Rows: rest})
	}
	return groups
}

// HasMultipleGroups is true when at least two distinct non-empty labels are
// present.
func HasMultipleGroups(rows []StandingRow) bool {
	first := ""
	for _, r := range rows {
		if r.Group == Ungrouped {
			continue
		}
		if first == "" {
			first = r.Group
			continue
		}
		if r.Group != first {
			return true
		}
	}
	return false
}
