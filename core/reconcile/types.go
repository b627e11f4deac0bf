package reconcile

import "strings"

// Kind identifies the hierarchy level an object belongs to.
// It is set at construction and never changes.
type Kind string

const (
	// KindArea is a top-level grouping entity.
	KindArea Kind = "area"
	// KindCategory is an entity nested under an area, optionally under
	// another category.
	KindCategory Kind = "category"
	// KindAttribute is a field definition attached to a category.
	KindAttribute Kind = "attribute"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindArea, KindCategory, KindAttribute:
		return true
	default:
		return false
	}
}

// TableName maps a kind to its backing database table.
func (k Kind) TableName() string {
	switch k {
	case KindArea:
		return "areas"
	case KindCategory:
		return "categories"
	case KindAttribute:
		return "attribute_definitions"
	default:
		return string(k)
	}
}

// Object represents one area, category or attribute taking part in a
// reconciliation run. Old-side objects come from the authoritative
// store, new-side objects from a freshly submitted snapshot.
type Object struct {
	// Position is the row position in the submitted snapshot.
	// Zero for objects loaded from the database, which have no row.
	Position int `json:"position"`

	// Name is the human-chosen display name.
	Name string `json:"name"`

	// Kind is the hierarchy level of this object.
	Kind Kind `json:"kind"`

	// ParentName is the name of the immediate parent category.
	// Empty for areas and for root-level categories.
	ParentName string `json:"parent_name,omitempty"`

	// Depth is the hierarchy depth for categories and attributes
	// (1 = top-level category under an area).
	Depth int `json:"depth,omitempty"`

	// Token is the stable identifier carried over from a previous save.
	// Empty for objects that have never been persisted. When present on
	// both sides it is the strongest identity signal.
	Token string `json:"token,omitempty"`

	// AreaName is the name of the owning area (categories, attributes).
	AreaName string `json:"area_name,omitempty"`

	// CategoryName is the name of the owning category (attributes only).
	CategoryName string `json:"category_name,omitempty"`

	// Attributes holds the remaining descriptive fields (icon, color,
	// sort_order, data_type, unit, ...) as strings for uniform
	// comparison.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Path returns the human-readable hierarchical path of the object.
// It is used for diagnostics and caller-side lookups, never for
// identity matching.
func (o *Object) Path() string {
	var parts []string
	if o.AreaName != "" {
		parts = append(parts, o.AreaName)
	}
	if o.ParentName != "" {
		parts = append(parts, o.ParentName)
	}
	if o.Name != "" {
		parts = append(parts, o.Name)
	}
	if len(parts) == 0 {
		return o.Name
	}
	return strings.Join(parts, " > ")
}

// Classification describes how a match was established.
type Classification string

const (
	// MatchExact means the identity token matched and the name is
	// unchanged.
	MatchExact Classification = "EXACT"
	// MatchRename means the object was recognized (by token or by
	// content similarity) but its name changed.
	MatchRename Classification = "RENAME"
	// MatchUpdate means content similarity confirmed the object as a
	// continuation of the old one under the same name.
	MatchUpdate Classification = "UPDATE"
)

// Match pairs one old object with one new object.
type Match struct {
	// Old is the object from the authoritative snapshot.
	Old *Object `json:"old"`

	// New is the object from the submitted snapshot.
	New *Object `json:"new"`

	// Confidence is the match confidence in [0,1]. Token matches are
	// always exactly 1.0.
	Confidence float64 `json:"confidence"`

	// Classification is EXACT, RENAME or UPDATE.
	Classification Classification `json:"classification"`

	// Signals is the per-signal score breakdown, retained for audit
	// and for surfacing low-confidence matches to a human reviewer.
	Signals map[string]float64 `json:"signals"`
}

// Result is the complete outcome of one reconciliation run. Every input
// object appears in exactly one of Matches, UnmatchedOld or UnmatchedNew.
type Result struct {
	// Matches pairs recognized objects.
	Matches []Match `json:"matches"`

	// UnmatchedOld lists old objects absent from the new snapshot
	// (candidate deletions).
	UnmatchedOld []*Object `json:"unmatched_old"`

	// UnmatchedNew lists new objects with no counterpart in the old
	// snapshot (candidate insertions).
	UnmatchedNew []*Object `json:"unmatched_new"`
}

// Summary provides aggregate statistics for a match result.
type Summary struct {
	// TotalMatches is the number of matched pairs.
	TotalMatches int `json:"total_matches"`
	// Exact counts token-confirmed unchanged objects.
	Exact int `json:"exact"`
	// Renames counts matches whose name changed.
	Renames int `json:"renames"`
	// Updates counts same-name content-similarity matches.
	Updates int `json:"updates"`
	// Insertions counts unmatched new objects.
	Insertions int `json:"insertions"`
	// Deletions counts unmatched old objects.
	Deletions int `json:"deletions"`
	// AvgConfidence is the mean confidence over all matches.
	AvgConfidence float64 `json:"avg_confidence"`
}

// Summary computes aggregate statistics for the result.
func (r *Result) Summary() Summary {
	s := Summary{
		TotalMatches: len(r.Matches),
		Insertions:   len(r.UnmatchedNew),
		Deletions:    len(r.UnmatchedOld),
	}

	var total float64
	for _, m := range r.Matches {
		total += m.Confidence
		switch m.Classification {
		case MatchExact:
			s.Exact++
		case MatchRename:
			s.Renames++
		case MatchUpdate:
			s.Updates++
		}
	}
	if len(r.Matches) > 0 {
		s.AvgConfidence = total / float64(len(r.Matches))
	}

	return s
}
