package reconcile

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Signal weights. Must sum to 1.0.
const (
	weightPosition   = 0.20
	weightName       = 0.40
	weightParent     = 0.20
	weightSibling    = 0.10
	weightAttributes = 0.10
)

// Signal names as they appear in the breakdown map.
const (
	SignalIdentity   = "identity"
	SignalPosition   = "position"
	SignalName       = "name"
	SignalParent     = "parent"
	SignalSibling    = "sibling"
	SignalAttributes = "attributes"
)

// similarity computes the weighted multi-signal confidence score for one
// old/new candidate pair of the same kind and block. It returns the
// score and the full per-signal breakdown for traceability.
func similarity(old, new *Object) (float64, map[string]float64) {
	signals := make(map[string]float64, 5)

	// Position: only judged when both sides carry a valid row position.
	var position float64
	switch {
	case old.Position > 0 && new.Position > 0 && old.Position == new.Position:
		position = 1.0
	case old.Position > 0 && new.Position > 0:
		position = 0.0
	default:
		position = 0.5
	}
	signals[SignalPosition] = position

	// Name: normalized edit-distance ratio, case-insensitive.
	name := nameSimilarity(old.Name, new.Name)
	signals[SignalName] = name

	// Parent: exact match, with both-empty counting as a match.
	var parent float64
	if old.ParentName == new.ParentName {
		parent = 1.0
	}
	signals[SignalParent] = parent

	// Sibling context: proxied by the parent signal.
	signals[SignalSibling] = parent

	attrs := attributeSimilarity(old.Attributes, new.Attributes)
	signals[SignalAttributes] = attrs

	score := weightPosition*position +
		weightName*name +
		weightParent*parent +
		weightSibling*parent +
		weightAttributes*attrs

	return score, signals
}

// nameSimilarity returns the normalized Levenshtein similarity of two
// display names in [0,1], ignoring case.
func nameSimilarity(a, b string) float64 {
	return levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), nil)
}

// attributeSimilarity returns the fraction of overlapping attribute keys
// whose values are equal, or 0.5 when there is nothing to judge (either
// map empty, or no overlapping keys).
func attributeSimilarity(a, b map[string]string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.5
	}

	var common, equal int
	for key, av := range a {
		bv, ok := b[key]
		if !ok {
			continue
		}
		common++
		if av == bv {
			equal++
		}
	}

	if common == 0 {
		return 0.5
	}
	return float64(equal) / float64(common)
}
