package reconcile

import (
	"fmt"
	"sort"
)

// DefaultThreshold is the minimum confidence at which a content-similarity
// candidate is considered a match. Pairs scoring below it surface as an
// independent deletion plus insertion, never as a low-confidence match.
const DefaultThreshold = 0.65

// Matcher performs one reconciliation run over two object lists.
// It is stateless between runs; a single Matcher may be reused.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given confidence threshold.
// A threshold of zero or less selects DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// candidate is one above-threshold cell of a block's similarity matrix.
type candidate struct {
	score   float64
	old     *Object
	new     *Object
	signals map[string]float64
}

// Match reconciles the old (authoritative) and new (submitted) object
// lists. Every input object ends up in exactly one of the result's
// Matches, UnmatchedOld or UnmatchedNew. It returns an error on
// malformed input: nil objects, unknown kinds, or an identity token
// shared between objects of different kinds.
func (m *Matcher) Match(old, new []*Object) (*Result, error) {
	if err := validateObjects("old", old); err != nil {
		return nil, err
	}
	if err := validateObjects("new", new); err != nil {
		return nil, err
	}

	result := &Result{}

	// Phase 1: identity tokens are authoritative and matched before any
	// similarity computation.
	remainingOld, remainingNew, tokenMatches, err := matchByToken(old, new)
	if err != nil {
		return nil, err
	}
	result.Matches = append(result.Matches, tokenMatches...)

	// Phase 2: partition the remainder into comparison buckets.
	blocks := buildBlocks(remainingOld, remainingNew)

	// Phase 3: collect above-threshold candidates from every block's
	// similarity matrix, then accept greedily under a one-to-one
	// constraint. Candidates are collected across all blocks and sorted
	// once so the stable-sort tie-break stays reproducible.
	var candidates []candidate
	for _, key := range sortedBlockKeys(blocks) {
		b := blocks[key]
		if len(b.old) == 0 || len(b.new) == 0 {
			continue
		}
		for _, o := range b.old {
			for _, n := range b.new {
				score, signals := similarity(o, n)
				if score >= m.threshold {
					candidates = append(candidates, candidate{score: score, old: o, new: n, signals: signals})
				}
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	matchedOld := make(map[*Object]bool, len(tokenMatches))
	matchedNew := make(map[*Object]bool, len(tokenMatches))
	for _, c := range candidates {
		if matchedOld[c.old] || matchedNew[c.new] {
			continue
		}
		matchedOld[c.old] = true
		matchedNew[c.new] = true

		classification := MatchUpdate
		if c.old.Name != c.new.Name {
			classification = MatchRename
		}
		result.Matches = append(result.Matches, Match{
			Old:            c.old,
			New:            c.new,
			Confidence:     c.score,
			Classification: classification,
			Signals:        c.signals,
		})
	}

	// Phase 4: everything left over is a candidate deletion or insertion.
	for _, o := range remainingOld {
		if !matchedOld[o] {
			result.UnmatchedOld = append(result.UnmatchedOld, o)
		}
	}
	for _, n := range remainingNew {
		if !matchedNew[n] {
			result.UnmatchedNew = append(result.UnmatchedNew, n)
		}
	}

	return result, nil
}

// matchByToken pairs old and new objects sharing a non-empty identity
// token. It returns the leftovers for the similarity phases and the
// token matches, all with confidence exactly 1.0.
func matchByToken(old, new []*Object) (remainingOld, remainingNew []*Object, matches []Match, err error) {
	newByToken := make(map[string]*Object, len(new))
	for _, n := range new {
		if n.Token != "" {
			newByToken[n.Token] = n
		}
	}

	matchedNew := make(map[*Object]bool)
	for _, o := range old {
		n, ok := newByToken[o.Token]
		if o.Token == "" || !ok {
			remainingOld = append(remainingOld, o)
			continue
		}
		if o.Kind != n.Kind {
			return nil, nil, nil, fmt.Errorf("identity token %q shared between %s %q and %s %q", o.Token, o.Kind, o.Name, n.Kind, n.Name)
		}

		classification := MatchExact
		if o.Name != n.Name {
			classification = MatchRename
		}
		matches = append(matches, Match{
			Old:            o,
			New:            n,
			Confidence:     1.0,
			Classification: classification,
			Signals:        map[string]float64{SignalIdentity: 1.0},
		})
		matchedNew[n] = true
	}

	for _, n := range new {
		if !matchedNew[n] {
			remainingNew = append(remainingNew, n)
		}
	}

	return remainingOld, remainingNew, matches, nil
}

// validateObjects fails fast on input the matcher cannot reason about.
// Empty display names are deliberately allowed through: name validation
// belongs to the snapshot loaders, not to this layer.
func validateObjects(side string, objects []*Object) error {
	for i, o := range objects {
		if o == nil {
			return fmt.Errorf("%s object at index %d is nil", side, i)
		}
		if !o.Kind.Valid() {
			return fmt.Errorf("%s object %q at index %d has unknown kind %q", side, o.Name, i, o.Kind)
		}
	}
	return nil
}
