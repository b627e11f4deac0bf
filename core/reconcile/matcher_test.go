package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatch_TokenPrecedence tests that shared identity tokens always win
// over content similarity, with confidence exactly 1.0.
func TestMatch_TokenPrecedence(t *testing.T) {
	old := []*Object{
		{Name: "Sleep", Kind: KindCategory, AreaName: "Health", Token: "A1", Attributes: map[string]string{"description": "rest tracking"}},
	}
	new := []*Object{
		{Name: "Completely Different", Kind: KindCategory, AreaName: "Work", Token: "A1", Position: 7},
	}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	m := result.Matches[0]
	assert.Equal(t, MatchRename, m.Classification)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Equal(t, map[string]float64{SignalIdentity: 1.0}, m.Signals)
	assert.Empty(t, result.UnmatchedOld)
	assert.Empty(t, result.UnmatchedNew)
}

// TestMatch_TokenExact tests that a token match with an unchanged name
// is classified EXACT.
func TestMatch_TokenExact(t *testing.T) {
	old := []*Object{{Name: "Steps", Kind: KindAttribute, CategoryName: "Cardio", Token: "B1"}}
	new := []*Object{{Name: "Steps", Kind: KindAttribute, CategoryName: "Cardio", Token: "B1", Position: 3}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, MatchExact, result.Matches[0].Classification)
	assert.Equal(t, 1.0, result.Matches[0].Confidence)
}

// TestMatch_TokenAcrossKinds tests that a token shared between objects
// of different kinds is rejected as malformed input.
func TestMatch_TokenAcrossKinds(t *testing.T) {
	old := []*Object{{Name: "Health", Kind: KindArea, Token: "X1"}}
	new := []*Object{{Name: "Health", Kind: KindCategory, Token: "X1"}}

	_, err := NewMatcher(0).Match(old, new)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "X1")
}

// TestMatch_KindIsolation tests that objects of different kinds are
// never matched, even with identical names.
func TestMatch_KindIsolation(t *testing.T) {
	old := []*Object{{Name: "Nutrition", Kind: KindArea}}
	new := []*Object{{Name: "Nutrition", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	assert.Len(t, result.UnmatchedOld, 1)
	assert.Len(t, result.UnmatchedNew, 1)
}

// TestMatch_BlockIsolation tests that same-named objects under different
// areas land in different blocks and are never matched.
func TestMatch_BlockIsolation(t *testing.T) {
	old := []*Object{{Name: "Cardio", Kind: KindCategory, AreaName: "Training", Depth: 1}}
	new := []*Object{{Name: "Cardio", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	require.Len(t, result.UnmatchedOld, 1)
	require.Len(t, result.UnmatchedNew, 1)
	assert.Equal(t, "Training", result.UnmatchedOld[0].AreaName)
	assert.Equal(t, "Health", result.UnmatchedNew[0].AreaName)
}

// TestMatch_ThresholdLowerBound tests that no match is ever produced
// below the confidence threshold.
func TestMatch_ThresholdLowerBound(t *testing.T) {
	old := []*Object{{Name: "Sleep", Kind: KindCategory, AreaName: "Health", Depth: 1}}
	new := []*Object{{Name: "Work", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	// Dissimilar names in the same block fall below 0.65 and surface as
	// an independent deletion plus insertion.
	assert.Empty(t, result.Matches)
	assert.Len(t, result.UnmatchedOld, 1)
	assert.Len(t, result.UnmatchedNew, 1)

	for _, m := range result.Matches {
		assert.GreaterOrEqual(t, m.Confidence, DefaultThreshold)
	}
}

// TestMatch_RenameWithinBlock tests that a near-identical name without a
// token is recognized as a RENAME through content similarity.
func TestMatch_RenameWithinBlock(t *testing.T) {
	old := []*Object{{Name: "Groceries", Kind: KindCategory, AreaName: "Home", Depth: 1}}
	new := []*Object{{Name: "Grocery", Kind: KindCategory, AreaName: "Home", Depth: 1, Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	m := result.Matches[0]
	assert.Equal(t, MatchRename, m.Classification)
	assert.GreaterOrEqual(t, m.Confidence, DefaultThreshold)
	assert.Less(t, m.Confidence, 1.0)
	assert.Contains(t, m.Signals, SignalName)
	assert.Contains(t, m.Signals, SignalParent)
}

// TestMatch_SameNameUpdate tests that an unchanged name without a token
// is classified UPDATE, not EXACT.
func TestMatch_SameNameUpdate(t *testing.T) {
	old := []*Object{{Name: "Steps", Kind: KindAttribute, AreaName: "Health", CategoryName: "Cardio", ParentName: "Cardio", Depth: 1}}
	new := []*Object{{Name: "Steps", Kind: KindAttribute, AreaName: "Health", CategoryName: "Cardio", ParentName: "Cardio", Depth: 1, Position: 2}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, MatchUpdate, result.Matches[0].Classification)
}

// TestMatch_OneToOne tests that no object participates in more than one
// match and that the greedy pass prefers the higher-scoring candidate.
func TestMatch_OneToOne(t *testing.T) {
	old := []*Object{
		{Name: "Running", Kind: KindCategory, AreaName: "Health", Depth: 1},
		{Name: "Runs", Kind: KindCategory, AreaName: "Health", Depth: 1},
	}
	new := []*Object{
		{Name: "Running", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 1},
	}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Running", result.Matches[0].Old.Name)
	require.Len(t, result.UnmatchedOld, 1)
	assert.Equal(t, "Runs", result.UnmatchedOld[0].Name)
	assert.Empty(t, result.UnmatchedNew)
}

// TestMatch_Completeness tests that every input object appears in
// exactly one of matches, unmatched_old or unmatched_new.
func TestMatch_Completeness(t *testing.T) {
	old := []*Object{
		{Name: "Health", Kind: KindArea, Token: "a-1"},
		{Name: "Sleep", Kind: KindCategory, AreaName: "Health", Depth: 1, Token: "c-1"},
		{Name: "Obsolete", Kind: KindCategory, AreaName: "Health", Depth: 1, Token: "c-2"},
	}
	new := []*Object{
		{Name: "Health", Kind: KindArea, Token: "a-1", Position: 1},
		{Name: "Rest", Kind: KindCategory, AreaName: "Health", Depth: 1, Token: "c-1", Position: 2},
		{Name: "Brand New", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 3},
	}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	accounted := len(result.Matches)*2 + len(result.UnmatchedOld) + len(result.UnmatchedNew)
	assert.Equal(t, len(old)+len(new), accounted)

	seen := make(map[*Object]int)
	for _, m := range result.Matches {
		seen[m.Old]++
		seen[m.New]++
	}
	for _, o := range result.UnmatchedOld {
		seen[o]++
	}
	for _, o := range result.UnmatchedNew {
		seen[o]++
	}
	for obj, count := range seen {
		assert.Equal(t, 1, count, "object %q counted %d times", obj.Name, count)
	}
}

// TestMatch_NoOpIdempotence tests that identical snapshots match EXACT
// across the board.
func TestMatch_NoOpIdempotence(t *testing.T) {
	build := func(pos int) []*Object {
		return []*Object{
			{Name: "Health", Kind: KindArea, Token: "a-1", Position: pos, Attributes: map[string]string{"color": "#00FF00"}},
			{Name: "Sleep", Kind: KindCategory, AreaName: "Health", Depth: 1, Token: "c-1", Position: pos},
			{Name: "Hours", Kind: KindAttribute, AreaName: "Health", CategoryName: "Sleep", Token: "at-1", Position: pos, Attributes: map[string]string{"data_type": "number", "unit": "h"}},
		}
	}

	result, err := NewMatcher(0).Match(build(0), build(0))
	require.NoError(t, err)

	require.Len(t, result.Matches, 3)
	for _, m := range result.Matches {
		assert.Equal(t, MatchExact, m.Classification)
		assert.Equal(t, 1.0, m.Confidence)
	}
	assert.Empty(t, result.UnmatchedOld)
	assert.Empty(t, result.UnmatchedNew)

	assert.Empty(t, GenerateOperations(result))
}

// TestMatch_EmptyNameAllowed tests that whitespace-only names pass
// through matching without a special-case rejection.
func TestMatch_EmptyNameAllowed(t *testing.T) {
	old := []*Object{{Name: "  ", Kind: KindCategory, AreaName: "Health", Depth: 1}}
	new := []*Object{{Name: "  ", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1)
}

// TestMatch_MalformedInput tests fail-fast behavior on objects the
// matcher cannot reason about.
func TestMatch_MalformedInput(t *testing.T) {
	tests := []struct {
		name string
		old  []*Object
		new  []*Object
	}{
		{
			name: "nil old object",
			old:  []*Object{nil},
			new:  []*Object{},
		},
		{
			name: "unknown kind",
			old:  []*Object{{Name: "Thing", Kind: Kind("widget")}},
			new:  []*Object{},
		},
		{
			name: "nil new object",
			old:  []*Object{},
			new:  []*Object{{Name: "OK", Kind: KindArea}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher(0).Match(tt.old, tt.new)
			assert.Error(t, err)
		})
	}
}

// TestMatch_CustomThreshold tests that a stricter threshold rejects
// pairs the default would accept.
func TestMatch_CustomThreshold(t *testing.T) {
	old := []*Object{{Name: "Groceries", Kind: KindCategory, AreaName: "Home", Depth: 1}}
	new := []*Object{{Name: "Grocery", Kind: KindCategory, AreaName: "Home", Depth: 1, Position: 1}}

	loose, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)
	require.Len(t, loose.Matches, 1)

	strict, err := NewMatcher(0.99).Match(old, new)
	require.NoError(t, err)
	assert.Empty(t, strict.Matches)
	assert.Len(t, strict.UnmatchedOld, 1)
	assert.Len(t, strict.UnmatchedNew, 1)
}

// TestResult_Summary tests the aggregate statistics.
func TestResult_Summary(t *testing.T) {
	result := &Result{
		Matches: []Match{
			{Confidence: 1.0, Classification: MatchExact},
			{Confidence: 1.0, Classification: MatchRename},
			{Confidence: 0.8, Classification: MatchUpdate},
		},
		UnmatchedOld: []*Object{{Name: "gone", Kind: KindArea}},
		UnmatchedNew: []*Object{{Name: "new1", Kind: KindArea}, {Name: "new2", Kind: KindArea}},
	}

	s := result.Summary()
	assert.Equal(t, 3, s.TotalMatches)
	assert.Equal(t, 1, s.Exact)
	assert.Equal(t, 1, s.Renames)
	assert.Equal(t, 1, s.Updates)
	assert.Equal(t, 1, s.Deletions)
	assert.Equal(t, 2, s.Insertions)
	assert.InDelta(t, (1.0+1.0+0.8)/3, s.AvgConfidence, 1e-9)
}
