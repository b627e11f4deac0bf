package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateOperations_PureRename tests the token-confirmed rename
// scenario end to end: one UPDATE operation carrying both names.
func TestGenerateOperations_PureRename(t *testing.T) {
	old := []*Object{{Name: "Sleep", Kind: KindCategory, AreaName: "Health", Token: "A1"}}
	new := []*Object{{Name: "Rest", Kind: KindCategory, AreaName: "Health", Token: "A1", Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, MatchRename, result.Matches[0].Classification)
	assert.Equal(t, 1.0, result.Matches[0].Confidence)

	ops := GenerateOperations(result)
	require.Len(t, ops, 1)
	op := ops[0]
	assert.Equal(t, OpUpdate, op.Op)
	assert.Equal(t, "categories", op.Table)
	assert.Equal(t, "A1", op.ID)
	assert.Equal(t, "Sleep", op.OldName)
	assert.Equal(t, "Rest", op.NewName)
	assert.Equal(t, 1.0, op.Confidence)
	assert.NotEmpty(t, op.Signals)
}

// TestGenerateOperations_CrossArea tests that same-named categories
// under different areas become an independent delete plus insert.
func TestGenerateOperations_CrossArea(t *testing.T) {
	old := []*Object{{Name: "Cardio", Kind: KindCategory, AreaName: "Training", Depth: 1, Token: "C9"}}
	new := []*Object{{Name: "Cardio", Kind: KindCategory, AreaName: "Health", Depth: 1, Position: 1}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)
	require.Empty(t, result.Matches)

	ops := GenerateOperations(result)
	require.Len(t, ops, 2)

	var deletes, inserts []Operation
	for _, op := range ops {
		switch op.Op {
		case OpDelete:
			deletes = append(deletes, op)
		case OpInsert:
			inserts = append(inserts, op)
		}
	}

	require.Len(t, deletes, 1)
	assert.Equal(t, "C9", deletes[0].ID)
	assert.Equal(t, "Cardio", deletes[0].Name)
	assert.True(t, deletes[0].RequiresConfirmation)

	require.Len(t, inserts, 1)
	assert.Equal(t, "Cardio", inserts[0].Name)
	assert.Equal(t, "Health", inserts[0].AreaName)
	assert.Empty(t, inserts[0].ID)
}

// TestGenerateOperations_ExactWithAttributeDiff tests that a token
// match with an unchanged name still emits an UPDATE when a descriptive
// field changed. Attribute-only edits must not be dropped.
func TestGenerateOperations_ExactWithAttributeDiff(t *testing.T) {
	old := []*Object{{Name: "Steps", Kind: KindAttribute, CategoryName: "Cardio", Token: "B1", Attributes: map[string]string{"data_type": "number", "unit": "steps"}}}
	new := []*Object{{Name: "Steps", Kind: KindAttribute, CategoryName: "Cardio", Token: "B1", Position: 1, Attributes: map[string]string{"data_type": "number", "unit": "count"}}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, MatchExact, result.Matches[0].Classification)

	ops := GenerateOperations(result)
	require.Len(t, ops, 1)
	op := ops[0]
	assert.Equal(t, OpUpdate, op.Op)
	assert.Equal(t, "attribute_definitions", op.Table)
	assert.Equal(t, "B1", op.ID)
	assert.Empty(t, op.NewName)
	require.Contains(t, op.Changes, "unit")
	assert.Equal(t, FieldChange{Old: "steps", New: "count"}, op.Changes["unit"])
	assert.NotContains(t, op.Changes, "data_type")
}

// TestGenerateOperations_ExactUnchanged tests that an unchanged token
// match produces no operation at all.
func TestGenerateOperations_ExactUnchanged(t *testing.T) {
	old := []*Object{{Name: "Steps", Kind: KindAttribute, Token: "B1", Attributes: map[string]string{"unit": "steps"}}}
	new := []*Object{{Name: "Steps", Kind: KindAttribute, Token: "B1", Position: 1, Attributes: map[string]string{"unit": "steps"}}}

	result, err := NewMatcher(0).Match(old, new)
	require.NoError(t, err)

	assert.Empty(t, GenerateOperations(result))
}

// TestGenerateOperations_RenameCarriesAttributeDiff tests that a rename
// also carries the changed descriptive fields.
func TestGenerateOperations_RenameCarriesAttributeDiff(t *testing.T) {
	result := &Result{
		Matches: []Match{{
			Old:            &Object{Name: "Sleep", Kind: KindCategory, Token: "A1", Attributes: map[string]string{"description": "old"}},
			New:            &Object{Name: "Rest", Kind: KindCategory, Token: "A1", Attributes: map[string]string{"description": "new"}},
			Confidence:     1.0,
			Classification: MatchRename,
			Signals:        map[string]float64{SignalIdentity: 1.0},
		}},
	}

	ops := GenerateOperations(result)
	require.Len(t, ops, 1)
	assert.Equal(t, "Rest", ops[0].NewName)
	assert.Equal(t, FieldChange{Old: "old", New: "new"}, ops[0].Changes["description"])
}

// TestGenerateOperations_InsertFields tests kind-specific insert fields
// and their defaults.
func TestGenerateOperations_InsertFields(t *testing.T) {
	result := &Result{
		UnmatchedNew: []*Object{
			{Name: "Finance", Kind: KindArea, Attributes: map[string]string{"icon": "💰", "sort_order": "3"}},
			{Name: "Budget", Kind: KindCategory, AreaName: "Finance", Attributes: map[string]string{"description": "monthly budget"}},
			{Name: "Amount", Kind: KindAttribute, AreaName: "Finance", CategoryName: "Budget", Attributes: map[string]string{"unit": "EUR"}},
		},
	}

	ops := GenerateOperations(result)
	require.Len(t, ops, 3)

	area := ops[0]
	assert.Equal(t, OpInsert, area.Op)
	assert.Equal(t, "areas", area.Table)
	assert.Equal(t, 3, area.SortOrder)
	assert.Equal(t, "💰", area.Fields["icon"])
	assert.Equal(t, "", area.Fields["color"])

	category := ops[1]
	assert.Equal(t, "categories", category.Table)
	assert.Equal(t, "Finance", category.AreaName)
	assert.Equal(t, "monthly budget", category.Fields["description"])

	attribute := ops[2]
	assert.Equal(t, "attribute_definitions", attribute.Table)
	assert.Equal(t, "Budget", attribute.CategoryName)
	assert.Equal(t, "EUR", attribute.Fields["unit"])
	// Defaults for columns the snapshot did not carry.
	assert.Equal(t, "text", attribute.Fields["data_type"])
	assert.Equal(t, "{}", attribute.Fields["validation_rules"])
	assert.Equal(t, "false", attribute.Fields["is_required"])
}

// TestDiffAttributes tests the union-of-keys diff.
func TestDiffAttributes(t *testing.T) {
	old := map[string]string{"unit": "km", "data_type": "number", "removed": "x"}
	new := map[string]string{"unit": "mi", "data_type": "number", "added": "y"}

	changes := diffAttributes(old, new)
	assert.Len(t, changes, 3)
	assert.Equal(t, FieldChange{Old: "km", New: "mi"}, changes["unit"])
	assert.Equal(t, FieldChange{Old: "x", New: ""}, changes["removed"])
	assert.Equal(t, FieldChange{Old: "", New: "y"}, changes["added"])

	assert.Nil(t, diffAttributes(map[string]string{"a": "1"}, map[string]string{"a": "1"}))
}

// TestObject_Path tests hierarchical path construction.
func TestObject_Path(t *testing.T) {
	tests := []struct {
		name string
		obj  *Object
		want string
	}{
		{name: "area only", obj: &Object{Name: "Health", Kind: KindArea}, want: "Health"},
		{name: "category under area", obj: &Object{Name: "Sleep", Kind: KindCategory, AreaName: "Health"}, want: "Health > Sleep"},
		{name: "nested", obj: &Object{Name: "Deep", Kind: KindCategory, AreaName: "Health", ParentName: "Sleep"}, want: "Health > Sleep > Deep"},
		{name: "empty", obj: &Object{Kind: KindArea}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.obj.Path())
		})
	}
}

// TestKind_TableName tests the kind to table mapping.
func TestKind_TableName(t *testing.T) {
	assert.Equal(t, "areas", KindArea.TableName())
	assert.Equal(t, "categories", KindCategory.TableName())
	assert.Equal(t, "attribute_definitions", KindAttribute.TableName())
}
