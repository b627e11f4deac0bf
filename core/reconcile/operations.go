package reconcile

import "strconv"

// OpType tags an executable change operation.
type OpType string

const (
	// OpInsert creates a new row.
	OpInsert OpType = "INSERT"
	// OpUpdate renames a row or changes its descriptive fields.
	OpUpdate OpType = "UPDATE"
	// OpDelete removes a row. Deletions cascade downward and always
	// require explicit confirmation before being applied.
	OpDelete OpType = "DELETE"
)

// FieldChange records the old and new value of one changed field.
type FieldChange struct {
	// Old is the value in the authoritative snapshot.
	Old string `json:"old"`
	// New is the value in the submitted snapshot.
	New string `json:"new"`
}

// Operation is one executable change ready for the persistence layer.
type Operation struct {
	// Op is INSERT, UPDATE or DELETE.
	Op OpType `json:"operation"`

	// Table is the database table the operation targets.
	Table string `json:"table"`

	// Kind is the hierarchy level of the affected object.
	Kind Kind `json:"kind"`

	// ID is the identity token of the affected row. Empty for inserts;
	// the applier mints a fresh identifier.
	ID string `json:"id,omitempty"`

	// Name is the display name (inserts and deletes).
	Name string `json:"name,omitempty"`

	// OldName and NewName are set on rename updates.
	OldName string `json:"old_name,omitempty"`
	NewName string `json:"new_name,omitempty"`

	// Confidence and Signals carry the match evidence for updates, so a
	// reviewer can judge borderline renames before applying.
	Confidence float64            `json:"confidence,omitempty"`
	Signals    map[string]float64 `json:"signals,omitempty"`

	// Changes maps changed field names to their old/new values.
	Changes map[string]FieldChange `json:"changes,omitempty"`

	// RequiresConfirmation is set on every delete.
	RequiresConfirmation bool `json:"requires_confirmation,omitempty"`

	// SortOrder is the insert position within the parent.
	SortOrder int `json:"sort_order,omitempty"`

	// AreaName, ParentName and CategoryName locate inserted objects in
	// the hierarchy; the applier resolves them to row identifiers.
	AreaName     string `json:"area_name,omitempty"`
	ParentName   string `json:"parent_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`

	// Fields holds the remaining kind-specific columns for inserts.
	Fields map[string]string `json:"fields,omitempty"`
}

// GenerateOperations converts a match result into a flat operation list.
//
// The list itself carries no global ordering; the applier MUST apply it
// as INSERT(areas) → INSERT(categories) → INSERT(attributes) → UPDATE →
// DELETE(attributes) → DELETE(categories) → DELETE(areas), because
// inserted children reference inserted parents by name and deletions
// cascade downward.
//
// Attribute diffs are computed for every match regardless of
// classification, so attribute-only edits on a token-matched,
// unrenamed object are not dropped. A match with no name change and no
// field change produces no operation at all.
func GenerateOperations(res *Result) []Operation {
	var ops []Operation

	for _, m := range res.Matches {
		changes := diffAttributes(m.Old.Attributes, m.New.Attributes)

		if m.Classification == MatchRename {
			ops = append(ops, Operation{
				Op:         OpUpdate,
				Table:      m.Old.Kind.TableName(),
				Kind:       m.Old.Kind,
				ID:         m.Old.Token,
				OldName:    m.Old.Name,
				NewName:    m.New.Name,
				Confidence: m.Confidence,
				Signals:    m.Signals,
				Changes:    changes,
			})
			continue
		}

		// EXACT and UPDATE: emit only when a field actually changed.
		if len(changes) > 0 {
			ops = append(ops, Operation{
				Op:      OpUpdate,
				Table:   m.Old.Kind.TableName(),
				Kind:    m.Old.Kind,
				ID:      m.Old.Token,
				Changes: changes,
			})
		}
	}

	for _, o := range res.UnmatchedOld {
		ops = append(ops, Operation{
			Op:                   OpDelete,
			Table:                o.Kind.TableName(),
			Kind:                 o.Kind,
			ID:                   o.Token,
			Name:                 o.Name,
			RequiresConfirmation: true,
		})
	}

	for _, o := range res.UnmatchedNew {
		ops = append(ops, insertOperation(o))
	}

	return ops
}

// insertOperation builds the INSERT operation for one unmatched new
// object, copying the kind-specific columns out of its attribute bag.
func insertOperation(o *Object) Operation {
	sortOrder := attrInt(o.Attributes, "sort_order")
	if sortOrder == 0 {
		sortOrder = o.Position
	}

	op := Operation{
		Op:        OpInsert,
		Table:     o.Kind.TableName(),
		Kind:      o.Kind,
		Name:      o.Name,
		SortOrder: sortOrder,
	}

	switch o.Kind {
	case KindArea:
		op.Fields = pickFields(o.Attributes, map[string]string{
			"icon":        "",
			"color":       "",
			"description": "",
		})
	case KindCategory:
		op.AreaName = o.AreaName
		op.ParentName = o.ParentName
		op.Fields = pickFields(o.Attributes, map[string]string{
			"description": "",
		})
	case KindAttribute:
		op.CategoryName = o.CategoryName
		op.AreaName = o.AreaName
		op.Fields = pickFields(o.Attributes, map[string]string{
			"data_type":        "text",
			"unit":             "",
			"is_required":      "false",
			"default_value":    "",
			"validation_rules": "{}",
		})
	}

	return op
}

// diffAttributes returns the changed fields over the union of both
// attribute maps. A key present on only one side counts as a change.
func diffAttributes(old, new map[string]string) map[string]FieldChange {
	changes := make(map[string]FieldChange)

	for key, ov := range old {
		nv, ok := new[key]
		if !ok || ov != nv {
			changes[key] = FieldChange{Old: ov, New: nv}
		}
	}
	for key, nv := range new {
		if _, ok := old[key]; !ok {
			changes[key] = FieldChange{Old: "", New: nv}
		}
	}

	if len(changes) == 0 {
		return nil
	}
	return changes
}

// pickFields copies the wanted keys from the attribute bag, falling back
// to the given defaults when absent.
func pickFields(attrs map[string]string, defaults map[string]string) map[string]string {
	fields := make(map[string]string, len(defaults))
	for key, def := range defaults {
		if val, ok := attrs[key]; ok {
			fields[key] = val
		} else {
			fields[key] = def
		}
	}
	return fields
}

// attrInt parses an integer attribute, returning 0 when absent or
// malformed.
func attrInt(attrs map[string]string, key string) int {
	val, ok := attrs[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}
