package models

// Snapshot is the JSON document describing a desired structure. It is
// what clients submit for reconciliation and what the export endpoint
// produces, so a fresh export always round-trips as a no-op.
type Snapshot struct {
	Areas []AreaRow `json:"areas"`
}

// AreaRow is one area in a snapshot. ID is optional; when present it is
// treated as the authoritative identity token.
type AreaRow struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon,omitempty"`
	Color       string        `json:"color,omitempty"`
	Description string        `json:"description,omitempty"`
	Categories  []CategoryRow `json:"categories,omitempty"`
}

// CategoryRow is one category in a snapshot. Children nest recursively.
type CategoryRow struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Categories  []CategoryRow  `json:"categories,omitempty"`
	Attributes  []AttributeRow `json:"attributes,omitempty"`
}

// AttributeRow is one attribute definition in a snapshot.
type AttributeRow struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	DataType        string `json:"data_type,omitempty"`
	Unit            string `json:"unit,omitempty"`
	IsRequired      bool   `json:"is_required,omitempty"`
	DefaultValue    string `json:"default_value,omitempty"`
	ValidationRules string `json:"validation_rules,omitempty"`
}
