package models

// Area represents the 'areas' table, the top level of the hierarchy.
type Area struct {
	ID          string `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name"`
	Icon        string `gorm:"column:icon"`
	Color       string `gorm:"column:color"`
	Description string `gorm:"column:description"`
	SortOrder   int    `gorm:"column:sort_order"`
}

// TableName overrides the table name.
func (Area) TableName() string {
	return "areas"
}

// Category represents the 'categories' table. Categories nest through
// ParentCategoryID; a NULL parent means the category sits directly
// under its area.
type Category struct {
	ID               string  `gorm:"column:id;primaryKey"`
	AreaID           string  `gorm:"column:area_id"`
	ParentCategoryID *string `gorm:"column:parent_category_id"`
	Name             string  `gorm:"column:name"`
	Description      string  `gorm:"column:description"`
	SortOrder        int     `gorm:"column:sort_order"`
}

// TableName overrides the table name.
func (Category) TableName() string {
	return "categories"
}

// AttributeDefinition represents the 'attribute_definitions' table.
// Attributes always hang off a category.
type AttributeDefinition struct {
	ID              string `gorm:"column:id;primaryKey"`
	CategoryID      string `gorm:"column:category_id"`
	Name            string `gorm:"column:name"`
	DataType        string `gorm:"column:data_type"`
	Unit            string `gorm:"column:unit"`
	IsRequired      bool   `gorm:"column:is_required"`
	DefaultValue    string `gorm:"column:default_value"`
	ValidationRules string `gorm:"column:validation_rules"`
	SortOrder       int    `gorm:"column:sort_order"`
}

// TableName overrides the table name.
func (AttributeDefinition) TableName() string {
	return "attribute_definitions"
}
