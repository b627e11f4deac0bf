package structure

import (
	"context"
	"fmt"
	"strconv"

	"structure-manager/core/reconcile"
	"structure-manager/feature/structure/models"

	"gorm.io/gorm"
)

// LoadCurrent reads the authoritative structure from the database and
// converts it into reconciler objects. Row UUIDs become identity
// tokens; source positions are left unset because the database carries
// no submission order.
func LoadCurrent(ctx context.Context, db *gorm.DB) ([]*reconcile.Object, error) {
	var areas []models.Area
	if err := db.WithContext(ctx).Order("sort_order").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to load areas: %w", err)
	}

	var categories []models.Category
	if err := db.WithContext(ctx).Order("sort_order").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var attributes []models.AttributeDefinition
	if err := db.WithContext(ctx).Order("sort_order").Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("failed to load attribute definitions: %w", err)
	}

	areaByID := make(map[string]models.Area, len(areas))
	for _, a := range areas {
		areaByID[a.ID] = a
	}
	categoryByID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	depthOf := func(c models.Category) int {
		depth := 1
		parent := c.ParentCategoryID
		// Depth is bounded by the category count; anything deeper is a
		// reference cycle in the data.
		for parent != nil && depth <= len(categories) {
			p, ok := categoryByID[*parent]
			if !ok {
				break
			}
			depth++
			parent = p.ParentCategoryID
		}
		return depth
	}

	var objects []*reconcile.Object

	for _, a := range areas {
		objects = append(objects, &reconcile.Object{
			Kind:  reconcile.KindArea,
			Name:  a.Name,
			Token: a.ID,
			Attributes: map[string]string{
				"icon":        a.Icon,
				"color":       a.Color,
				"description": a.Description,
			},
		})
	}

	for _, c := range categories {
		obj := &reconcile.Object{
			Kind:     reconcile.KindCategory,
			Name:     c.Name,
			Token:    c.ID,
			AreaName: areaByID[c.AreaID].Name,
			Depth:    depthOf(c),
			Attributes: map[string]string{
				"description": c.Description,
			},
		}
		if c.ParentCategoryID != nil {
			obj.ParentName = categoryByID[*c.ParentCategoryID].Name
		}
		objects = append(objects, obj)
	}

	for _, attr := range attributes {
		cat, ok := categoryByID[attr.CategoryID]
		if !ok {
			return nil, fmt.Errorf("attribute %s references unknown category %s", attr.Name, attr.CategoryID)
		}
		objects = append(objects, &reconcile.Object{
			Kind:         reconcile.KindAttribute,
			Name:         attr.Name,
			Token:        attr.ID,
			AreaName:     areaByID[cat.AreaID].Name,
			ParentName:   cat.Name,
			CategoryName: cat.Name,
			Depth:        depthOf(cat),
			Attributes:   attributeBag(attr.DataType, attr.Unit, attr.IsRequired, attr.DefaultValue, attr.ValidationRules),
		})
	}

	return objects, nil
}

// SnapshotObjects converts a parsed snapshot into reconciler objects.
// Source positions are 1-based within each parent; row IDs carried by
// the snapshot become identity tokens.
func SnapshotObjects(snap *models.Snapshot) []*reconcile.Object {
	var objects []*reconcile.Object

	for i, area := range snap.Areas {
		objects = append(objects, &reconcile.Object{
			Kind:     reconcile.KindArea,
			Name:     area.Name,
			Token:    area.ID,
			Position: i + 1,
			Attributes: map[string]string{
				"icon":        area.Icon,
				"color":       area.Color,
				"description": area.Description,
			},
		})
		objects = append(objects, snapshotCategories(area.Name, "", 1, area.Categories)...)
	}

	return objects
}

func snapshotCategories(areaName, parentName string, depth int, rows []models.CategoryRow) []*reconcile.Object {
	var objects []*reconcile.Object

	for i, row := range rows {
		objects = append(objects, &reconcile.Object{
			Kind:       reconcile.KindCategory,
			Name:       row.Name,
			Token:      row.ID,
			AreaName:   areaName,
			ParentName: parentName,
			Depth:      depth,
			Position:   i + 1,
			Attributes: map[string]string{
				"description": row.Description,
			},
		})

		for j, attr := range row.Attributes {
			// Snapshots may omit attribute columns; normalize to the
			// same defaults an insert would get so unchanged rows do
			// not diff against the database.
			dataType := attr.DataType
			if dataType == "" {
				dataType = "text"
			}
			rules := attr.ValidationRules
			if rules == "" {
				rules = "{}"
			}
			objects = append(objects, &reconcile.Object{
				Kind:         reconcile.KindAttribute,
				Name:         attr.Name,
				Token:        attr.ID,
				AreaName:     areaName,
				ParentName:   row.Name,
				CategoryName: row.Name,
				Depth:        depth,
				Position:     j + 1,
				Attributes:   attributeBag(dataType, attr.Unit, attr.IsRequired, attr.DefaultValue, rules),
			})
		}

		objects = append(objects, snapshotCategories(areaName, row.Name, depth+1, row.Categories)...)
	}

	return objects
}

func attributeBag(dataType, unit string, isRequired bool, defaultValue, rules string) map[string]string {
	return map[string]string{
		"data_type":        dataType,
		"unit":             unit,
		"is_required":      strconv.FormatBool(isRequired),
		"default_value":    defaultValue,
		"validation_rules": rules,
	}
}
