package structure

import (
	"context"
	"fmt"

	"structure-manager/core/reconcile"
	"structure-manager/core/utils"
	"structure-manager/feature/structure/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpFailure records one operation that could not be applied.
type OpFailure struct {
	Op     reconcile.Operation `json:"op"`
	Reason string              `json:"reason"`
}

// ApplyReport summarizes the outcome of applying an operation list.
// Failures do not abort the run; every operation is attempted and the
// report carries whatever went wrong.
type ApplyReport struct {
	Inserted int         `json:"inserted"`
	Updated  int         `json:"updated"`
	Deleted  int         `json:"deleted"`
	Skipped  int         `json:"skipped"`
	Failures []OpFailure `json:"failures,omitempty"`
}

// Applier executes reconciliation operations against the database.
type Applier struct {
	db     *gorm.DB
	logger *zap.Logger

	// mintID is swappable so tests can assert on deterministic row IDs.
	mintID func() string
}

// NewApplier creates a new applier.
func NewApplier(db *gorm.DB, logger *zap.Logger) *Applier {
	return &Applier{db: db, logger: logger, mintID: uuid.NewString}
}

// Apply executes the operation list in dependency order:
// INSERT areas, categories, attributes; then UPDATE; then DELETE
// attributes, categories, areas. Inserted children resolve their
// inserted parents by name, so parents must land first. Deletions are
// only executed when confirmed; otherwise they are counted as skipped.
func (a *Applier) Apply(ctx context.Context, ops []reconcile.Operation, confirmed bool) (*ApplyReport, error) {
	report := &ApplyReport{}

	resolver, err := a.newResolver(ctx)
	if err != nil {
		return nil, err
	}

	insertOrder := []reconcile.Kind{reconcile.KindArea, reconcile.KindCategory, reconcile.KindAttribute}
	for _, kind := range insertOrder {
		for _, op := range ops {
			if op.Op == reconcile.OpInsert && op.Kind == kind {
				a.applyInsert(ctx, op, resolver, report)
			}
		}
	}

	for _, op := range ops {
		if op.Op == reconcile.OpUpdate {
			a.applyUpdate(ctx, op, report)
		}
	}

	deleteOrder := []reconcile.Kind{reconcile.KindAttribute, reconcile.KindCategory, reconcile.KindArea}
	for _, kind := range deleteOrder {
		for _, op := range ops {
			if op.Op != reconcile.OpDelete || op.Kind != kind {
				continue
			}
			if !confirmed {
				a.logger.Warn("Skipping unconfirmed delete",
					zap.String("table", op.Table),
					zap.String("name", op.Name),
				)
				report.Skipped++
				continue
			}
			a.applyDelete(ctx, op, report)
		}
	}

	return report, nil
}

// resolver maps hierarchy names to row IDs, covering both preexisting
// rows and rows inserted earlier in the same run.
type resolver struct {
	areaIDByName     map[string]string
	categoryIDByName map[string]string // key: area name + "/" + category name
}

func (a *Applier) newResolver(ctx context.Context) (*resolver, error) {
	r := &resolver{
		areaIDByName:     make(map[string]string),
		categoryIDByName: make(map[string]string),
	}

	var areas []models.Area
	if err := a.db.WithContext(ctx).Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to load areas for parent resolution: %w", err)
	}
	for _, area := range areas {
		r.areaIDByName[area.Name] = area.ID
	}

	areaNameByID := make(map[string]string, len(areas))
	for _, area := range areas {
		areaNameByID[area.ID] = area.Name
	}

	var categories []models.Category
	if err := a.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories for parent resolution: %w", err)
	}
	for _, cat := range categories {
		r.categoryIDByName[areaNameByID[cat.AreaID]+"/"+cat.Name] = cat.ID
	}

	return r, nil
}

func (a *Applier) applyInsert(ctx context.Context, op reconcile.Operation, r *resolver, report *ApplyReport) {
	id := op.ID
	if id == "" {
		id = a.mintID()
	}

	var err error
	switch op.Kind {
	case reconcile.KindArea:
		err = a.db.WithContext(ctx).Create(&models.Area{
			ID:          id,
			Name:        op.Name,
			Icon:        op.Fields["icon"],
			Color:       op.Fields["color"],
			Description: op.Fields["description"],
			SortOrder:   op.SortOrder,
		}).Error
		if err == nil {
			r.areaIDByName[op.Name] = id
		}

	case reconcile.KindCategory:
		areaID, ok := r.areaIDByName[op.AreaName]
		if !ok {
			report.Failures = append(report.Failures, OpFailure{Op: op, Reason: fmt.Sprintf("unknown area %q", op.AreaName)})
			return
		}
		var parentID *string
		if op.ParentName != "" {
			pid, ok := r.categoryIDByName[op.AreaName+"/"+op.ParentName]
			if !ok {
				report.Failures = append(report.Failures, OpFailure{Op: op, Reason: fmt.Sprintf("unknown parent category %q", op.ParentName)})
				return
			}
			parentID = &pid
		}
		err = a.db.WithContext(ctx).Create(&models.Category{
			ID:               id,
			AreaID:           areaID,
			ParentCategoryID: parentID,
			Name:             op.Name,
			Description:      op.Fields["description"],
			SortOrder:        op.SortOrder,
		}).Error
		if err == nil {
			r.categoryIDByName[op.AreaName+"/"+op.Name] = id
		}

	case reconcile.KindAttribute:
		categoryID, ok := r.categoryIDByName[op.AreaName+"/"+op.CategoryName]
		if !ok {
			report.Failures = append(report.Failures, OpFailure{Op: op, Reason: fmt.Sprintf("unknown category %q", op.CategoryName)})
			return
		}
		err = a.db.WithContext(ctx).Create(&models.AttributeDefinition{
			ID:              id,
			CategoryID:      categoryID,
			Name:            op.Name,
			DataType:        op.Fields["data_type"],
			Unit:            op.Fields["unit"],
			IsRequired:      utils.ToBool(op.Fields["is_required"]),
			DefaultValue:    op.Fields["default_value"],
			ValidationRules: op.Fields["validation_rules"],
			SortOrder:       op.SortOrder,
		}).Error
	}

	if err != nil {
		report.Failures = append(report.Failures, OpFailure{Op: op, Reason: err.Error()})
		return
	}
	report.Inserted++
	a.logger.Info("Inserted row",
		zap.String("table", op.Table),
		zap.String("name", op.Name),
		zap.String("id", id),
	)
}

func (a *Applier) applyUpdate(ctx context.Context, op reconcile.Operation, report *ApplyReport) {
	values := make(map[string]any, len(op.Changes)+1)
	for field, change := range op.Changes {
		if field == "is_required" {
			values[field] = utils.ToBool(change.New)
			continue
		}
		values[field] = change.New
	}
	if op.NewName != "" {
		values["name"] = op.NewName
	}
	if len(values) == 0 {
		return
	}

	result := a.db.WithContext(ctx).Table(op.Table).Where("id = ?", op.ID).Updates(values)
	if result.Error != nil {
		report.Failures = append(report.Failures, OpFailure{Op: op, Reason: result.Error.Error()})
		return
	}
	report.Updated++
	if op.NewName != "" {
		a.logger.Info("Renamed row",
			zap.String("table", op.Table),
			zap.String("old_name", op.OldName),
			zap.String("new_name", op.NewName),
			zap.Float64("confidence", op.Confidence),
		)
	}
}

func (a *Applier) applyDelete(ctx context.Context, op reconcile.Operation, report *ApplyReport) {
	result := a.db.WithContext(ctx).Table(op.Table).Where("id = ?", op.ID).Delete(nil)
	if result.Error != nil {
		report.Failures = append(report.Failures, OpFailure{Op: op, Reason: result.Error.Error()})
		return
	}
	report.Deleted++
	a.logger.Info("Deleted row",
		zap.String("table", op.Table),
		zap.String("name", op.Name),
	)
}
