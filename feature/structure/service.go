package structure

import (
	"context"
	"encoding/json"
	"fmt"

	"structure-manager/core/database"
	"structure-manager/core/reconcile"
	"structure-manager/feature/structure/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Archiver persists submitted snapshots before they are reconciled.
// Implemented by the snapshot feature; nil disables archiving.
type Archiver interface {
	Archive(ctx context.Context, data []byte) (string, error)
}

// Plan is the reviewable outcome of a reconciliation run.
type Plan struct {
	// Operations is the flat operation list in generation order. The
	// applier reorders it into dependency order on execution.
	Operations []reconcile.Operation `json:"operations"`
	// Summary aggregates the match result.
	Summary reconcile.Summary `json:"summary"`
	// NeedsReview lists updates whose confidence fell below the review
	// threshold. They are still applied; the list exists so a human can
	// audit borderline renames.
	NeedsReview []reconcile.Operation `json:"needs_review,omitempty"`
	// ArchiveObject is the storage key the submitted snapshot was
	// archived under, when archiving is enabled.
	ArchiveObject string `json:"archive_object,omitempty"`
}

// Service handles structure reconciliation operations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	archiver Archiver
	matcher  *reconcile.Matcher
	applier  *Applier
	cfg      reconcile.Config
}

// NewService creates a new structure service.
func NewService(db *gorm.DB, logger *zap.Logger, archiver Archiver, cfg reconcile.Config) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		archiver: archiver,
		matcher:  reconcile.NewMatcher(cfg.Threshold),
		applier:  NewApplier(db, logger),
		cfg:      cfg,
	}
}

// requiredColumns is what the loader and applier read and write per table.
var requiredColumns = map[string][]string{
	"areas":                 {"id", "name", "icon", "color", "description", "sort_order"},
	"categories":            {"id", "area_id", "parent_category_id", "name", "description", "sort_order"},
	"attribute_definitions": {"id", "category_id", "name", "data_type", "unit", "is_required", "default_value", "validation_rules", "sort_order"},
}

// CheckSchema verifies that the structure tables carry every column the
// feature depends on. It returns an error naming the first unusable table.
func (s *Service) CheckSchema() error {
	for table, columns := range requiredColumns {
		missing, err := database.VerifyColumns(s.db, table, columns)
		if err != nil {
			return fmt.Errorf("schema check failed for %s: %w", table, err)
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s is missing columns %v", table, missing)
		}
	}
	return nil
}

// Plan reconciles a submitted snapshot against the database and returns
// the operation plan without applying anything. The raw snapshot is
// archived first when an archiver is configured.
func (s *Service) Plan(ctx context.Context, data []byte) (*Plan, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	var archiveObject string
	if s.archiver != nil {
		obj, err := s.archiver.Archive(ctx, data)
		if err != nil {
			// Archiving is an audit trail, not a gate.
			s.logger.Warn("Snapshot archiving failed", zap.Error(err))
		} else {
			archiveObject = obj
		}
	}

	current, err := LoadCurrent(ctx, s.db)
	if err != nil {
		return nil, err
	}

	result, err := s.matcher.Match(current, SnapshotObjects(&snap))
	if err != nil {
		return nil, err
	}

	ops := reconcile.GenerateOperations(result)

	var review []reconcile.Operation
	for _, op := range ops {
		if op.Op == reconcile.OpUpdate && op.Confidence > 0 && op.Confidence < s.cfg.ReviewThreshold {
			review = append(review, op)
		}
	}

	summary := result.Summary()
	s.logger.Info("Reconciliation planned",
		zap.Int("matches", summary.TotalMatches),
		zap.Int("renames", summary.Renames),
		zap.Int("insertions", summary.Insertions),
		zap.Int("deletions", summary.Deletions),
		zap.Int("needs_review", len(review)),
	)

	return &Plan{
		Operations:    ops,
		Summary:       summary,
		NeedsReview:   review,
		ArchiveObject: archiveObject,
	}, nil
}

// Apply plans a submitted snapshot and executes the resulting
// operations. Deletions are only executed when confirmed.
func (s *Service) Apply(ctx context.Context, data []byte, confirmed bool) (*Plan, *ApplyReport, error) {
	plan, err := s.Plan(ctx, data)
	if err != nil {
		return nil, nil, err
	}

	report, err := s.applier.Apply(ctx, plan.Operations, confirmed)
	if err != nil {
		return plan, nil, err
	}

	return plan, report, nil
}

// ApplyPlan executes a previously computed operation list. Used by the
// CLI, which plans first and asks for confirmation in between.
func (s *Service) ApplyPlan(ctx context.Context, ops []reconcile.Operation, confirmed bool) (*ApplyReport, error) {
	return s.applier.Apply(ctx, ops, confirmed)
}

// Export dumps the current database structure as a snapshot document.
// Feeding the export straight back into Plan yields an empty plan.
func (s *Service) Export(ctx context.Context) (*models.Snapshot, error) {
	var areas []models.Area
	if err := s.db.WithContext(ctx).Order("sort_order").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to load areas: %w", err)
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("sort_order").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var attributes []models.AttributeDefinition
	if err := s.db.WithContext(ctx).Order("sort_order").Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("failed to load attribute definitions: %w", err)
	}

	attrsByCategory := make(map[string][]models.AttributeRow)
	for _, attr := range attributes {
		attrsByCategory[attr.CategoryID] = append(attrsByCategory[attr.CategoryID], models.AttributeRow{
			ID:              attr.ID,
			Name:            attr.Name,
			DataType:        attr.DataType,
			Unit:            attr.Unit,
			IsRequired:      attr.IsRequired,
			DefaultValue:    attr.DefaultValue,
			ValidationRules: attr.ValidationRules,
		})
	}

	childrenByParent := make(map[string][]models.Category)
	rootsByArea := make(map[string][]models.Category)
	for _, cat := range categories {
		if cat.ParentCategoryID != nil {
			childrenByParent[*cat.ParentCategoryID] = append(childrenByParent[*cat.ParentCategoryID], cat)
		} else {
			rootsByArea[cat.AreaID] = append(rootsByArea[cat.AreaID], cat)
		}
	}

	var buildCategory func(cat models.Category) models.CategoryRow
	buildCategory = func(cat models.Category) models.CategoryRow {
		row := models.CategoryRow{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Attributes:  attrsByCategory[cat.ID],
		}
		for _, child := range childrenByParent[cat.ID] {
			row.Categories = append(row.Categories, buildCategory(child))
		}
		return row
	}

	snap := &models.Snapshot{}
	for _, area := range areas {
		row := models.AreaRow{
			ID:          area.ID,
			Name:        area.Name,
			Icon:        area.Icon,
			Color:       area.Color,
			Description: area.Description,
		}
		for _, cat := range rootsByArea[area.ID] {
			row.Categories = append(row.Categories, buildCategory(cat))
		}
		snap.Areas = append(snap.Areas, row)
	}

	return snap, nil
}
