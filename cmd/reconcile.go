package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"structure-manager/core/config"
	"structure-manager/core/database"
	"structure-manager/core/logger"
	"structure-manager/core/reconcile"
	"structure-manager/core/storage"
	"structure-manager/feature/snapshot"
	"structure-manager/feature/structure"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile structure command
	snapshotFile  string
	applyChanges  bool
	dryRunPlan    bool
	yesConfirm    bool
	skipArchiving bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a snapshot against the tracking structure",
	Long: `Reconcile a submitted snapshot against the database structure.
Detects renames, field updates, insertions, and deletions; deletions
always require confirmation before being applied.`,
}

// structureReconcileCmd plans (and optionally applies) a structure reconciliation.
var structureReconcileCmd = &cobra.Command{
	Use:   "structure",
	Short: "Reconcile a structure snapshot (report + optionally apply)",
	Long: `Reconcile a snapshot file against the areas, categories and
attribute definitions in the database.

Always prints the operation plan. With --apply, executes it; deletions
need interactive confirmation or --yes.

Examples:
  # Plan only (default)
  reconcile structure --file snapshot.json

  # Apply with interactive confirmation for deletions
  reconcile structure --file snapshot.json --apply

  # Apply non-interactively
  reconcile structure --file snapshot.json --apply --yes

  # Force a plan-only run even with --apply
  reconcile structure --file snapshot.json --apply --dry-run`,
	RunE: runStructureReconcile,
}

func init() {
	reconcileCmd.AddCommand(structureReconcileCmd)

	structureReconcileCmd.Flags().StringVar(&snapshotFile, "file", "", "Path to the snapshot JSON file (required)")
	structureReconcileCmd.Flags().BoolVar(&applyChanges, "apply", false, "Apply the plan (default is plan only)")
	structureReconcileCmd.Flags().BoolVar(&dryRunPlan, "dry-run", false, "Force plan-only (no mutations even with --apply)")
	structureReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletions (non-interactive)")
	structureReconcileCmd.Flags().BoolVar(&skipArchiving, "no-archive", false, "Skip archiving the snapshot to object storage")
	_ = structureReconcileCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(reconcileCmd)
}

func runStructureReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	data, err := os.ReadFile(snapshotFile)
	if err != nil {
		return fmt.Errorf("failed to read snapshot file: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// The archive is optional for CLI runs; storage may be unreachable.
	var archiver structure.Archiver
	if !skipArchiving {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Storage unavailable, snapshot will not be archived", zap.Error(err))
		} else {
			archiver = snapshot.NewService(client, cfg.Storage.Bucket, l)
		}
	}

	svc := structure.NewService(db, l, archiver, cfg.Reconcile)

	// Verify the tables before planning; a truncated schema would turn
	// every row into a spurious diff.
	if err := svc.CheckSchema(); err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}

	l.Info("Planning structure reconciliation", zap.String("file", snapshotFile))
	plan, err := svc.Plan(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printPlanReport(l, plan)

	if !applyChanges {
		l.Info("Plan only. Use --apply to execute the operations.")
		return nil
	}

	if dryRunPlan {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if len(plan.Operations) == 0 {
		l.Info("Nothing to apply.")
		return nil
	}

	confirmed := true
	if hasDeletes(plan.Operations) {
		confirmed = confirmDestructiveAction()
		if !confirmed {
			l.Warn("Deletions not confirmed; they will be skipped.")
		}
	}

	l.Info("Applying operations...")
	report, err := svc.ApplyPlan(ctx, plan.Operations, confirmed)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Apply finished",
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Int("deleted", report.Deleted),
		zap.Int("skipped", report.Skipped),
		zap.Int("failures", len(report.Failures)),
	)
	for _, failure := range report.Failures {
		l.Error("Operation failed",
			zap.String("op", string(failure.Op.Op)),
			zap.String("table", failure.Op.Table),
			zap.String("name", failure.Op.Name),
			zap.String("reason", failure.Reason),
		)
	}

	return nil
}

// printPlanReport prints a formatted plan report using the logger.
func printPlanReport(l *zap.Logger, plan *structure.Plan) {
	s := plan.Summary

	l.Info("Reconciliation plan",
		zap.Int("matches", s.TotalMatches),
		zap.Int("exact", s.Exact),
		zap.Int("renames", s.Renames),
		zap.Int("updates", s.Updates),
		zap.Int("insertions", s.Insertions),
		zap.Int("deletions", s.Deletions),
		zap.Float64("avg_confidence", s.AvgConfidence),
	)
	if plan.ArchiveObject != "" {
		l.Info("Snapshot archived", zap.String("object", plan.ArchiveObject))
	}

	// Show a sample of the operations (max 10 for the logger).
	maxShow := 10
	if len(plan.Operations) < maxShow {
		maxShow = len(plan.Operations)
	}
	for i := 0; i < maxShow; i++ {
		op := plan.Operations[i]
		fields := []zap.Field{
			zap.String("op", string(op.Op)),
			zap.String("table", op.Table),
		}
		switch {
		case op.NewName != "":
			fields = append(fields,
				zap.String("old_name", op.OldName),
				zap.String("new_name", op.NewName),
				zap.Float64("confidence", op.Confidence),
			)
		case op.Name != "":
			fields = append(fields, zap.String("name", op.Name))
		default:
			fields = append(fields, zap.String("id", op.ID))
		}
		l.Info("Planned operation", fields...)
	}
	if len(plan.Operations) > maxShow {
		l.Info("Additional operations not shown", zap.Int("count", len(plan.Operations)-maxShow))
	}

	for _, op := range plan.NeedsReview {
		l.Warn("Low-confidence rename, review before applying",
			zap.String("old_name", op.OldName),
			zap.String("new_name", op.NewName),
			zap.Float64("confidence", op.Confidence),
		)
	}
}

// hasDeletes reports whether the plan contains destructive operations.
func hasDeletes(ops []reconcile.Operation) bool {
	for _, op := range ops {
		if op.Op == reconcile.OpDelete {
			return true
		}
	}
	return false
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm deletions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
