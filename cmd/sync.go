package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"descriptor-sync/core/config"
	"descriptor-sync/core/database"
	"descriptor-sync/core/logger"
	"descriptor-sync/core/setdiff"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/core/storage"
	"descriptor-sync/feature/ghosts"
	"descriptor-sync/feature/ghosts/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for sync ghosts command
	syncFile   string
	syncDryRun bool
	yesConfirm bool
)

// syncCmd is the parent command for all one-shot reconcile cycles.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single reconcile cycle",
}

// ghostsSyncCmd reconciles the ghosts table with a snapshot.
var ghostsSyncCmd = &cobra.Command{
	Use:   "ghosts",
	Short: "Reconcile ghosts with a snapshot",
	Long: `Reconcile the ghosts table with a snapshot read from storage (SNAPSHOT_OBJECT)
or from a local file.

Ghosts missing from the snapshot are deleted; this asks for confirmation.

Examples:
  # Preview the changes of the stored snapshot
  sync ghosts --dry-run

  # Apply a local snapshot without prompting
  sync ghosts --file ghosts.yaml --yes`,
	Args: cobra.NoArgs,
	RunE: runGhostsSync,
}

func init() {
	syncCmd.AddCommand(ghostsSyncCmd)

	ghostsSyncCmd.Flags().StringVarP(&syncFile, "file", "f", "", "Read the snapshot from a local file instead of storage")
	ghostsSyncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the planned changes without applying them")
	ghostsSyncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletions (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runGhostsSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var client storage.Client
	if syncFile == "" {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc, err := newGhostService(ctx, cfg, l, db, client, nil)
	if err != nil {
		return err
	}

	descriptors, err := loadGhostSnapshot(ctx, svc, syncFile)
	if err != nil {
		return err
	}

	plan := svc.Plan(descriptors)
	printSyncPlan(l, plan)

	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if plan.Removed.Len() > 0 && !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), yesConfirm) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	report, err := svc.Sync(ctx, descriptors)
	if err != nil {
		return fmt.Errorf("failed to sync ghosts: %w", err)
	}

	l.Info("Successfully synced ghosts",
		zap.Int("added", len(report.Added)),
		zap.Int("removed", len(report.Removed)),
		zap.Int("updated", len(report.Updated)),
		zap.Int("live", report.Live),
	)
	return nil
}

func loadGhostSnapshot(ctx context.Context, svc *ghosts.Service, file string) ([]models.Descriptor, error) {
	if file != "" {
		return snapshot.LoadFile[models.Descriptor](file)
	}

	descriptors, err := svc.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot from storage: %w", err)
	}
	return descriptors, nil
}

// printSyncPlan logs the plan and a sample of the ids it removes.
func printSyncPlan(l *zap.Logger, plan setdiff.Result[uuid.UUID]) {
	l.Info("Sync plan",
		zap.Int("add", plan.Added.Len()),
		zap.Int("remove", plan.Removed.Len()),
		zap.Int("keep", plan.Kept.Len()),
	)

	removed := sortedIDs(plan.Removed)
	maxShow := min(5, len(removed))
	for _, id := range removed[:maxShow] {
		l.Info("Ghost will be removed", zap.String("id", id.String()))
	}
	if len(removed) > maxShow {
		l.Info("Additional removals not shown", zap.Int("count", len(removed)-maxShow))
	}
}

// confirmDestructiveAction prompts on out and reads the answer from in, unless yes is set.
func confirmDestructiveAction(in io.Reader, out io.Writer, yes bool) bool {
	if yes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to confirm deletions: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
