package cmd

import (
	"context"
	"fmt"
	"os"

	"descriptor-sync/core/config"
	"descriptor-sync/core/logger"
	"descriptor-sync/feature/integrity"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the snapshot bucket and the database schema",
	Long:  `Checks that the snapshot object exists and decodes and that the database schema matches the live object models.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// snapshotCheckCmd represents the integrity snapshot command
var snapshotCheckCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Check the snapshot object (--fix creates a missing bucket)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCheckCmd represents the integrity schema command
var schemaCheckCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print the reports as JSON")
	snapshotCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket if it is missing")

	integrityCmd.AddCommand(snapshotCheckCmd)
	integrityCmd.AddCommand(schemaCheckCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, checkSnapshot, checkSchema bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	db, client := connect(cfg, logg)
	svc := integrity.NewService(client, cfg.Storage, cfg.Snapshot.Object, db, logg)

	reports := make(map[string]any)
	healthy := true

	if checkSnapshot {
		report, err := svc.CheckSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("snapshot check failed: %w", err)
		}

		if !report.BucketExists && fixFlag {
			if err := svc.FixBucket(ctx); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
			if report, err = svc.CheckSnapshot(ctx); err != nil {
				return fmt.Errorf("snapshot check failed: %w", err)
			}
		}

		reports["snapshot"] = report
		healthy = healthy && report.Status == "ok"
		if !jsonFlag {
			logg.Info("Snapshot check",
				zap.String("status", report.Status),
				zap.String("bucket", report.Bucket),
				zap.String("object", report.Object),
				zap.Int("descriptors", report.Descriptors),
				zap.Strings("duplicates", report.Duplicates),
				zap.Strings("errors", report.Errors),
			)
		}
	}

	if checkSchema {
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}

		reports["schema"] = report
		healthy = healthy && report.Matched
		if !jsonFlag {
			for table, tbl := range report.Tables {
				logg.Info("Schema check",
					zap.String("table", table),
					zap.String("status", tbl.Status),
					zap.Strings("missing_columns", tbl.MissingColumns),
					zap.Strings("type_mismatches", tbl.TypeMismatches),
				)
			}
			for _, e := range report.Errors {
				logg.Warn("Schema check error", zap.String("error", e))
			}
		}
	}

	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
