package cmd

import (
	"fmt"

	"object-resolver/feature/integrity"
	"object-resolver/feature/resolve"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

func newIntegrityService(needDB bool) (*integrity.Service, *zap.Logger, error) {
	rt, err := newRuntime()
	if err != nil {
		return nil, nil, err
	}

	prefixes, err := resolve.Prefixes(rt.cfg.Resolver.PatternList())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configured patterns: %w", err)
	}

	var db *gorm.DB
	if needDB {
		db = rt.connectDB()
	}
	return integrity.NewFeature(rt.client, rt.bucket(), prefixes, rt.logger, db, nil).Service(), rt.logger, nil
}

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the bucket and the manifest database",
	Long:  `Checks that every configured pattern prefix holds objects and that the manifest tables match their models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runStructureCheck(cmd, false); err != nil {
			return err
		}
		return runSchemaCheck()
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the prefixes of the configured patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStructureCheck(cmd, fixFlag)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the manifest database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaCheck()
	},
}

// manifestCheckCmd represents the integrity manifest command
var manifestCheckCmd = &cobra.Command{
	Use:   "manifest <id>",
	Short: "Check that every key of a stored manifest still exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService(true)
		if err != nil {
			return err
		}

		report, err := svc.CheckManifest(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(report.Missing) == 0 {
			logg.Info("All manifest objects present", zap.String("id", report.ID), zap.Int("total", report.Total))
			return nil
		}
		logg.Warn("Manifest objects missing",
			zap.String("id", report.ID),
			zap.Int("total", report.Total),
			zap.Strings("missing", report.Missing),
		)
		return nil
	},
}

// driftCmd represents the integrity drift command
var driftCmd = &cobra.Command{
	Use:   "drift <id>",
	Short: "Compare a stored manifest with a fresh resolution of its patterns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService(true)
		if err != nil {
			return err
		}

		report, err := svc.CheckDrift(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if report.Plan.InSync() {
			logg.Info("Manifest is in sync", zap.String("id", report.ID), zap.Int("keys", report.Plan.Summary.TotalKeys))
			return nil
		}
		for _, action := range report.Plan.Actions {
			logg.Warn("Drift", zap.String("action", string(action.Type)), zap.String("key", action.Key), zap.String("reason", action.Reason))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd, manifestCheckCmd, driftCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folder markers")
}

func runStructureCheck(cmd *cobra.Command, fix bool) error {
	svc, logg, err := newIntegrityService(false)
	if err != nil {
		return err
	}

	logg.Info("Checking pattern prefixes...")
	missing, err := svc.CheckStructure(cmd.Context())
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if len(missing) == 0 {
		logg.Info("Structure is intact.")
		return nil
	}
	logg.Warn("Empty prefixes detected", zap.Strings("missing", missing))

	if !fix {
		logg.Info("Run with --fix to create missing folders.")
		return nil
	}

	logg.Info("Fixing missing folders...")
	fixed, err := svc.FixStructure(cmd.Context(), missing)
	if err != nil {
		return fmt.Errorf("failed to fix structure: %w", err)
	}
	logg.Info("Structure fixed.", zap.Strings("fixed", fixed))
	return nil
}

func runSchemaCheck() error {
	svc, logg, err := newIntegrityService(true)
	if err != nil {
		return err
	}

	logg.Info("Checking manifest schema integrity...")
	report, err := svc.CheckSchema()
	if err != nil {
		logg.Error("Schema check failed", zap.Error(err))
		return nil
	}

	if report.Matched {
		logg.Info("Manifest schema matches expected definition.")
		return nil
	}

	logg.Warn("Manifest schema mismatches found")
	for table, tblReport := range report.Tables {
		if tblReport.Status == "ok" {
			continue
		}
		if len(tblReport.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
		}
		if len(tblReport.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
	return nil
}
