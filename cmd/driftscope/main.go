package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"driftscope/adapters/postgres"
	"driftscope/app"
	"driftscope/domain/drift"
	"driftscope/internal"
	"driftscope/internal/config"
	"driftscope/internal/synth"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "driftscope",
		Short: "Data drift and data quality detection for tabular datasets",
	}

	rootCmd.AddCommand(newReportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var (
		rows               int
		features           int
		bins               int
		seed               int64
		baselineNoiseStd   float64
		productionNoiseStd float64
		outPath            string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a drift report over a synthetic baseline/production pair",
		Long: `Synthesizes a baseline feature table, derives a production variant by
adding gaussian noise, and prints the drift report as JSON.

Example: driftscope report --rows 2000 --features 8 --production-noise-std 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), reportParams{
				rows:               rows,
				features:           features,
				bins:               bins,
				seed:               seed,
				baselineNoiseStd:   baselineNoiseStd,
				productionNoiseStd: productionNoiseStd,
				outPath:            outPath,
			})
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 2000, "rows per synthetic table")
	cmd.Flags().IntVar(&features, "features", 8, "numeric feature columns")
	cmd.Flags().IntVar(&bins, "bins", 0, "PSI bin count (0 uses DRIFT_BINS)")
	cmd.Flags().Int64Var(&seed, "seed", 123, "base seed for synthetic data")
	cmd.Flags().Float64Var(&baselineNoiseStd, "baseline-noise-std", 0.0, "gaussian noise std applied to the baseline")
	cmd.Flags().Float64Var(&productionNoiseStd, "production-noise-std", 0.01, "gaussian noise std applied to the production variant")
	cmd.Flags().StringVar(&outPath, "out", "", "also write the JSON report to this path")

	return cmd
}

type reportParams struct {
	rows               int
	features           int
	bins               int
	seed               int64
	baselineNoiseStd   float64
	productionNoiseStd float64
	outPath            string
}

func runReport(ctx context.Context, params reportParams) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if params.bins > 0 {
		cfg.Drift.Bins = params.bins
	}
	logger := internal.NewDefaultLogger()

	// Base table plus two separately-seeded noise streams, so baseline and
	// production perturbations never share a random sequence
	base, err := synth.NewGenerator(uint64(params.seed)).Baseline(params.rows, params.features, cfg.Drift.LabelColumn)
	if err != nil {
		return err
	}
	baseline, err := synth.NewGenerator(uint64(params.seed)+1).GaussianVariant(base, params.baselineNoiseStd, cfg.Drift.LabelColumn)
	if err != nil {
		return err
	}
	production, err := synth.NewGenerator(uint64(params.seed)+2).GaussianVariant(base, params.productionNoiseStd, cfg.Drift.LabelColumn)
	if err != nil {
		return err
	}

	svc := app.NewDriftService(cfg.Drift, logger)
	report, err := svc.Compare(ctx, baseline, production)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(payload))

	if params.outPath != "" {
		if err := os.WriteFile(params.outPath, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("wrote report to %s", params.outPath)
	}

	if cfg.Storage.DatabaseURL != "" {
		repo, err := postgres.NewReportRepository(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		record := drift.NewReportRecord(*report, cfg.Drift.Bins)
		if err := repo.Save(ctx, record); err != nil {
			return err
		}
		logger.Info("persisted report %s", record.ID)
	}

	return nil
}
