// Package main implements the capo CLI: read one prompt from stdin or an
// interactive prompt, compress it, and report the token, energy, and CO2
// savings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/capo/internal/carbon"
	"github.com/fyrsmithlabs/capo/internal/compressor"
	"github.com/fyrsmithlabs/capo/internal/config"
	"github.com/fyrsmithlabs/capo/internal/embeddings"
	"github.com/fyrsmithlabs/capo/internal/energy"
	"github.com/fyrsmithlabs/capo/internal/logging"
	"github.com/fyrsmithlabs/capo/internal/tokenizer"
	"github.com/fyrsmithlabs/capo/internal/version"
)

const defaultConfigPath = "config/capo.yaml"

func main() {
	// A local .env may carry ELECTRICITY_MAPS_API_KEY; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "capo",
	Short: "Compress an LLM prompt and report the energy and CO2 saved",
	Long: `capo reduces the token count of a natural-language prompt while
preserving its meaning, then estimates the inference energy and grid CO2
avoided by the smaller prompt.

The prompt is read from stdin when piped, otherwise entered interactively.
Configuration comes from config/capo.yaml (optional), CAPO_* environment
variables, and the filler rule document (required).`,
	Version:       version.String(),
	Args:          cobra.NoArgs,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func run(cmd *cobra.Command, _ []string) error {
	path := os.Getenv("CAPO_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Token accounting is the purpose of the tool; no tokenizer means no run.
	counter, err := tokenizer.New()
	if err != nil {
		return fmt.Errorf("token counting is required and unavailable: %w", err)
	}

	fillers, err := config.LoadFillers(cfg.Compression.FillersPath)
	if err != nil {
		return fmt.Errorf("cannot load filler rules (%s needs patterns/words/aggressive lists): %w",
			cfg.Compression.FillersPath, err)
	}

	prompt, err := readPrompt(cmd)
	if err != nil {
		return fmt.Errorf("reading prompt: %w", err)
	}

	enc := embeddings.NewEncoder(cfg.Embeddings, logger)
	defer func() { _ = enc.Close() }()

	pipeline := compressor.NewPipeline(
		compressor.NewFillerRules(*fillers, logger),
		enc,
		counter,
		compressor.Options{
			TargetReduction: cfg.Compression.TargetReduction,
			MinSimilarity:   cfg.Compression.MinSimilarity,
			SmartReduction:  cfg.Compression.SmartReduction,
		},
		logger,
	)

	meter := energy.StartMeter(cfg.Energy.CPUPowerWatts)
	result, err := pipeline.Run(cmd.Context(), prompt)
	if err != nil {
		return err
	}
	cost := meter.Stop()

	intensity := carbon.NewClient(cfg.Carbon.APIKey, cfg.Carbon.Timeout, logger).
		Intensity(cmd.Context(), cfg.Carbon.Zone)
	report := energy.BuildReport(result.TokensSaved, cost, intensity, cfg.Energy.WhPerToken)

	printReport(cmd.OutOrStdout(), result, cost, report)
	return nil
}
