// Package main provides the normalizer command: it acquires the job listing
// dataset, normalizes it into relational tables and writes them out.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"jobnorm/internal/acquire"
	"jobnorm/internal/config"
	"jobnorm/internal/loader"
	"jobnorm/internal/logger"
	"jobnorm/internal/normalizer"
)

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitRecordErrors = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	initConfig := flag.String("init-config", "", "Write the default config to this path and exit")
	flag.Parse()

	log := logger.NewLogger("info")

	if *initConfig != "" {
		if err := config.DefaultConfig().SaveConfig(*initConfig); err != nil {
			log.Error(fmt.Sprintf("❌ %v", err))
			return exitFailure
		}

		log.Info("✅ Default config written", "path", *initConfig)

		return exitOK
	}

	// Credentials may live in a local .env; its absence is fine.
	_ = godotenv.Load()

	cfg := config.DefaultConfig()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Error(fmt.Sprintf("❌ Error loading config: %v", err))
			return exitFailure
		}

		cfg = loaded
	}

	log.SetLevel(cfg.Logging.Level)

	log, runID := log.ForRun()

	log.Info("🚀 Starting job listing normalizer", "config", cfg.String())

	startTime := time.Now()

	// 1. Acquisition
	// --------------
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.GetTimeout())
	defer cancel()

	client := acquire.NewClient(cfg.Dataset, log)
	if _, err := client.Ensure(ctx, cfg.Input.Path); err != nil {
		reportAcquisitionError(log, cfg.Dataset.CredentialsPath, err)
		return exitFailure
	}

	// 2. Loading
	// ----------
	records, err := loader.LoadCSV(cfg.Input.Path)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Loading failed: %v", err))
		return exitFailure
	}

	log.Info("records loaded", "path", cfg.Input.Path, "records", len(records))

	// 3. Normalization
	// ----------------
	processor := normalizer.NewProcessor(cfg.Rules, log)

	ds, err := processor.Process(records)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Normalization failed: %v", err))
		return exitFailure
	}

	// 4. Output
	// ---------
	written, err := writeOutputs(cfg, ds, runID, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Writing output failed: %v", err))
		return exitFailure
	}

	// 5. Report
	// ---------
	printSummary(os.Stdout, ds, written, time.Since(startTime))

	if len(ds.Errors) > 0 {
		log.Warn("⚠️  some records were rejected", "errors", len(ds.Errors))
		return exitRecordErrors
	}

	log.Info("✨ Pipeline complete")

	return exitOK
}

func reportAcquisitionError(log *logger.Logger, credentialsPath string, err error) {
	switch {
	case errors.Is(err, acquire.ErrMissingCredential):
		log.Error(fmt.Sprintf("❌ %v", err))
		fmt.Fprintf(os.Stderr, "Create an API token on the dataset provider's account page and save it as %s,\n"+
			"or export %s and %s (a .env file in the working directory also works).\n",
			credentialsPath, acquire.EnvUsername, acquire.EnvKey)
	case errors.Is(err, acquire.ErrAcquisitionFailure):
		log.Error(fmt.Sprintf("❌ %v", err))
		fmt.Fprintln(os.Stderr, "Download the dataset manually and place the CSV at the configured input.path.")
	default:
		log.Error(fmt.Sprintf("❌ Acquisition failed: %v", err))
	}
}
