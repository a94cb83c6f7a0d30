package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rkedia/drivepull/internal/adapter/filesystem"
	"github.com/rkedia/drivepull/internal/adapter/gdown"
	"github.com/rkedia/drivepull/internal/adapter/sqlite"
	"github.com/rkedia/drivepull/internal/config"
	"github.com/rkedia/drivepull/internal/logger"
	"github.com/rkedia/drivepull/internal/port"
	"github.com/rkedia/drivepull/internal/reporter"
	"github.com/rkedia/drivepull/internal/service/runner"
	"github.com/rkedia/drivepull/internal/util/backoff"
)

const version = "0.3.1"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "drivepull",
		Short:         "Bulk-download polling station photos from Google Drive links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Download every photo referenced by the photo-links batch files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the drivepull version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("drivepull", version)
		},
	}

	rootCmd.AddCommand(runCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}
	defer logger.Sync()

	log := logger.GetZapLogger()
	log.Info("starting drivepull",
		zap.String("version", version),
		zap.String("input_dir", cfg.Input.Dir),
		zap.String("output_dir", cfg.Output.Dir),
		zap.Int("workers", cfg.Download.Workers))

	fs, err := filesystem.NewManager(cfg.Output.Dir)
	if err != nil {
		return err
	}

	var manifest port.Manifest
	if cfg.Manifest.Enabled {
		dbPath := cfg.Manifest.Path
		if dbPath == "" {
			dbPath = filepath.Join(cfg.Output.Dir, "manifest.db")
		}
		store, err := sqlite.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open manifest: %w", err)
		}
		defer store.Close()
		manifest = store
	}

	transport := gdown.New(cfg.Download.GdownPath, cfg.Download.GetFetchTimeout())

	rep := reporter.New(os.Stdout)
	defer rep.Close()

	r := runner.New(runner.Config{
		InputDir:    cfg.Input.Dir,
		BatchSuffix: cfg.Input.BatchSuffix,
		Workers:     cfg.Download.Workers,
		MaxRetries:  cfg.Download.MaxRetries,
		AutoInstall: cfg.Download.AutoInstall,
		Backoff: backoff.Policy{
			MinStartDelay: cfg.Download.GetMinStartDelay(),
			MaxStartDelay: cfg.Download.GetMaxStartDelay(),
			Unit:          backoff.Default().Unit,
		},
	}, transport, fs, manifest, rep, log)

	total, err := r.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("run complete",
		zap.Int("downloaded", total.Downloaded),
		zap.Int("skipped", total.Skipped),
		zap.Int("errors", total.Errors))
	return nil
}
