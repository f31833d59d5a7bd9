package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"sensorsim/internal/config"
	"sensorsim/internal/game"
	"sensorsim/internal/logging"
	"sensorsim/internal/scene"
	"sensorsim/internal/sensors"
	"sensorsim/internal/store"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to the YAML config file")
	catalogPath := flag.String("catalog", "", "Sensor catalog (.json, .yaml); overrides catalog_path")
	scenePath := flag.String("scene", "", "Scene file; overrides scene_path")
	storePath := flag.String("store", "", "Snapshot database; overrides store_path, \"off\" disables it")
	logLevel := flag.String("log-level", "", "Log level; overrides log_level")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			_ = os.Chdir(execDir)
		}
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	override(&cfg.CatalogPath, *catalogPath)
	override(&cfg.ScenePath, *scenePath)
	override(&cfg.StorePath, *storePath)
	override(&cfg.LogLevel, *logLevel)

	logger, err := logging.New(cfg.GetLogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("sensorsim failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	catalog := sensors.NewCatalog(logger)
	n, err := catalog.LoadDefinitionsFile(cfg.GetCatalogPath())
	if err != nil {
		// Partial catalogs still load; an empty one leaves every sensor skipped.
		logger.Warn("sensor catalog", zap.Int("loaded", n), zap.Error(err))
	}

	s := scene.New(catalog, logger)
	if err := s.Initialize(cfg.GetBounds()); err != nil {
		return err
	}
	if err := s.LoadFile(cfg.GetScenePath()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("scene file", zap.String("path", cfg.GetScenePath()), zap.Error(err))
		}
	}

	var st *store.SceneStore
	if cfg.GetStorePath() != "off" {
		st, err = store.Open(cfg.GetStorePath())
		if err != nil {
			logger.Warn("snapshot store disabled", zap.Error(err))
			st = nil
		} else {
			defer st.Close()
		}
	}

	game.New(cfg, s, st, logger).Run()
	return nil
}

func override(dst **string, v string) {
	if v != "" {
		*dst = &v
	}
}
