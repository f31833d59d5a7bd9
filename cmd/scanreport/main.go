// Command scanreport evaluates every visible sensor in a scene once, without a
// window, and prints per-sensor range statistics as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"sensorsim/internal/logging"
	"sensorsim/internal/report"
	"sensorsim/internal/scan"
	"sensorsim/internal/scene"
	"sensorsim/internal/sensors"

	"go.uber.org/zap"
)

func main() {
	catalogPath := flag.String("catalog", "assets/sensors.yaml", "Sensor catalog (.json, .yaml)")
	scenePath := flag.String("scene", "assets/scene.json", "Scene file to evaluate")
	plotDir := flag.String("plot-dir", "", "Write one range-profile PNG per sensor into this directory")
	minDistance := flag.Float64("min-distance", float64(scan.DefaultMinDistance), "Drop returns closer than this")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	catalog := sensors.NewCatalog(logger)
	if n, err := catalog.LoadDefinitionsFile(*catalogPath); err != nil {
		if n == 0 {
			logger.Fatal("no sensor definitions", zap.String("path", *catalogPath), zap.Error(err))
		}
		logger.Warn("some sensor definitions skipped", zap.Int("loaded", n), zap.Error(err))
	}

	s := scene.New(catalog, logger)
	if err := s.LoadFile(*scenePath); err != nil {
		if !s.World.Initialized() {
			logger.Fatal("load scene", zap.String("path", *scenePath), zap.Error(err))
		}
		logger.Warn("scene loaded with errors", zap.Error(err))
	}

	collector := report.NewCollector()
	res := scan.New(collector, logger, scan.WithMinDistance(float32(*minDistance))).Evaluate(s)
	logger.Info("evaluated",
		zap.Int("sampled", len(res.Sampled)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("samples", res.Samples))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report.Summarize(collector.Samples())); err != nil {
		logger.Fatal("encode report", zap.Error(err))
	}

	if *plotDir != "" {
		paths, err := report.WriteProfiles(*plotDir, collector.Samples())
		if err != nil {
			logger.Fatal("write profiles", zap.Error(err))
		}
		for _, p := range paths {
			logger.Info("wrote profile", zap.String("path", p))
		}
	}
}
