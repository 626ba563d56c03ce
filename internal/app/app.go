package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"scraploot/internal/derive"
	"scraploot/internal/prototype"
	"scraploot/logging"
	loggingSinks "scraploot/logging/sinks"
)

// Config selects the snapshot source and destination for one derivation run.
type Config struct {
	// SnapshotPath is a JSON snapshot document; LuaPath a Lua data-stage
	// file. Exactly one must be set.
	SnapshotPath string
	LuaPath      string
	// OutPath receives the mutated snapshot. Defaults to SnapshotPath for
	// JSON input; required for Lua input.
	OutPath string
	// Verbose forces debug diagnostics on regardless of LOOTGEN_VERBOSE.
	Verbose bool
}

// Run loads the snapshot, executes the derivation pass once, and writes the
// result. Configuration errors and unreadable snapshots are fatal; everything
// else is a per-record skip inside the pass.
func Run(ctx context.Context, cfg Config) error {
	if (cfg.SnapshotPath == "") == (cfg.LuaPath == "") {
		return fmt.Errorf("app: exactly one of -snapshot and -lua must be set")
	}

	settings, err := derive.SettingsFromEnv()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		settings.Verbose = true
	}

	logCfg := logging.DefaultConfig()
	if settings.Verbose {
		logCfg.MinimumSeverity = logging.SeverityDebug
	}
	sinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsoleSink(os.Stdout, logCfg.Console)},
	}
	logCfg.JSON.FilePath = os.Getenv("LOOTGEN_LOG_JSON")
	var jsonLog *os.File
	if path := logCfg.JSON.FilePath; path != "" {
		jsonLog, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("app: open json log: %w", err)
		}
		sinks = append(sinks, logging.NamedSink{Name: "json", Sink: loggingSinks.NewJSON(jsonLog)})
	}
	router, err := logging.NewRouter(nil, logCfg, sinks)
	if err != nil {
		return fmt.Errorf("app: construct logging router: %w", err)
	}
	defer func() {
		router.Close(ctx)
		if jsonLog != nil {
			jsonLog.Close()
		}
	}()

	snap, outPath, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}

	if _, err := derive.Run(ctx, snap, settings, router); err != nil {
		return err
	}

	data, err := prototype.EncodeJSON(snap)
	if err != nil {
		return err
	}
	return writeSnapshot(outPath, data)
}

func loadSnapshot(cfg Config) (*prototype.Snapshot, string, error) {
	if cfg.LuaPath != "" {
		if cfg.OutPath == "" {
			return nil, "", fmt.Errorf("app: -out is required with -lua input")
		}
		snap, err := prototype.LoadLuaFile(cfg.LuaPath)
		if err != nil {
			return nil, "", err
		}
		return snap, cfg.OutPath, nil
	}

	data, err := os.ReadFile(cfg.SnapshotPath)
	if err != nil {
		return nil, "", fmt.Errorf("app: read snapshot: %w", err)
	}
	snap, err := prototype.DecodeJSON(data)
	if err != nil {
		return nil, "", err
	}
	outPath := cfg.OutPath
	if outPath == "" {
		outPath = cfg.SnapshotPath
	}
	return snap, outPath, nil
}

func writeSnapshot(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("app: create output dir: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("app: write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("app: replace snapshot: %w", err)
	}
	return nil
}
