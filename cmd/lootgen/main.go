package main

import (
	"context"
	"flag"
	"log"

	"scraploot/internal/app"
)

func main() {
	var cfg app.Config
	flag.StringVar(&cfg.SnapshotPath, "snapshot", "", "path to a JSON snapshot document")
	flag.StringVar(&cfg.LuaPath, "lua", "", "path to a Lua data-stage file")
	flag.StringVar(&cfg.OutPath, "out", "", "output path (defaults to -snapshot for JSON input)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "emit per-record diagnostics")
	flag.Parse()

	if err := app.Run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
