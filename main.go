package main

import (
	"fmt"
	"log"
	"os"

	"campaign-tracker/config"
	"campaign-tracker/handlers"
	"campaign-tracker/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	zl, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}

	root := handlers.NewRootCommand(cfg, zl)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, handlers.ErrorStyle.Render("error: "+err.Error()))
		_ = zl.Sync()
		os.Exit(handlers.ExitCode(err))
	}
	_ = zl.Sync()
}
