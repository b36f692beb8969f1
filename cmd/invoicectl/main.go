package main

import (
	"fmt"
	"os"

	"increa_invoicing/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg := logger.DefaultConfig()
	cfg.Output = "stderr"
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	} else {
		cfg.Level = "warn"
	}
	if err := logger.Setup(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command execution failed")
		os.Exit(1)
	}
}
