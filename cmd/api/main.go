package main

import (
	"fmt"
	"os"

	"increa_invoicing/internal/adapter/http/routes"
	"increa_invoicing/internal/config"
	"increa_invoicing/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

// @title           Invoicing API
// @version         1.0
// @description     Project invoicing, billing reports and Mercado Pago settlement.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.LogConfig()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := routes.Run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
