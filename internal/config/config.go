// Package config loads the service settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"increa_invoicing/internal/infrastructure/logger"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
)

type Config struct {
	// HTTP server
	Port string

	// Backend selection
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// DynamoDB
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	ProjectsTable      string
	PaymentsTable      string

	// Mercado Pago
	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	TestPayerEmail         string
	TestPayerUserID        string

	// Observability
	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DataBackend: strings.ToLower(getEnv("DATA_BACKEND", BackendMemory)),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/invoicing.db"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   getEnv("DYNAMODB_ENDPOINT", ""),
		ProjectsTable:      getEnv("PROJECTS_TABLE", "projects"),
		PaymentsTable:      getEnv("PAYMENTS_TABLE", "payments"),

		MercadoPagoAccessToken: strings.TrimSpace(getEnv("MERCADOPAGO_ACCESS_TOKEN", "")),
		PaymentGatewayMock:     getEnvBool("PAYMENT_GATEWAY_MOCK", false) || getEnvBool("MERCADOPAGO_MOCK", false),
		TestPayerEmail:         strings.TrimSpace(getEnv("MERCADOPAGO_TEST_PAYER_EMAIL", "")),
		TestPayerUserID:        strings.TrimSpace(getEnv("MERCADOPAGO_TEST_PAYER_USER_ID", "")),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// SandboxToken reports whether the Mercado Pago token is a test credential.
func (c *Config) SandboxToken() bool {
	return strings.HasPrefix(c.MercadoPagoAccessToken, "TEST-")
}

func (c *Config) LogConfig() logger.LogConfig {
	lc := logger.DefaultConfig()
	lc.Level = c.LogLevel
	lc.Format = c.LogFormat
	return lc
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	backends := []string{BackendMemory, BackendDynamoDB, BackendSQLite}
	if !slices.Contains(backends, c.DataBackend) {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, backends))
	}

	switch c.DataBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				problems = append(problems, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	case BackendDynamoDB:
		if c.AWSRegion == "" {
			problems = append(problems, "AWS region is required when using dynamodb backend")
		}
		if c.ProjectsTable == "" || c.PaymentsTable == "" {
			problems = append(problems, "PROJECTS_TABLE and PAYMENTS_TABLE cannot be empty when using dynamodb backend")
		}
	}

	levels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !slices.Contains(levels, strings.ToLower(c.LogLevel)) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, levels))
	}
	if f := strings.ToLower(c.LogFormat); f != "json" && f != "console" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be json or console", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
