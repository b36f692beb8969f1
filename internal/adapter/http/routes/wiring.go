package routes

import (
	"context"
	"fmt"

	"increa_invoicing/internal/adapter/persistence/repository"
	"increa_invoicing/internal/config"
	"increa_invoicing/internal/infrastructure/database"
	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/infrastructure/metrics"
	"increa_invoicing/internal/infrastructure/payments"
	"increa_invoicing/internal/usecase"
	"increa_invoicing/internal/usecase/interfaces"
)

// BuildDependencies opens the configured storage backend and wires the use
// cases on top of it. The returned func releases the backend.
func BuildDependencies(ctx context.Context, cfg *config.Config) (Dependencies, func(), error) {
	log := logger.WithComponent("wiring")
	noop := func() {}

	var (
		projectRepo interfaces.IProjectRepository
		paymentRepo interfaces.IPaymentRepository
		closeFn     = noop
	)

	switch cfg.DataBackend {
	case config.BackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return Dependencies{}, noop, fmt.Errorf("connect dynamodb: %w", err)
		}
		projectRepo = repository.NewProjectDynamoRepository(ddb, cfg.ProjectsTable)
		paymentRepo = repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable)
	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return Dependencies{}, noop, fmt.Errorf("open sqlite: %w", err)
		}
		projectRepo = repository.NewProjectSQLiteRepository(db)
		paymentRepo = repository.NewPaymentSQLiteRepository(db)
		closeFn = func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("closing sqlite database")
			}
		}
	default:
		projectRepo = repository.NewProjectMemoryRepository()
		paymentRepo = repository.NewPaymentMemoryRepository()
	}
	log.Info().Str("backend", cfg.DataBackend).Msg("storage backend ready")

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	var gateway interfaces.IPaymentGateway
	if !cfg.PaymentGatewayMock {
		mp, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Warn().Err(err).Msg("mercado pago gateway not configured")
		} else {
			gateway = mp
		}
	}

	settlementCfg := usecase.SettlementConfig{
		MockMode:        cfg.PaymentGatewayMock,
		SandboxToken:    cfg.SandboxToken(),
		TestPayerEmail:  cfg.TestPayerEmail,
		TestPayerUserID: cfg.TestPayerUserID,
	}

	deps := Dependencies{
		Projects:    usecase.NewProjectUseCase(projectRepo, metricsOrNil(m)),
		Reports:     usecase.NewReportUseCase(projectRepo, metricsOrNil(m)),
		Settlements: usecase.NewSettlementUseCase(paymentRepo, projectRepo, gateway, metricsOrNil(m), settlementCfg),
		Metrics:     m,
	}
	return deps, closeFn, nil
}

// metricsOrNil keeps a nil *Metrics from becoming a non-nil interface.
func metricsOrNil(m *metrics.Metrics) interfaces.IBillingMetrics {
	if m == nil {
		return nil
	}
	return m
}
