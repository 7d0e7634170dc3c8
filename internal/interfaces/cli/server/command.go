// Package server implements the command that runs the rights-ledger HTTP
// server.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	accessapp "iprights/internal/application/accesscontrol"
	accessUC "iprights/internal/application/accesscontrol/usecases"
	assetUC "iprights/internal/application/asset/usecases"
	licenseUC "iprights/internal/application/license/usecases"
	transferUC "iprights/internal/application/transfer/usecases"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/domain/shared/events"
	"iprights/internal/domain/transfer"
	"iprights/internal/infrastructure/auth"
	"iprights/internal/infrastructure/config"
	"iprights/internal/infrastructure/database"
	"iprights/internal/infrastructure/email"
	"iprights/internal/infrastructure/permission"
	"iprights/internal/infrastructure/pubsub"
	"iprights/internal/infrastructure/repository"
	httpRouter "iprights/internal/interfaces/http"
	"iprights/internal/interfaces/http/handlers"
	"iprights/internal/interfaces/http/middleware"
	"iprights/internal/shared/db"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/services/terms"
)

var env string

// fanoutRetention bounds the in-memory event log; it only feeds live
// subscribers, replay is served from the durable event store.
const fanoutRetention = 1024

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the rights-ledger HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	logger.Info("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	gdb := database.Get()
	tx := db.NewTransactionManager(gdb)

	assetRepo := repository.NewAssetRepository(gdb, log)
	transferRepo := repository.NewTransferRepository(gdb, log)
	licenseRepo := repository.NewLicenseRepository(gdb, log)
	accessRepo := repository.NewAccessControlRepository(gdb, log)
	eventStore := repository.NewEventStore(gdb, log)
	payments := repository.NewRoyaltyPaymentGateway(gdb, log)

	roleStore, err := permission.NewRoleStore(gdb, cfg.Ledger.CasbinModelPath, log)
	if err != nil {
		logger.Fatal("failed to initialize role store", "error", err)
	}

	// Events go to the durable store inside each use-case transaction; the
	// in-memory log fans them out to live subscribers only after the
	// transaction commits, so a rollback never leaks a ghost event. The log
	// is bounded because replay is served from the durable store.
	memLog := events.NewBoundedLog(fanoutRetention)
	recorder := events.NewComposite(eventStore, events.NewDeferred(memLog, db.AfterCommit))

	if cfg.Redis.Enabled {
		publisher, err := pubsub.NewEventPublisher(&cfg.Redis, log)
		if err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		defer publisher.Close()
		publisher.Attach(memLog)
		logger.Info("event publisher attached", "channel", cfg.Redis.Channel)
	}

	var notifier transfer.Notifier
	if cfg.Email.Enabled {
		notifier = email.NewTransferNotifier(&cfg.Email, log)
		logger.Info("transfer email notifications enabled")
	}

	accessService := accessapp.NewService(accessRepo, roleStore, recorder, log)

	trusted := make([]actor.ID, 0, len(cfg.Ledger.TrustedSubjectCallers))
	for _, c := range cfg.Ledger.TrustedSubjectCallers {
		trusted = append(trusted, actor.ID(c))
	}

	assetHandler := handlers.NewAssetHandler(
		assetUC.NewRegisterAssetUseCase(assetRepo, accessService, recorder, tx, log),
		assetUC.NewGetAssetUseCase(assetRepo, log),
		assetUC.NewAssetStatusUseCase(assetRepo, log),
		assetUC.NewDeactivateAssetUseCase(assetRepo, accessService, recorder, tx, log),
		assetUC.NewReactivateAssetUseCase(assetRepo, recorder, tx, log),
		assetUC.NewListOwnedAssetsUseCase(assetRepo, log),
		log,
	)

	transferHandler := handlers.NewTransferHandler(
		transferUC.NewRequestTransferUseCase(assetRepo, transferRepo, recorder, notifier, tx, log),
		transferUC.NewAcceptTransferUseCase(assetRepo, transferRepo, accessService, recorder, tx, log),
		transferUC.NewCancelTransferUseCase(transferRepo, recorder, tx, log),
		transferUC.NewListPendingTransfersUseCase(transferRepo, log),
		log,
	)

	termsService := terms.NewService()

	licenseHandler := handlers.NewLicenseHandler(
		licenseUC.NewCreateLicenseUseCase(assetRepo, licenseRepo, accessService, termsService, recorder, tx, log),
		licenseUC.NewTerminateLicenseUseCase(licenseRepo, recorder, tx, log),
		licenseUC.NewPayRoyaltyUseCase(licenseRepo, payments, recorder, tx, log),
		licenseUC.NewValidateLicenseUseCase(licenseRepo, log),
		licenseUC.NewListLicensesUseCase(licenseRepo, log),
		licenseUC.NewPreviewTermsUseCase(termsService, log),
		log,
	)

	accessHandler := handlers.NewAccessControlHandler(
		accessUC.NewGrantRoleUseCase(roleStore, recorder, tx, log),
		accessUC.NewRevokeRoleUseCase(roleStore, recorder, tx, log),
		accessUC.NewCheckRoleUseCase(roleStore, log),
		accessUC.NewRegisterSubjectUseCase(accessService, trusted, tx, log),
		accessUC.NewReassignControllerUseCase(accessRepo, accessService, tx, log),
		accessUC.NewRequestLogicalDeletionUseCase(accessRepo, accessService, recorder, tx, log),
		accessUC.NewRevertLogicalDeletionUseCase(accessRepo, accessService, recorder, tx, log),
		log,
	)

	eventsHandler := handlers.NewEventsHandler(eventStore, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	router := httpRouter.NewRouter(
		cfg,
		assetHandler,
		transferHandler,
		licenseHandler,
		accessHandler,
		eventsHandler,
		authMiddleware,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
