// Package migrate implements the schema migration and admin seeding command.
package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"iprights/internal/domain/accesscontrol"
	"iprights/internal/domain/shared/actor"
	"iprights/internal/infrastructure/config"
	"iprights/internal/infrastructure/database"
	"iprights/internal/infrastructure/permission"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Create or update the ledger schema and seed the configured administrators.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newSeedAdminsCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run schema migration",
		Long:  `Create or update all ledger tables.`,
		RunE:  runUp,
	}
}

func newSeedAdminsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admins",
		Short: "Seed configured administrators",
		Long:  `Grant the data-controller role to every actor listed under ledger.administrators.`,
		RunE:  runSeedAdmins,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running schema migration", "environment", env)

	err = database.Get().AutoMigrate(
		&models.AssetModel{},
		&models.TransferModel{},
		&models.LicenseModel{},
		&models.AssetControlModel{},
		&models.SubjectAssetModel{},
		&models.EventModel{},
		&models.RoyaltyPaymentModel{},
	)
	if err != nil {
		log.Errorw("schema migration failed", "error", err)
		return fmt.Errorf("schema migration failed: %w", err)
	}

	log.Infow("schema migration completed")
	return nil
}

func runSeedAdmins(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if len(cfg.Ledger.Administrators) == 0 {
		log.Infow("no administrators configured, nothing to seed")
		return nil
	}

	roleStore, err := permission.NewRoleStore(database.Get(), cfg.Ledger.CasbinModelPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize role store: %w", err)
	}

	ctx := context.Background()
	for _, admin := range cfg.Ledger.Administrators {
		if err := roleStore.Grant(ctx, actor.ID(admin), accesscontrol.RoleController); err != nil {
			log.Errorw("failed to seed administrator", "actor", admin, "error", err)
			return fmt.Errorf("failed to seed administrator %s: %w", admin, err)
		}
		log.Infow("administrator seeded", "actor", admin)
	}

	return nil
}
