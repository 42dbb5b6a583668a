// Package bootstrap wires configuration into the database, caches,
// storage and application services shared by the server and pimctl.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	catalogapp "github.com/pimify/backend/internal/application/catalog"
	exchangeapp "github.com/pimify/backend/internal/application/exchange"
	identityapp "github.com/pimify/backend/internal/application/identity"
	inventoryapp "github.com/pimify/backend/internal/application/inventory"
	partnerapp "github.com/pimify/backend/internal/application/partner"
	reportapp "github.com/pimify/backend/internal/application/report"
	exchangedomain "github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/pimify/backend/internal/infrastructure/cache"
	"github.com/pimify/backend/internal/infrastructure/config"
	"github.com/pimify/backend/internal/infrastructure/exchange"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/infrastructure/migration"
	"github.com/pimify/backend/internal/infrastructure/persistence"
	"github.com/pimify/backend/internal/infrastructure/storage"
	"github.com/pimify/backend/internal/infrastructure/telemetry"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewLogger builds the process logger from configuration
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Output:     cfg.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}

// OpenDatabase connects with a zap-backed gorm logger and, when telemetry
// is on, registers query spans and metrics.
func OpenDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}

	if cfg.Telemetry.Enabled {
		if _, err := telemetry.InstrumentDB(db.DB, cfg.Telemetry.DBSlowQueryThresh, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("instrument database: %w", err)
		}
	}

	log.Info("Database connected", zap.String("driver", db.Driver))
	return db, nil
}

// Migrate brings the schema up to date: SQL migrations on postgres,
// AutoMigrate on sqlite and mysql.
func Migrate(db *persistence.Database, log *zap.Logger) error {
	if db.Driver != config.DriverPostgres {
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// the migrator shares the pool, so it is not closed here
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// Container holds the repositories and services of one process
type Container struct {
	DB      *persistence.Database
	Storage catalogapp.ObjectStorageService
	Redis   *redis.Client
	Metrics *telemetry.Metrics

	Products         *catalogapp.ProductService
	Categories       *catalogapp.CategoryService
	Images           *catalogapp.ImageService
	ProductCSV       *catalogapp.ProductCSVService
	Suppliers        *partnerapp.SupplierService
	Warehouses       *partnerapp.WarehouseService
	ProductSuppliers *partnerapp.ProductSupplierService
	Stock            *inventoryapp.StockService
	Rates            *exchangeapp.RateService
	APIKeys          *identityapp.APIKeyService
	Organization     *identityapp.OrganizationService
	Auth             *identityapp.AuthService
	Dashboard        *reportapp.DashboardService

	log *zap.Logger
}

// NewContainer builds every service over db. Redis is optional: when it
// is disabled or unreachable rates are read from the database directly.
func NewContainer(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) (*Container, error) {
	base, err := valueobject.ParseCurrency(cfg.Exchange.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("exchange.base_currency: %w", err)
	}

	objects, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	c := &Container{DB: db, Storage: objects, Metrics: metrics, log: log}

	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	linkRepo := persistence.NewGormProductSupplierRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	apiKeyRepo := persistence.NewGormAPIKeyRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)

	c.Products = catalogapp.NewProductService(productRepo, categoryRepo, imageRepo, objects, log)
	c.Categories = catalogapp.NewCategoryService(categoryRepo, log)
	c.Images = catalogapp.NewImageService(productRepo, imageRepo, objects, log)
	c.ProductCSV = catalogapp.NewProductCSVService(productRepo, categoryRepo, log)

	c.Stock = inventoryapp.NewStockService(persistence.NewGormInventoryScope(db.DB), stockRepo, productRepo, warehouseRepo, log)
	c.Suppliers = partnerapp.NewSupplierService(supplierRepo, log)
	c.Warehouses = partnerapp.NewWarehouseService(warehouseRepo, c.Stock, log)
	c.ProductSuppliers = partnerapp.NewProductSupplierService(linkRepo, productRepo, supplierRepo, log)

	c.APIKeys = identityapp.NewAPIKeyService(apiKeyRepo, identity.NewKeyIssuer(cfg.APIKey.Prefix, cfg.APIKey.MaxAttempts), log)
	c.Organization = identityapp.NewOrganizationService(persistence.NewGormOrganizationRepository(db.DB), apiKeyRepo, log)
	c.Auth = identityapp.NewAuthService(persistence.NewGormStaffUserRepository(db.DB), log)

	var (
		source      exchangedomain.RateSource = rateRepo
		invalidator exchangeapp.RateInvalidator
	)
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, reading exchange rates from the database", zap.Error(err))
		} else {
			c.Redis = client
			rateCache := cache.NewRateCache(client, rateRepo, cfg.Exchange.CacheTTL, cache.WithLogger(log))
			source, invalidator = rateCache, rateCache
		}
	}
	c.Rates = exchangeapp.NewRateService(rateRepo, source, productRepo, base, log)
	if cfg.Exchange.AppID != "" {
		provider, err := exchange.NewOpenExchangeRatesClient(cfg.Exchange)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Rates.WithSync(provider, invalidator)
	}

	c.Dashboard = reportapp.NewDashboardService(persistence.NewGormDashboardReader(db.DB), c.Rates.Converter(), log)
	return c, nil
}

// Close releases the redis client. The database is owned by the caller.
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
