package persistence

import (
	"context"
	"errors"

	"github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExchangeRateRepository implements exchange.RateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// GetRate returns the stored rate for cur or exchange.ErrRateNotFound
func (r *GormExchangeRateRepository) GetRate(ctx context.Context, cur valueobject.Currency) (exchange.Rate, error) {
	var model models.ExchangeRateModel
	err := r.db.WithContext(ctx).First(&model, "currency = ?", cur.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return exchange.Rate{}, exchange.ErrRateNotFound
	}
	if err != nil {
		return exchange.Rate{}, err
	}
	return model.ToDomain(), nil
}

// List returns every stored rate ordered by currency
func (r *GormExchangeRateRepository) List(ctx context.Context) ([]exchange.Rate, error) {
	var rows []models.ExchangeRateModel
	if err := r.db.WithContext(ctx).Order("currency ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]exchange.Rate, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ReplaceAll upserts every rate in one transaction
func (r *GormExchangeRateRepository) ReplaceAll(ctx context.Context, rates []exchange.Rate) error {
	if len(rates) == 0 {
		return nil
	}
	rows := make([]*models.ExchangeRateModel, len(rates))
	for i, rate := range rates {
		rows[i] = models.ExchangeRateModelFromDomain(rate)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "currency"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).CreateInBatches(rows, 100).Error
	})
}

// Ensure GormExchangeRateRepository implements RateRepository
var _ exchange.RateRepository = (*GormExchangeRateRepository)(nil)
