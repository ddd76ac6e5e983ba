package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/models"
)

const (
	latestRatesKey = "currency:latest"
	latestRatesTTL = 2 * time.Hour
	ratesRetention = 30 // days of history kept
)

// CurrencyService persists scraped TRY exchange rates and serves the
// latest snapshot, Redis first, database as fallback.
type CurrencyService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCurrencyService(db *gorm.DB, rdb *redis.Client) *CurrencyService {
	return &CurrencyService{db: db, rdb: rdb}
}

// SaveRates stores one scrape run and refreshes the Redis snapshot.
// History older than the retention window is dropped in the same pass.
func (cs *CurrencyService) SaveRates(ctx context.Context, rates []models.CurrencyRate) error {
	if len(rates) == 0 {
		return nil
	}

	if err := cs.db.Where("created_at < ?", time.Now().AddDate(0, 0, -ratesRetention)).
		Delete(&models.CurrencyRate{}).Error; err != nil {
		return err
	}

	if err := cs.db.Create(&rates).Error; err != nil {
		return err
	}

	if cs.rdb != nil {
		if payload, err := json.Marshal(rates); err == nil {
			cs.rdb.Set(ctx, latestRatesKey, payload, latestRatesTTL)
		}
	}

	return nil
}

// LatestRates returns the most recent rate per currency code.
func (cs *CurrencyService) LatestRates(ctx context.Context) ([]models.CurrencyRate, error) {
	if cs.rdb != nil {
		if payload, err := cs.rdb.Get(ctx, latestRatesKey).Bytes(); err == nil {
			var cached []models.CurrencyRate
			if json.Unmarshal(payload, &cached) == nil && len(cached) > 0 {
				return cached, nil
			}
		}
	}

	var rates []models.CurrencyRate
	err := cs.db.Raw(`
		SELECT r.* FROM currency_rates r
		INNER JOIN (
			SELECT code, MAX(created_at) AS created_at
			FROM currency_rates GROUP BY code
		) last ON last.code = r.code AND last.created_at = r.created_at
		ORDER BY r.code
	`).Scan(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}
