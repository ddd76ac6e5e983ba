package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nejmigmc-soft/landmarkweb/models"
)

func TestLatestRatesPicksNewestPerCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewCurrencyService(db, nil)
	ctx := context.Background()

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, db.Create(&[]models.CurrencyRate{
		{Code: "USD", Buy: 33.50, Sell: 33.60, Source: "test", CreatedAt: old},
		{Code: "EUR", Buy: 36.10, Sell: 36.20, Source: "test", CreatedAt: old},
	}).Error)

	require.NoError(t, svc.SaveRates(ctx, []models.CurrencyRate{
		{Code: "USD", Buy: 34.12, Sell: 34.23, Source: "test"},
		{Code: "EUR", Buy: 36.89, Sell: 37.01, Source: "test"},
	}))

	rates, err := svc.LatestRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)

	byCode := map[string]models.CurrencyRate{}
	for _, r := range rates {
		byCode[r.Code] = r
	}
	assert.Equal(t, 34.12, byCode["USD"].Buy)
	assert.Equal(t, 36.89, byCode["EUR"].Buy)
}

func TestSaveRatesPurgesOldHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCurrencyService(db, nil)

	require.NoError(t, db.Create(&models.CurrencyRate{
		Code: "USD", Buy: 30, Sell: 30.1, Source: "test",
		CreatedAt: time.Now().AddDate(0, 0, -40),
	}).Error)

	require.NoError(t, svc.SaveRates(context.Background(), []models.CurrencyRate{
		{Code: "USD", Buy: 34.12, Sell: 34.23, Source: "test"},
	}))

	var count int64
	require.NoError(t, db.Model(&models.CurrencyRate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveRatesNoRowsIsANoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewCurrencyService(db, nil)

	require.NoError(t, svc.SaveRates(context.Background(), nil))

	var count int64
	require.NoError(t, db.Model(&models.CurrencyRate{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
