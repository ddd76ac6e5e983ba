package models

import "time"

// CurrencyRate is one scraped TRY exchange rate snapshot.
type CurrencyRate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"type:VARCHAR(10);not null;index"`
	Buy       float64   `json:"buy" gorm:"type:decimal(12,4);not null"`
	Sell      float64   `json:"sell" gorm:"type:decimal(12,4);not null"`
	Source    string    `json:"source" gorm:"type:VARCHAR(255)"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (CurrencyRate) TableName() string {
	return "currency_rates"
}
