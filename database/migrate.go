package database

import (
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/migrations"
	"github.com/nejmigmc-soft/landmarkweb/models"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Tag{},
		&models.InsuranceProduct{},
		&models.InsuranceQuote{},
		&models.CurrencyRate{},
	); err != nil {
		return err
	}

	return migrations.CreateListingIndexes(db)
}
