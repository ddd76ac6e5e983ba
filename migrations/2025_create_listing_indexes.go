package migrations

import "gorm.io/gorm"

// CreateListingIndexes adds the composite/expression indexes the public
// catalog query needs that AutoMigrate cannot express. Postgres only;
// the sqlite test databases skip it.
func CreateListingIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_published_created_at
		ON properties(published, created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_properties_published_price
		ON properties(published, price);

		-- JSON path filters (city/district) hit these expression indexes
		CREATE INDEX IF NOT EXISTS idx_properties_location_city
		ON properties((location->>'city'));

		CREATE INDEX IF NOT EXISTS idx_properties_location_district
		ON properties((location->>'district'));

		CREATE INDEX IF NOT EXISTS idx_property_images_property_order
		ON property_images(property_id, "order");
	`).Error
}
