package database

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/models"
)

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func jsonFrom(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

// SeedAdmin makes sure the back office has one admin account.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := models.User{
		Name:         "Admin",
		Email:        "admin@landmark.com",
		PasswordHash: hashPassword("Admin123!"),
		Role:         models.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedInsuranceProducts fills the catalog the sigorta pages list, once.
func SeedInsuranceProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.InsuranceProduct{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	products := []models.InsuranceProduct{
		{Name: "Kasko", Slug: "kasko", Description: "Aracınız için tam kapsamlı kasko sigortası.", IsActive: true},
		{Name: "Trafik Sigortası", Slug: "trafik-sigortasi", Description: "Zorunlu trafik sigortası.", IsActive: true},
		{Name: "Konut Sigortası", Slug: "konut-sigortasi", Description: "Eviniz ve eşyalarınız güvence altında.", IsActive: true},
		{Name: "DASK", Slug: "dask", Description: "Zorunlu deprem sigortası.", IsActive: true},
		{Name: "Sağlık Sigortası", Slug: "saglik-sigortasi", Description: "Özel sağlık sigortası çözümleri.", IsActive: true},
		{Name: "Seyahat Sigortası", Slug: "seyahat-sigortasi", Description: "Yurt içi ve yurt dışı seyahat güvencesi.", IsActive: true},
	}
	return db.Create(&products).Error
}

// SeedSampleProperty creates one published listing so the catalog is not
// empty on a fresh install.
func SeedSampleProperty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return err
	}

	agent := models.User{
		Name:         "Mert Yılmaz",
		Email:        "mert@landmark.local",
		PasswordHash: admin.PasswordHash,
		Role:         models.RoleAgent,
	}
	if err := db.Create(&agent).Error; err != nil {
		return err
	}

	bath := 2
	gross := 135
	net := 110
	property := models.Property{
		Title:       "ParkVadi Sitesi – Peyzaj Manzaralı 3+1",
		Slug:        "parkvadi-peyzaj-manzarali-3-plus-1",
		Description: "Site içi geniş yeşil alanlar, spor sahası ve yürüyüş yolları.",
		Type:        models.PropertyTypeDaire,
		Status:      models.PropertyStatusSatilik,
		Price:       6950000,
		Currency:    models.CurrencyTRY,
		Rooms:       "3+1",
		Bath:        &bath,
		GrossM2:     &gross,
		NetM2:       &net,
		Location: jsonFrom(map[string]any{
			"city":         "Ankara",
			"district":     "Etimesgut",
			"neighborhood": "Bağlıca",
			"address":      "Bağlıca",
			"lat":          39.93,
			"lng":          32.85,
		}),
		Features:  jsonFrom([]string{"Kapalı otopark", "Asansör", "Güvenlik", "Merkezi ısıtma", "Oyun parkı", "Spor sahası"}),
		AgentID:   agent.ID,
		Published: true,
		Images: []models.PropertyImage{
			{URL: "/assets/projects/landmark/garden-1.webp", Alt: "Site içi peyzaj", Order: 0},
			{URL: "/assets/projects/landmark/garden-2.webp", Alt: "Yeşil alanlar", Order: 1},
		},
	}
	return db.Create(&property).Error
}

// Seed runs every idempotent seeder in dependency order.
func Seed(db *gorm.DB) error {
	if err := SeedAdmin(db); err != nil {
		return err
	}
	if err := SeedInsuranceProducts(db); err != nil {
		return err
	}
	return SeedSampleProperty(db)
}
