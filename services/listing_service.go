package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/models"
)

// ListingService executes the catalog queries. Public reads are gated on
// published = true; admin reads are not.
type ListingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

// withPublicAssociations preloads ordered images, full tags and the agent
// contact projection (phone included, the detail page shows it).
func withPublicAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).
		Preload("Agent", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		}).
		Preload("Tags")
}

// withAdminAssociations is the back-office projection: no agent phone.
func withAdminAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).
		Preload("Agent", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Tags")
}

// ListPublished runs the count + page fetch pair for the public catalog.
// Zero matches is a valid result: empty slice, total 0, no error.
func (s *ListingService) ListPublished(f ListingFilters, pg Pagination, sort Sort) ([]models.Property, int64, error) {
	base := ApplyListingFilters(s.db.Model(&models.Property{}), f, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []models.Property{}
	q := ApplyListingFilters(s.db.Model(&models.Property{}), f, true)
	err := withPublicAssociations(q).
		Order(sort.OrderClause()).
		Offset(pg.Offset).
		Limit(pg.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindBySlug is the public detail lookup; unpublished listings are
// indistinguishable from absent ones (gorm.ErrRecordNotFound).
func (s *ListingService) FindBySlug(slug string) (*models.Property, error) {
	var p models.Property
	err := withPublicAssociations(s.db).
		Where("slug = ? AND published = ?", slug, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID is the admin lookup: by id, no publication gate.
func (s *ListingService) FindByID(id string) (*models.Property, error) {
	var p models.Property
	err := withAdminAssociations(s.db).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchAdmin is the back-office list: free-text OR over title,
// description and the location city/district, newest first.
func (s *ListingService) SearchAdmin(search string, page, take int) ([]models.Property, int64, error) {
	base := s.db.Model(&models.Property{})
	if search != "" {
		base = applyAdminSearch(base, search)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := s.db.Model(&models.Property{})
	if search != "" {
		q = applyAdminSearch(q, search)
	}

	items := []models.Property{}
	err := withAdminAssociations(q).
		Order("created_at desc").
		Offset((page - 1) * take).
		Limit(take).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func applyAdminSearch(db *gorm.DB, search string) *gorm.DB {
	pat := "%" + strings.ToLower(search) + "%"
	return db.Where(
		"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location->>'city') LIKE ? OR LOWER(location->>'district') LIKE ?)",
		pat, pat, pat, pat,
	)
}
