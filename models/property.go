package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property types (ilan tipi)
const (
	PropertyTypeDaire  = "DAIRE"
	PropertyTypeVilla  = "VILLA"
	PropertyTypeOfis   = "OFIS"
	PropertyTypeDukkan = "DUKKAN"
	PropertyTypeArsa   = "ARSA"
	PropertyTypeYazlik = "YAZLIK"
)

// Property statuses
const (
	PropertyStatusSatilik = "SATILIK"
	PropertyStatusKiralik = "KIRALIK"
)

// Currencies
const (
	CurrencyTRY = "TRY"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

var propertyTypes = map[string]bool{
	PropertyTypeDaire:  true,
	PropertyTypeVilla:  true,
	PropertyTypeOfis:   true,
	PropertyTypeDukkan: true,
	PropertyTypeArsa:   true,
	PropertyTypeYazlik: true,
}

var propertyStatuses = map[string]bool{
	PropertyStatusSatilik: true,
	PropertyStatusKiralik: true,
}

var currencies = map[string]bool{
	CurrencyTRY: true,
	CurrencyUSD: true,
	CurrencyEUR: true,
}

func ValidPropertyType(s string) bool   { return propertyTypes[s] }
func ValidPropertyStatus(s string) bool { return propertyStatuses[s] }
func ValidCurrency(s string) bool       { return currencies[s] }

// Property is a real-estate listing. Location is an opaque jsonb blob
// ({city, district, neighborhood?, address?, lat?, lng?}) queried by
// path equality on its sub-fields.
type Property struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string          `json:"title" gorm:"type:VARCHAR(255);not null"`
	Slug        string          `json:"slug" gorm:"type:VARCHAR(255);uniqueIndex;not null"`
	Description string          `json:"description" gorm:"type:TEXT;not null"`
	Type        string          `json:"type" gorm:"type:VARCHAR(20);not null;index"`
	Status      string          `json:"status" gorm:"type:VARCHAR(20);not null;index"`
	Price       float64         `json:"price" gorm:"type:decimal(14,2);not null"`
	Currency    string          `json:"currency" gorm:"type:VARCHAR(3);not null;default:'TRY'"`
	Rooms       string          `json:"rooms" gorm:"type:VARCHAR(20)"`
	Bath        *int            `json:"bath,omitempty"`
	GrossM2     *int            `json:"grossM2,omitempty"`
	NetM2       *int            `json:"netM2,omitempty"`
	Floor       *int            `json:"floor,omitempty"`
	TotalFloor  *int            `json:"totalFloor,omitempty"`
	Heating     *string         `json:"heating,omitempty" gorm:"type:VARCHAR(50)"`
	Age         *int            `json:"age,omitempty"`
	Furnished   *bool           `json:"furnished,omitempty"`
	Location    datatypes.JSON  `json:"location" gorm:"type:jsonb"`
	Features    datatypes.JSON  `json:"features,omitempty" gorm:"type:jsonb"`
	VideoURL    *string         `json:"videoUrl,omitempty" gorm:"column:video_url;type:TEXT"`
	AgentID     string          `json:"agentId" gorm:"type:uuid;index;not null"`
	Agent       *User           `json:"agent,omitempty" gorm:"foreignKey:AgentID"`
	Published   bool            `json:"published" gorm:"default:false;index"`
	Images      []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Tags        []Tag           `json:"tags" gorm:"many2many:property_tags;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PropertyImage is one gallery image; order 0 is the cover by convention.
type PropertyImage struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	URL        string    `json:"url" gorm:"type:TEXT;not null"`
	Alt        string    `json:"alt" gorm:"type:VARCHAR(255)"`
	Order      int       `json:"order" gorm:"column:order;not null;default:0"`
	PropertyID string    `json:"propertyId" gorm:"type:uuid;index;not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (i *PropertyImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// Tag slug is derived from the name (see utils.Slugify) and unique.
type Tag struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:VARCHAR(100);not null"`
	Slug      string    `json:"slug" gorm:"type:VARCHAR(100);uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
