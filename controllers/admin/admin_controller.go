package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nejmigmc-soft/landmarkweb/models"
	"github.com/nejmigmc-soft/landmarkweb/services"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

// AdminController is the back office: listing CRUD, image attach and
// pre-signed uploads. Reads here are never gated on published.
type AdminController struct {
	db       *gorm.DB
	listings *services.ListingService
	uploads  *services.UploadService
}

// NewAdminController wires the admin surface. uploads may be nil when
// object storage is not configured; the sign endpoint then returns 503.
func NewAdminController(db *gorm.DB, listings *services.ListingService, uploads *services.UploadService) *AdminController {
	return &AdminController{db: db, listings: listings, uploads: uploads}
}

type locationPayload struct {
	City         string   `json:"city" binding:"required"`
	District     string   `json:"district" binding:"required"`
	Neighborhood *string  `json:"neighborhood,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

type createPropertyPayload struct {
	Title       string          `json:"title" binding:"required"`
	Slug        string          `json:"slug" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Status      string          `json:"status" binding:"required"`
	Price       float64         `json:"price" binding:"required,gt=0"`
	Currency    string          `json:"currency" binding:"required"`
	Rooms       string          `json:"rooms" binding:"required"`
	Bath        *int            `json:"bath"`
	GrossM2     *int            `json:"grossM2"`
	NetM2       *int            `json:"netM2"`
	Floor       *int            `json:"floor"`
	TotalFloor  *int            `json:"totalFloor"`
	Heating     *string         `json:"heating"`
	Age         *int            `json:"age"`
	Furnished   *bool           `json:"furnished"`
	Location    locationPayload `json:"location" binding:"required"`
	Features    []string        `json:"features"`
	VideoURL    *string         `json:"videoUrl"`
	AgentID     string          `json:"agentId" binding:"required"`
	Published   *bool           `json:"published"`
	Tags        []string        `json:"tags"`
}

// updatePropertyPayload is the partial PATCH body: nil means "leave as
// is". A present tags array fully replaces the associations.
type updatePropertyPayload struct {
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Type        *string          `json:"type"`
	Status      *string          `json:"status"`
	Price       *float64         `json:"price"`
	Currency    *string          `json:"currency"`
	Rooms       *string          `json:"rooms"`
	Bath        *int             `json:"bath"`
	GrossM2     *int             `json:"grossM2"`
	NetM2       *int             `json:"netM2"`
	Floor       *int             `json:"floor"`
	TotalFloor  *int             `json:"totalFloor"`
	Heating     *string          `json:"heating"`
	Age         *int             `json:"age"`
	Furnished   *bool            `json:"furnished"`
	Location    *locationPayload `json:"location"`
	Features    *[]string        `json:"features"`
	VideoURL    *string          `json:"videoUrl"`
	AgentID     *string          `json:"agentId"`
	Published   *bool            `json:"published"`
	Tags        *[]string        `json:"tags"`
}

type createImagePayload struct {
	URL     string  `json:"url" binding:"required"`
	Alt     *string `json:"alt"`
	Order   *int    `json:"order"`
	IsCover bool    `json:"isCover"`
}

type signUploadPayload struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// GET /admin/properties
// Query: ?search=&page=1&take=12
func (ac *AdminController) GetProperties(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	take, err := queryInt(c, "take", 12)
	if err != nil || take < 1 || take > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid take"})
		return
	}

	items, total, err := ac.listings.SearchAdmin(c.Query("search"), page, take)
	if err != nil {
		utils.LogError(err, "admin property list")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"total":      total,
		"page":       page,
		"take":       take,
		"totalPages": int(math.Ceil(float64(total) / float64(take))),
	})
}

// GET /admin/properties/:id
func (ac *AdminController) GetProperty(c *gin.Context) {
	property, err := ac.listings.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "İlan bulunamadı"})
			return
		}
		utils.LogError(err, "admin property detail")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// POST /admin/properties
func (ac *AdminController) CreateProperty(c *gin.Context) {
	var req createPropertyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if msg := validateEnums(req.Type, req.Status, req.Currency); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	property := models.Property{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Price:       req.Price,
		Currency:    req.Currency,
		Rooms:       req.Rooms,
		Bath:        req.Bath,
		GrossM2:     req.GrossM2,
		NetM2:       req.NetM2,
		Floor:       req.Floor,
		TotalFloor:  req.TotalFloor,
		Heating:     req.Heating,
		Age:         req.Age,
		Furnished:   req.Furnished,
		Location:    mustJSON(req.Location),
		VideoURL:    req.VideoURL,
		AgentID:     req.AgentID,
		Published:   published,
	}
	if req.Features != nil {
		property.Features = mustJSON(req.Features)
	}

	if err := ac.db.Create(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
			return
		}
		utils.LogError(err, "admin property create")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create property"})
		return
	}

	if len(req.Tags) > 0 {
		if err := ac.replaceTags(&property, req.Tags); err != nil {
			utils.LogError(err, "admin property create tags")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach tags"})
			return
		}
	}

	created, err := ac.listings.FindByID(property.ID)
	if err != nil {
		utils.LogError(err, "admin property reload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load created property"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// PATCH /admin/properties/:id
func (ac *AdminController) UpdateProperty(c *gin.Context) {
	var req updatePropertyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var property models.Property
	if err := ac.db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "İlan bulunamadı"})
			return
		}
		utils.LogError(err, "admin property lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	typeVal := property.Type
	if req.Type != nil {
		typeVal = *req.Type
	}
	statusVal := property.Status
	if req.Status != nil {
		statusVal = *req.Status
	}
	currencyVal := property.Currency
	if req.Currency != nil {
		currencyVal = *req.Currency
	}
	if msg := validateEnums(typeVal, statusVal, currencyVal); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	applyUpdate(&property, &req)

	if err := ac.db.Save(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
			return
		}
		utils.LogError(err, "admin property update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update property"})
		return
	}

	// Full replace, not a diff: two concurrent tag edits race and the
	// last write wins.
	if req.Tags != nil {
		if err := ac.replaceTags(&property, *req.Tags); err != nil {
			utils.LogError(err, "admin property update tags")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tags"})
			return
		}
	}

	updated, err := ac.listings.FindByID(property.ID)
	if err != nil {
		utils.LogError(err, "admin property reload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load updated property"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DELETE /admin/properties/:id
// Hard delete; images and tag links go with it.
func (ac *AdminController) DeleteProperty(c *gin.Context) {
	var property models.Property
	if err := ac.db.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "İlan bulunamadı"})
			return
		}
		utils.LogError(err, "admin property lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	if err := ac.db.Select(clause.Associations).Unscoped().Delete(&property).Error; err != nil {
		utils.LogError(err, "admin property delete")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "İlan başarıyla silindi"})
}

// POST /admin/properties/:id/images
// A cover insert shifts every existing image up by one and takes order 0.
// The shift is unconditional and never renormalized; gaps are harmless
// because images are read back sorted.
func (ac *AdminController) AddPropertyImage(c *gin.Context) {
	var req createImagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	propertyID := c.Param("id")
	var property models.Property
	if err := ac.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "İlan bulunamadı"})
			return
		}
		utils.LogError(err, "admin property lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	}
	if req.IsCover {
		if err := ac.db.Model(&models.PropertyImage{}).
			Where("property_id = ?", propertyID).
			UpdateColumn("order", gorm.Expr("\"order\" + 1")).Error; err != nil {
			utils.LogError(err, "admin image order shift")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach image"})
			return
		}
		order = 0
	}

	alt := fmt.Sprintf("image-%d", time.Now().UnixMilli())
	if req.Alt != nil && *req.Alt != "" {
		alt = *req.Alt
	}

	image := models.PropertyImage{
		URL:        req.URL,
		Alt:        alt,
		Order:      order,
		PropertyID: propertyID,
	}
	if err := ac.db.Create(&image).Error; err != nil {
		utils.LogError(err, "admin image create")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

// POST /admin/uploads/sign
func (ac *AdminController) SignUpload(c *gin.Context) {
	var req signUploadPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if ac.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload storage is not configured"})
		return
	}

	signed, err := ac.uploads.SignPut(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		utils.LogError(err, "upload sign")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign upload"})
		return
	}

	c.JSON(http.StatusOK, signed)
}

// replaceTags upserts tags by their derived slug and swaps the listing's
// associations wholesale.
func (ac *AdminController) replaceTags(property *models.Property, names []string) error {
	var tags []models.Tag
	seen := map[string]bool{}
	for _, name := range names {
		slug := utils.Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		var tag models.Tag
		if err := ac.db.Where("slug = ?", slug).
			Attrs(models.Tag{Name: name, Slug: slug}).
			FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	return ac.db.Model(property).Association("Tags").Replace(tags)
}

func applyUpdate(p *models.Property, req *updatePropertyPayload) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Rooms != nil {
		p.Rooms = *req.Rooms
	}
	if req.Bath != nil {
		p.Bath = req.Bath
	}
	if req.GrossM2 != nil {
		p.GrossM2 = req.GrossM2
	}
	if req.NetM2 != nil {
		p.NetM2 = req.NetM2
	}
	if req.Floor != nil {
		p.Floor = req.Floor
	}
	if req.TotalFloor != nil {
		p.TotalFloor = req.TotalFloor
	}
	if req.Heating != nil {
		p.Heating = req.Heating
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Furnished != nil {
		p.Furnished = req.Furnished
	}
	if req.Location != nil {
		p.Location = mustJSON(*req.Location)
	}
	if req.Features != nil {
		p.Features = mustJSON(*req.Features)
	}
	if req.VideoURL != nil {
		p.VideoURL = req.VideoURL
	}
	if req.AgentID != nil {
		p.AgentID = *req.AgentID
	}
	if req.Published != nil {
		p.Published = *req.Published
	}
}

func validateEnums(typ, status, currency string) string {
	if !models.ValidPropertyType(typ) {
		return "unknown property type"
	}
	if !models.ValidPropertyStatus(status) {
		return "unknown property status"
	}
	if !models.ValidCurrency(currency) {
		return "unknown currency"
	}
	return ""
}

func mustJSON(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
