package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/services"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

// ListingController serves the public catalog: filtered list and detail
// by slug. Only published listings are ever visible here.
type ListingController struct {
	listings *services.ListingService
}

func NewListingController(listings *services.ListingService) *ListingController {
	return &ListingController{listings: listings}
}

// GET /properties
// Query: ?q=&type=&status=&city=&district=&rooms=&minPrice=&maxPrice=&min=&max=
//        &page=&pageSize=&skip=&take=&sort=field:direction
func (lc *ListingController) List(c *gin.Context) {
	query := c.Request.URL.Query()

	filters, err := services.NormalizeListingFilters(query)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	pg, err := services.ResolvePagination(query)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	sort := services.ResolveSort(query.Get("sort"))

	items, total, err := lc.listings.ListPublished(filters, pg, sort)
	if err != nil {
		utils.LogError(err, "public property list")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// GET /properties/:slug
func (lc *ListingController) GetBySlug(c *gin.Context) {
	property, err := lc.listings.FindBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		utils.LogError(err, "public property detail")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// respondQueryError maps validation errors to 400 with the field name;
// anything else in the normalize path is a server fault.
func respondQueryError(c *gin.Context, err error) {
	var ve *utils.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
