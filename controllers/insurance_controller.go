package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/models"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

type InsuranceController struct {
	db *gorm.DB
}

func NewInsuranceController(db *gorm.DB) *InsuranceController {
	return &InsuranceController{db: db}
}

type quoteRequest struct {
	FullName    string                 `json:"fullName" binding:"required"`
	Email       string                 `json:"email" binding:"required,email"`
	Phone       string                 `json:"phone" binding:"required"`
	City        *string                `json:"city"`
	ProductSlug string                 `json:"productSlug" binding:"required"`
	Details     map[string]interface{} `json:"details"`
}

// GET /insurance/products
func (ic *InsuranceController) GetProducts(c *gin.Context) {
	var products []models.InsuranceProduct
	if err := ic.db.Where("is_active = ?", true).Order("name asc").Find(&products).Error; err != nil {
		utils.LogError(err, "insurance product list")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// POST /insurance/quote
func (ic *InsuranceController) CreateQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var product models.InsuranceProduct
	if err := ic.db.Where("slug = ?", req.ProductSlug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "insurance product not found"})
			return
		}
		utils.LogError(err, "insurance product lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit quote"})
		return
	}

	quote := models.InsuranceQuote{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		City:      req.City,
		ProductID: product.ID,
	}
	if req.Details != nil {
		if payload, err := json.Marshal(req.Details); err == nil {
			quote.Details = datatypes.JSON(payload)
		}
	}

	if err := ic.db.Create(&quote).Error; err != nil {
		utils.LogError(err, "insurance quote create")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit quote"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "Quote request submitted successfully"})
}
