package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nejmigmc-soft/landmarkweb/services"
	"github.com/nejmigmc-soft/landmarkweb/utils"
)

type CurrencyController struct {
	currency *services.CurrencyService
}

func NewCurrencyController(currency *services.CurrencyService) *CurrencyController {
	return &CurrencyController{currency: currency}
}

// GET /currency/latest
func (cc *CurrencyController) Latest(c *gin.Context) {
	rates, err := cc.currency.LatestRates(c.Request.Context())
	if err != nil {
		utils.LogError(err, "currency latest rates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get currency rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}
