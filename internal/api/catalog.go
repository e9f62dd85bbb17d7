package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aremaru/backend/internal/catalog"
)

// CatalogHandler serves the static allergen catalog.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/allergens", h.ListAllergens)
}

// ListAllergens returns the common allergens and the free-text sentinel.
func (h *CatalogHandler) ListAllergens(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"allergens": catalog.Common,
		"other":     catalog.Other,
	})
}
