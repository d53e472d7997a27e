package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/server/http/dto"
)

// CatalogHandler serves tier-gated catalog pages.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/catalog/:tier.
func (h *CatalogHandler) List(c *gin.Context) {
	tier, ok := h.gateTier(c)
	if !ok {
		return
	}

	items, err := h.facade.CatalogItems(c.Request.Context(), tier)
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}

	response := make([]dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCatalogItemResponse(item))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/catalog/:tier/:slug.
func (h *CatalogHandler) Get(c *gin.Context) {
	tier, ok := h.gateTier(c)
	if !ok {
		return
	}

	item, err := h.facade.CatalogItem(c.Request.Context(), tier, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}
	c.JSON(http.StatusOK, toCatalogItemResponse(*item))
}

// gateTier parses the tier parameter and checks the session proved it.
func (h *CatalogHandler) gateTier(c *gin.Context) (model.Tier, bool) {
	tier, ok := model.ParseTier(c.Param("tier"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return "", false
	}
	session := CurrentSession(c)
	if !session.HasTier(tier) {
		c.Status(http.StatusForbidden)
		return "", false
	}
	return tier, true
}

func toCatalogItemResponse(item model.CatalogItem) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Price:       item.Price,
		Image:       item.Image,
		Description: item.Description,
		Membership:  string(item.Membership),
		Slug:        item.Slug,
	}
}
