package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	session := CurrentSession(c)

	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Qty <= 0 || req.Price < 0 {
		c.Status(http.StatusBadRequest)
		return
	}
	tier, ok := model.ParseTier(req.Membership)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.AddCartItem(c.Request.Context(), model.CartItem{
		Address:    session.WalletAddress,
		Title:      req.Title,
		Image:      req.Image,
		Qty:        req.Qty,
		Price:      req.Price,
		Membership: tier,
		Slug:       req.Slug,
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toCartItemResponse(*item))
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	session := CurrentSession(c)
	items, err := h.facade.CartItems(c.Request.Context(), session.WalletAddress)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CartItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCartItemResponse(item))
	}
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/cart/:id.
func (h *CartHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteCartItem(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

func toCartItemResponse(item model.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:         item.ID,
		Title:      item.Title,
		Image:      item.Image,
		Qty:        item.Qty,
		Price:      item.Price,
		Membership: string(item.Membership),
		Slug:       item.Slug,
	}
}
