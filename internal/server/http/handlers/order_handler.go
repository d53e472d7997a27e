package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/server/http/dto"
	"github.com/cardafy/cardafy/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	session := CurrentSession(c)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Checkout(c.Request.Context(), session, usecase.CheckoutInput{
		Name:       req.Name,
		Address:    req.Address,
		ItemName:   req.ItemName,
		Qty:        req.Qty,
		Price:      req.Price,
		CartItemID: req.CartItemID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingField):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrSignatureDeclined):
			// The buyer backed out in the wallet; nothing was submitted.
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "signature declined"})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Advance handles POST /api/orders/:txID/advance.
func (h *OrderHandler) Advance(c *gin.Context) {
	order, err := h.facade.AdvanceOrder(c.Request.Context(), c.Param("txID"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidTxHash), errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:txID.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("txID")); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidTxHash):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		TxID:        order.TxID,
		Name:        order.Name,
		Address:     order.Address,
		ItemName:    order.ItemName,
		Qty:         order.Qty,
		Price:       order.Price,
		Total:       order.Total(),
		DateOrdered: order.DateOrdered,
		Status:      string(order.Status),
		ConfirmedAt: order.ConfirmedAt,
	}
}
