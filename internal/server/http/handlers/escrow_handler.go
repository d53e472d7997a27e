package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/server/http/dto"
)

// EscrowHandler serves contract reconciliation and withdrawal endpoints.
type EscrowHandler struct {
	facade EscrowFacade
}

// NewEscrowHandler constructs EscrowHandler.
func NewEscrowHandler(facade EscrowFacade) *EscrowHandler {
	return &EscrowHandler{facade: facade}
}

// Merchant handles GET /api/escrow.
func (h *EscrowHandler) Merchant(c *gin.Context) {
	view, err := h.facade.MerchantEscrow(c.Request.Context())
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, toEscrowResponse(view))
}

// Buyer handles GET /api/orders/mine.
func (h *EscrowHandler) Buyer(c *gin.Context) {
	view, err := h.facade.BuyerEscrow(c.Request.Context())
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, toEscrowResponse(view))
}

// Withdraw handles POST /api/escrow/withdraw.
func (h *EscrowHandler) Withdraw(c *gin.Context) {
	session := CurrentSession(c)

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	txHash, err := h.facade.Withdraw(c.Request.Context(), session, req.TxID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidTxHash):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotWithdrawable):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrSignatureDeclined):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "signature declined"})
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}
	c.JSON(http.StatusOK, dto.WithdrawResponse{TxHash: txHash})
}

func toEscrowResponse(view *model.EscrowView) dto.EscrowResponse {
	entries := make([]dto.EscrowEntryResponse, 0, len(view.Entries))
	for _, entry := range view.Entries {
		entries = append(entries, dto.EscrowEntryResponse{
			Order:        toOrderResponse(entry.Order),
			TxHash:       entry.UTXO.TxHash,
			OutputIndex:  entry.UTXO.OutputIndex,
			LockedAda:    float64(entry.UTXO.Lovelace()) / model.LovelacePerAda,
			Withdrawable: entry.Withdrawable,
			Datum:        entry.Datum,
		})
	}
	return dto.EscrowResponse{Entries: entries, TotalLocked: view.TotalLocked}
}
