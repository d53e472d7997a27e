package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/server/http/dto"
	"github.com/cardafy/cardafy/internal/server/http/middleware"
)

// SessionHandler processes wallet login and logout.
type SessionHandler struct {
	facade SessionFacade
}

// NewSessionHandler creates SessionHandler instance.
func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Login handles POST /api/session/login.
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WalletName == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	token, session, err := h.facade.Login(c.Request.Context(), req.WalletName)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMembershipRequired):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}

	middleware.SetAuthCookie(c, token)

	tiers := make([]string, 0, len(session.Tiers))
	for _, t := range session.Tiers {
		tiers = append(tiers, string(t))
	}
	c.JSON(http.StatusOK, dto.SessionResponse{
		WalletAddress: session.WalletAddress,
		WalletName:    session.WalletName,
		Tiers:         tiers,
	})
}

// Logout handles POST /api/session/logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusOK)
}
