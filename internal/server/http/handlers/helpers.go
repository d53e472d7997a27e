package handlers

import (
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/cardafy/cardafy/internal/pkg/auth"
	"github.com/cardafy/cardafy/internal/server/http/middleware"
)

// CurrentSession extracts the authenticated session from context.
func CurrentSession(c *gin.Context) *pkgAuth.Session {
	val, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return nil
	}
	session, _ := val.(*pkgAuth.Session)
	return session
}
