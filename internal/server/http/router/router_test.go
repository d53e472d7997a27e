package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cardafy/cardafy/internal/server/http/handlers"
	testhelpers "github.com/cardafy/cardafy/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.StorefrontFacadeStub{}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"wallet_name": "nami"})
	req := httptest.NewRequest(http.MethodPost, "/api/session/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for login, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for cart, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/catalog/gold", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for catalog, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/mine", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for buyer escrow, got %d", resp.Code)
	}
}

var _ handlers.StorefrontFacade = (*testhelpers.StorefrontFacadeStub)(nil)
