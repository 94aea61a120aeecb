package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pointbank/internal/logger"
	"github.com/polkiloo/pointbank/internal/server/http/dto"
	testhelpers "github.com/polkiloo/pointbank/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := Setup(testhelpers.PointFacadeStub{}, testhelpers.HealthCheckerStub{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for healthz, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/points/7", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for balance, got %d", resp.Code)
	}

	body, _ := json.Marshal(dto.AmountRequest{Amount: 100})
	req = httptest.NewRequest(http.MethodPost, "/api/points/7/charge", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for charge, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/points/7/history", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for history, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown route, got %d", resp.Code)
	}
}
