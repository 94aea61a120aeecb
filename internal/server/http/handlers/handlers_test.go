package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pointbank/internal/domain/errors"
	"github.com/polkiloo/pointbank/internal/domain/model"
	"github.com/polkiloo/pointbank/internal/server/http/dto"
	testhelpers "github.com/polkiloo/pointbank/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserIDParam(t *testing.T) {
	cases := []struct {
		name  string
		param string
		want  int64
		ok    bool
	}{
		{"valid", "7", 7, true},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, false},
		{"garbage", "abc", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Params = gin.Params{{Key: "userID", Value: tc.param}}
			got, ok := UserIDParam(c)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestPointHandlerBalance(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{BalanceFn: func(ctx context.Context, userID int64) (*model.UserPoint, error) {
		if userID != 7 {
			t.Fatalf("unexpected user id %d", userID)
		}
		return &model.UserPoint{UserID: 7, Point: 1000, UpdatedAt: time.Unix(0, 0)}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/points/:userID", "/points/7", handler.Balance, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body dto.PointResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UserID != 7 || body.Point != 1000 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPointHandlerBalanceRejectsBadUserID(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/points/:userID", "/points/zero", handler.Balance, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPointHandlerBalanceReportsStorageFailure(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{BalanceFn: func(context.Context, int64) (*model.UserPoint, error) {
		return nil, errors.New("boom")
	}})
	resp := performRequest(t, http.MethodGet, "/points/:userID", "/points/7", handler.Balance, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestPointHandlerHistory(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{HistoryFn: func(ctx context.Context, userID int64) ([]model.PointHistory, error) {
		return []model.PointHistory{
			{ID: 1, UserID: userID, Amount: 1000, Kind: model.TransactionCharge, CreatedAt: time.Unix(0, 0)},
			{ID: 2, UserID: userID, Amount: 300, Kind: model.TransactionUse, CreatedAt: time.Unix(1, 0)},
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/points/:userID/history", "/points/7/history", handler.History, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body []dto.HistoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body) != 2 || body[0].Kind != "CHARGE" || body[1].Kind != "USE" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPointHandlerHistoryEmptyIsOK(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{HistoryFn: func(context.Context, int64) ([]model.PointHistory, error) {
		return nil, nil
	}})

	resp := performRequest(t, http.MethodGet, "/points/:userID/history", "/points/7/history", handler.History, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty history, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestPointHandlerCharge(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{ChargeFn: func(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
		if userID != 7 || amount != 1000 {
			t.Fatalf("unexpected arguments: %d %d", userID, amount)
		}
		return &model.UserPoint{UserID: 7, Point: 1000, UpdatedAt: time.Unix(0, 0)}, nil
	}})

	body, _ := json.Marshal(dto.AmountRequest{Amount: 1000})
	resp := performRequest(t, http.MethodPost, "/points/:userID/charge", "/points/7/charge", handler.Charge, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var point dto.PointResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &point); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if point.Point != 1000 {
		t.Fatalf("unexpected balance: %+v", point)
	}
}

func TestPointHandlerChargeRejectsMalformedBody(t *testing.T) {
	handler := NewPointHandler(testhelpers.PointFacadeStub{ChargeFn: func(context.Context, int64, int64) (*model.UserPoint, error) {
		t.Fatal("facade must not be called for malformed body")
		return nil, nil
	}})
	resp := performRequest(t, http.MethodPost, "/points/:userID/charge", "/points/7/charge", handler.Charge, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPointHandlerMutationErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid charge amount", domainErrors.ErrInvalidChargeAmount, http.StatusUnprocessableEntity},
		{"invalid use amount", domainErrors.ErrInvalidUseAmount, http.StatusUnprocessableEntity},
		{"ceiling exceeded", domainErrors.ErrBalanceCeilingExceeded, http.StatusUnprocessableEntity},
		{"insufficient balance", domainErrors.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"storage failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPointHandler(testhelpers.PointFacadeStub{UseFn: func(context.Context, int64, int64) (*model.UserPoint, error) {
				return nil, tc.err
			}})
			body, _ := json.Marshal(dto.AmountRequest{Amount: 100})
			resp := performRequest(t, http.MethodPost, "/points/:userID/use", "/points/7/use", handler.Use, body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if tc.status == http.StatusUnprocessableEntity || tc.status == http.StatusPaymentRequired {
				var er dto.ErrorResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &er); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if er.Error != tc.err.Error() {
					t.Fatalf("expected message %q, got %q", tc.err.Error(), er.Error)
				}
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(testhelpers.HealthCheckerStub{})
	resp := performRequest(t, http.MethodGet, "/healthz", "/healthz", handler.Check, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	handler = NewHealthHandler(testhelpers.HealthCheckerStub{Err: errors.New("down")})
	resp = performRequest(t, http.MethodGet, "/healthz", "/healthz", handler.Check, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
