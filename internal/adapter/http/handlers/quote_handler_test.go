package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tendorai/internal/adapter/http/handlers/mocks"
	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func sampleQuote() entities.Quote {
	return entities.Quote{
		ID:             "quote-1",
		QuoteRequestID: "req-1",
		VendorID:       "v-1",
		Ranking:        1,
		Status:         entities.QuoteStatusViewed,
		Costs:          entities.QuoteCosts{TotalMonthlyCost: 480},
		Terms:          entities.QuoteTerms{ValidUntil: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)},
	}
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotes/:id", h.GetQuote)

		uc.EXPECT().View(gomock.Any(), "quote-1").Return(sampleQuote(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/quote-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "quote-1" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotes/:id", h.GetQuote)

		uc.EXPECT().View(gomock.Any(), "missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_AcceptQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns quote and order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/accept", h.AcceptQuote)

		q := sampleQuote()
		q.Status = entities.QuoteStatusAccepted
		order := entities.Order{
			ID:             "order-1",
			QuoteReference: "quote-1",
			QuoteRequestID: "req-1",
			VendorID:       "v-1",
			OrderType:      entities.OrderTypeQuoteAcceptance,
			Status:         entities.OrderStatusCreated,
			MonthlyCost:    480,
		}
		uc.EXPECT().Accept(gomock.Any(), "quote-1").Return(q, order, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/quote-1/accept", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		orderBody, _ := body["order"].(map[string]any)
		if orderBody["id"] != "order-1" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("already accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/accept", h.AcceptQuote)

		uc.EXPECT().Accept(gomock.Any(), "quote-1").Return(entities.Quote{}, entities.Order{}, usecase.ErrQuoteAlreadyAccepted)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/quote-1/accept", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/accept", h.AcceptQuote)

		uc.EXPECT().Accept(gomock.Any(), "quote-1").Return(entities.Quote{}, entities.Order{}, usecase.ErrQuoteExpired)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/quote-1/accept", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_RejectQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("with reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/reject", h.RejectQuote)

		q := sampleQuote()
		q.Status = entities.QuoteStatusRejected
		uc.EXPECT().Reject(gomock.Any(), "quote-1", "too expensive").Return(q, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/quote-1/reject", bytes.NewBufferString(`{"reason":"too expensive"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("empty body rejects without reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/reject", h.RejectQuote)

		q := sampleQuote()
		q.Status = entities.QuoteStatusRejected
		uc.EXPECT().Reject(gomock.Any(), "quote-1", "").Return(q, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/quote-1/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/reject", h.RejectQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/quote-1/reject", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
