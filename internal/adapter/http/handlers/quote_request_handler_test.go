package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tendorai/internal/adapter/http/handlers/mocks"
	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteRequestHandler_GenerateQuotes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.POST("/v1/quote-requests/:id/quotes", h.GenerateQuotes)

		req := httptest.NewRequest(http.MethodPost, "/v1/quote-requests/req-1/quotes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing submitted_by", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.POST("/v1/quote-requests/:id/quotes", h.GenerateQuotes)

		req := httptest.NewRequest(http.MethodPost, "/v1/quote-requests/req-1/quotes", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.POST("/v1/quote-requests/:id/quotes", h.GenerateQuotes)

		engine.EXPECT().GenerateQuotes(gomock.Any(), "req-1", "buyer-1", usecase.GenerateOptions{Retry: true}).
			Return([]string{"q-1", "q-2"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quote-requests/req-1/quotes", bytes.NewBufferString(`{"submitted_by":"buyer-1","retry":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["count"] != float64(2) {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("no matches returns next steps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.POST("/v1/quote-requests/:id/quotes", h.GenerateQuotes)

		engine.EXPECT().GenerateQuotes(gomock.Any(), "req-1", "buyer-1", gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quote-requests/req-1/quotes", bytes.NewBufferString(`{"submitted_by":"buyer-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["count"] != float64(0) || body["next_steps"] == "" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("engine error is mapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.POST("/v1/quote-requests/:id/quotes", h.GenerateQuotes)

		engine.EXPECT().GenerateQuotes(gomock.Any(), "req-1", "buyer-1", gomock.Any()).
			Return(nil, usecase.ErrCatalogUnavailable)

		req := httptest.NewRequest(http.MethodPost, "/v1/quote-requests/req-1/quotes", bytes.NewBufferString(`{"submitted_by":"buyer-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}

func TestQuoteRequestHandler_ListQuotes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.GET("/v1/quote-requests/:id/quotes", h.ListQuotes)

		decision.EXPECT().ListForRequest(gomock.Any(), "req-1").Return([]entities.Quote{
			{ID: "q-1", QuoteRequestID: "req-1", Ranking: 1},
			{ID: "q-2", QuoteRequestID: "req-1", Ranking: 2},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quote-requests/req-1/quotes", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		quotes, _ := body["quotes"].([]any)
		if len(quotes) != 2 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		engine := mocks.NewMockIQuoteEngineUseCase(ctrl)
		decision := mocks.NewMockIQuoteDecisionUseCase(ctrl)
		h := NewQuoteRequestHandler(engine, decision)

		r := gin.New()
		r.GET("/v1/quote-requests/:id/quotes", h.ListQuotes)

		decision.EXPECT().ListForRequest(gomock.Any(), "missing").Return(nil, usecase.ErrRequestNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quote-requests/missing/quotes", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestMapQuoteError(t *testing.T) {
	if got := mapQuoteError(usecase.ErrInvalidRequest); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapQuoteError(usecase.ErrRequestNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuoteError(usecase.ErrCatalogUnavailable); got.HTTPStatus != http.StatusServiceUnavailable {
		t.Fatalf("expected 503")
	}
	if got := mapQuoteError(usecase.ErrQuoteNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuoteError(usecase.ErrQuoteAlreadyAccepted); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(usecase.ErrQuoteNotAcceptable); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(usecase.ErrQuoteExpired); got.HTTPStatus != http.StatusGone {
		t.Fatalf("expected 410")
	}
	if got := mapQuoteError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
