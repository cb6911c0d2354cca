package handlers

import (
	"errors"
	"net/http"

	request "tendorai/internal/adapter/http/dto/request"
	response "tendorai/internal/adapter/http/dto/response"
	"tendorai/internal/usecase"
	"tendorai/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidGeneratePayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid generate payload", http.StatusBadRequest)

// QuoteRequestHandler handles HTTP requests that operate on a buyer's quote
// request: triggering the matching engine and listing the generated quotes.

type QuoteRequestHandler struct {
	engine   usecase.IQuoteEngineUseCase
	decision usecase.IQuoteDecisionUseCase
}

func NewQuoteRequestHandler(engine usecase.IQuoteEngineUseCase, decision usecase.IQuoteDecisionUseCase) *QuoteRequestHandler {
	return &QuoteRequestHandler{engine: engine, decision: decision}
}

// GenerateQuotes runs the matching engine for the quote request in the path.
// Re-running a matched request is a no-op unless retry is set.
func (h *QuoteRequestHandler) GenerateQuotes(c *gin.Context) {
	quoteRequestID := c.Param("id")

	var payload request.GenerateQuotesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidGeneratePayload.HTTPStatus, errInvalidGeneratePayload.ToHTTPError())
		return
	}

	ids, err := h.engine.GenerateQuotes(c.Request.Context(), quoteRequestID, payload.ResolveSubmittedBy(), usecase.GenerateOptions{
		DeadlineMs: payload.DeadlineMs,
		Retry:      payload.Retry,
		SampleOnly: payload.SampleOnly,
	})
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	resp := response.GenerateQuotesResponse{
		QuoteRequestID: quoteRequestID,
		QuoteIDs:       ids,
		Count:          len(ids),
	}
	if len(ids) == 0 {
		resp.NextSteps = "No immediate matches found. Your request stays open and will be retried as the catalog changes."
	}
	c.JSON(http.StatusOK, resp)
}

// ListQuotes returns the quotes generated for the request, best ranking first.
func (h *QuoteRequestHandler) ListQuotes(c *gin.Context) {
	quoteRequestID := c.Param("id")

	quotes, err := h.decision.ListForRequest(c.Request.Context(), quoteRequestID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.QuoteListResponse{
		QuoteRequestID: quoteRequestID,
		Quotes:         response.FromQuotes(quotes),
	})
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Quote request cannot be processed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Quote request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		return pkg.NewDomainErrorSimple("CATALOG_UNAVAILABLE", "Catalog temporarily unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteAlreadyAccepted):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_ACCEPTED", "Quote already accepted", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotAcceptable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_ACCEPTABLE", "Quote is no longer open for a decision", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote validity window has passed", http.StatusGone)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
