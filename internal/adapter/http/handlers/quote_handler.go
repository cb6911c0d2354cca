package handlers

import (
	"net/http"

	request "tendorai/internal/adapter/http/dto/request"
	response "tendorai/internal/adapter/http/dto/response"
	"tendorai/internal/usecase"
	"tendorai/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRejectPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid reject payload", http.StatusBadRequest)

// QuoteHandler handles buyer-facing HTTP requests on a single quote: viewing
// it and deciding on it.

type QuoteHandler struct {
	decision usecase.IQuoteDecisionUseCase
}

func NewQuoteHandler(decision usecase.IQuoteDecisionUseCase) *QuoteHandler {
	return &QuoteHandler{decision: decision}
}

// GetQuote returns the quote and records the view.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.decision.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// AcceptQuote accepts the quote and returns the created order alongside it.
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	quote, order, err := h.decision.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.AcceptQuoteResponse{
		Quote: response.FromQuote(quote),
		Order: response.FromOrder(order),
	})
}

// RejectQuote declines the quote with an optional reason. An empty body is
// accepted as a reject without reason.
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	var payload request.RejectQuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidRejectPayload.HTTPStatus, errInvalidRejectPayload.ToHTTPError())
			return
		}
	}

	quote, err := h.decision.Reject(c.Request.Context(), c.Param("id"), payload.ResolveReason())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}
