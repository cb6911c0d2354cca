package routes

import (
	"tendorai/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuoteRequests = "/quote-requests"
	PathQuotes        = "/quotes"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteRequestHandler *handlers.QuoteRequestHandler, quoteHandler *handlers.QuoteHandler) {
	quoteRequests := rg.Group(PathQuoteRequests)
	{
		quoteRequests.POST("/:id/quotes", quoteRequestHandler.GenerateQuotes)
		quoteRequests.GET("/:id/quotes", quoteRequestHandler.ListQuotes)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.POST("/:id/accept", quoteHandler.AcceptQuote)
		quotes.POST("/:id/reject", quoteHandler.RejectQuote)
	}
}
