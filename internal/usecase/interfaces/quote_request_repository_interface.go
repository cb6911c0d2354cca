package interfaces

import (
	"context"
	"time"

	"tendorai/internal/domain/entities"
)

// IQuoteRequestRepository abstracts DynamoDB persistence for QuoteRequest.
//
// The engine is the single writer per request id:
//   - advance status while processing and on completion
//   - cancel with a reason when the input cannot be normalised
//   - mark matched with the generated quote ids
//   - record diagnostic risk factors

type IQuoteRequestRepository interface {
	GetByID(ctx context.Context, id string) (entities.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteRequestStatus) (entities.QuoteRequest, error)
	MarkCancelled(ctx context.Context, id, reason string) (entities.QuoteRequest, error)
	// MarkMatched appends quoteIDs to the request, sets status=matched and
	// flags ai_analysis as processed at the given time.
	MarkMatched(ctx context.Context, id string, quoteIDs []string, processedAt time.Time) (entities.QuoteRequest, error)
	AddRiskFactor(ctx context.Context, id, risk string) (entities.QuoteRequest, error)
}
