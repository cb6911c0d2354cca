package interfaces

import (
	"context"
	"errors"
	"time"

	"tendorai/internal/domain/entities"
)

// ErrRankingConflict is returned by Create when the (quote_request, ranking)
// pair is already claimed, typically by a concurrent run. The slot stays
// claimed; callers should move on to another ranking.
var ErrRankingConflict = errors.New("ranking already claimed")

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Create must be atomic per quote and reject duplicate (quote_request, ranking)
// pairs. Lifecycle updates return the zero value when their condition fails
// (already decided, not found); callers map that to domain errors.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByQuoteRequestID(ctx context.Context, quoteRequestID string) ([]entities.Quote, error)

	// MarkAccepted sets status=accepted, decision_details.accepted_at and the
	// created order reference. accepted_at is set once and never cleared.
	MarkAccepted(ctx context.Context, id string, at time.Time, orderID string) (entities.Quote, error)
	MarkRejected(ctx context.Context, id string, at time.Time, reason string) (entities.Quote, error)
	// MarkViewed advances a generated/sent quote to viewed on first view and
	// increments the view counter either way.
	MarkViewed(ctx context.Context, id string, at time.Time, timeToViewMinutes int) (entities.Quote, error)
	MarkExpired(ctx context.Context, id string, at time.Time) (entities.Quote, error)

	// ListOpenBefore returns quotes still awaiting a decision whose validity
	// window ended before the given instant.
	ListOpenBefore(ctx context.Context, before time.Time) ([]entities.Quote, error)
}
