package usecase

import (
	"context"
	"sort"
	"strings"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IQuoteDecisionUseCase covers the buyer-driven quote lifecycle: viewing,
// acceptance (which closes the request and creates an order) and rejection.

type IQuoteDecisionUseCase interface {
	// View returns the quote, advancing it to viewed on first sight and
	// counting every view.
	View(ctx context.Context, quoteID string) (entities.Quote, error)
	// Accept transitions the quote to accepted, creates the order and
	// completes the owning request. A second acceptance fails with
	// ErrQuoteAlreadyAccepted; an expired quote fails with ErrQuoteExpired.
	Accept(ctx context.Context, quoteID string) (entities.Quote, entities.Order, error)
	Reject(ctx context.Context, quoteID, reason string) (entities.Quote, error)
	// ListForRequest returns the quotes generated for a request, best ranking
	// first. Viewing the list does not count as viewing the quotes.
	ListForRequest(ctx context.Context, quoteRequestID string) ([]entities.Quote, error)
}

type QuoteDecisionUseCase struct {
	quotes   interfaces.IQuoteRepository
	requests interfaces.IQuoteRequestRepository
	orders   interfaces.IOrderRepository
	clock    interfaces.Clock
	logger   *zap.Logger
}

var _ IQuoteDecisionUseCase = (*QuoteDecisionUseCase)(nil)

func NewQuoteDecisionUseCase(
	quotes interfaces.IQuoteRepository,
	requests interfaces.IQuoteRequestRepository,
	orders interfaces.IOrderRepository,
	clock interfaces.Clock,
	logger *zap.Logger,
) *QuoteDecisionUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteDecisionUseCase{quotes: quotes, requests: requests, orders: orders, clock: clock, logger: logger}
}

func (u *QuoteDecisionUseCase) View(ctx context.Context, quoteID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	now := u.clock.Now()
	timeToView := 0
	if q.Metrics.ViewCount == 0 {
		timeToView = int(now.Sub(q.CreatedAt).Minutes())
	}
	viewed, err := u.quotes.MarkViewed(ctx, quoteID, now, timeToView)
	if err != nil {
		return entities.Quote{}, err
	}
	if viewed.ID == "" {
		// The quote left a viewable status between the read and the update;
		// serve the loaded snapshot.
		return q, nil
	}
	return viewed, nil
}

func (u *QuoteDecisionUseCase) Accept(ctx context.Context, quoteID string) (entities.Quote, entities.Order, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, entities.Order{}, ErrQuoteNotFound
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, entities.Order{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, entities.Order{}, ErrQuoteNotFound
	}
	if q.Status == entities.QuoteStatusAccepted || q.DecisionDetails.AcceptedAt != nil {
		return entities.Quote{}, entities.Order{}, ErrQuoteAlreadyAccepted
	}
	now := u.clock.Now()
	if q.Expired(now) {
		return entities.Quote{}, entities.Order{}, ErrQuoteExpired
	}
	if !q.Status.Acceptable() {
		return entities.Quote{}, entities.Order{}, ErrQuoteNotAcceptable
	}

	req, err := u.requests.GetByID(ctx, q.QuoteRequestID)
	if err != nil {
		return entities.Quote{}, entities.Order{}, err
	}

	// Claim the acceptance first. Creating the order only after the conditional
	// update succeeded means a lost race leaves no half-built order behind.
	orderID := uuid.NewString()
	accepted, err := u.quotes.MarkAccepted(ctx, quoteID, now, orderID)
	if err != nil {
		return entities.Quote{}, entities.Order{}, err
	}
	if accepted.ID == "" {
		// Lost the race to another acceptance; the conditional update refused.
		return entities.Quote{}, entities.Order{}, ErrQuoteAlreadyAccepted
	}

	order := entities.Order{
		ID:             orderID,
		QuoteReference: q.ID,
		QuoteRequestID: q.QuoteRequestID,
		VendorID:       q.VendorID,
		BuyerID:        req.SubmittedBy,
		OrderType:      entities.OrderTypeQuoteAcceptance,
		Status:         entities.OrderStatusCreated,
		MonthlyCost:    q.Costs.TotalMonthlyCost,
		CreatedAt:      now,
	}
	createdOrder, err := u.orders.Create(ctx, order)
	if err != nil {
		u.logger.Error("creating order for accepted quote failed",
			zap.String("quote_id", quoteID),
			zap.String("order_id", orderID),
			zap.Error(err))
		return entities.Quote{}, entities.Order{}, err
	}

	if req.ID != "" {
		if _, err := u.requests.UpdateStatus(ctx, req.ID, entities.QuoteRequestStatusCompleted); err != nil {
			u.logger.Warn("completing request after acceptance failed",
				zap.String("request_id", req.ID),
				zap.String("quote_id", quoteID),
				zap.Error(err))
		}
	}

	u.logger.Info("quote accepted",
		zap.String("quote_id", accepted.ID),
		zap.String("order_id", createdOrder.ID),
		zap.String("vendor_id", accepted.VendorID))
	return accepted, createdOrder, nil
}

func (u *QuoteDecisionUseCase) Reject(ctx context.Context, quoteID, reason string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status == entities.QuoteStatusAccepted || q.DecisionDetails.AcceptedAt != nil {
		return entities.Quote{}, ErrQuoteAlreadyAccepted
	}
	if !q.Status.Acceptable() {
		return entities.Quote{}, ErrQuoteNotAcceptable
	}

	rejected, err := u.quotes.MarkRejected(ctx, quoteID, u.clock.Now(), reason)
	if err != nil {
		return entities.Quote{}, err
	}
	if rejected.ID == "" {
		return entities.Quote{}, ErrQuoteNotAcceptable
	}
	return rejected, nil
}

func (u *QuoteDecisionUseCase) ListForRequest(ctx context.Context, quoteRequestID string) ([]entities.Quote, error) {
	quoteRequestID = strings.TrimSpace(quoteRequestID)
	if quoteRequestID == "" {
		return nil, ErrRequestNotFound
	}

	quotes, err := u.quotes.ListByQuoteRequestID(ctx, quoteRequestID)
	if err != nil {
		return nil, err
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Ranking < quotes[j].Ranking })
	return quotes, nil
}
