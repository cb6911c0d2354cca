package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tendorai/internal/domain/entities"
	mock_interfaces "tendorai/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type decisionMocks struct {
	quotes   *mock_interfaces.MockIQuoteRepository
	requests *mock_interfaces.MockIQuoteRequestRepository
	orders   *mock_interfaces.MockIOrderRepository
	clock    *mock_interfaces.MockClock
}

var decisionNow = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

func newDecision(t *testing.T) (*QuoteDecisionUseCase, decisionMocks) {
	ctrl := gomock.NewController(t)
	m := decisionMocks{
		quotes:   mock_interfaces.NewMockIQuoteRepository(ctrl),
		requests: mock_interfaces.NewMockIQuoteRequestRepository(ctrl),
		orders:   mock_interfaces.NewMockIOrderRepository(ctrl),
		clock:    mock_interfaces.NewMockClock(ctrl),
	}
	m.clock.EXPECT().Now().Return(decisionNow).AnyTimes()
	u := NewQuoteDecisionUseCase(m.quotes, m.requests, m.orders, m.clock, nil)
	return u, m
}

func openQuote() entities.Quote {
	return entities.Quote{
		ID:             "quote-1",
		QuoteRequestID: "req-1",
		VendorID:       "v-1",
		Ranking:        1,
		Status:         entities.QuoteStatusGenerated,
		Costs:          entities.QuoteCosts{TotalMonthlyCost: 480},
		Terms:          entities.QuoteTerms{ValidUntil: decisionNow.Add(10 * 24 * time.Hour)},
		CreatedAt:      decisionNow.Add(-90 * time.Minute),
	}
}

func TestView(t *testing.T) {
	t.Run("first view records time to view", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)
		viewed := q
		viewed.Status = entities.QuoteStatusViewed
		viewed.Metrics.ViewCount = 1
		viewed.Metrics.TimeToView = 90
		m.quotes.EXPECT().MarkViewed(gomock.Any(), "quote-1", decisionNow, 90).Return(viewed, nil)

		got, err := u.View(context.Background(), "quote-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Status != entities.QuoteStatusViewed || got.Metrics.TimeToView != 90 {
			t.Fatalf("unexpected quote: %+v", got.Metrics)
		}
	})

	t.Run("subsequent views pass zero time to view", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		q.Status = entities.QuoteStatusViewed
		q.Metrics.ViewCount = 3

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)
		m.quotes.EXPECT().MarkViewed(gomock.Any(), "quote-1", decisionNow, 0).Return(q, nil)

		if _, err := u.View(context.Background(), "quote-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("decided quote serves the loaded snapshot", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		q.Status = entities.QuoteStatusAccepted

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)
		m.quotes.EXPECT().MarkViewed(gomock.Any(), "quote-1", decisionNow, gomock.Any()).Return(entities.Quote{}, nil)

		got, err := u.View(context.Background(), "quote-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.ID != "quote-1" || got.Status != entities.QuoteStatusAccepted {
			t.Fatalf("expected the snapshot back, got %+v", got)
		}
	})

	t.Run("unknown quote", func(t *testing.T) {
		u, m := newDecision(t)
		m.quotes.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, nil)

		if _, err := u.View(context.Background(), "missing"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestAccept(t *testing.T) {
	t.Run("happy path creates an order and completes the request", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		req := entities.QuoteRequest{ID: "req-1", SubmittedBy: "buyer-1"}

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)
		m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(req, nil)

		accepted := q
		accepted.Status = entities.QuoteStatusAccepted
		var claimedOrderID string
		m.quotes.EXPECT().MarkAccepted(gomock.Any(), "quote-1", decisionNow, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ time.Time, orderID string) (entities.Quote, error) {
				claimedOrderID = orderID
				return accepted, nil
			})
		var createdOrder entities.Order
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				createdOrder = o
				return o, nil
			})
		m.requests.EXPECT().UpdateStatus(gomock.Any(), "req-1", entities.QuoteRequestStatusCompleted).Return(req, nil)

		gotQuote, gotOrder, err := u.Accept(context.Background(), "quote-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotQuote.Status != entities.QuoteStatusAccepted {
			t.Fatalf("expected accepted quote, got %s", gotQuote.Status)
		}
		if gotOrder.ID == "" || gotOrder.ID != createdOrder.ID {
			t.Fatalf("expected the created order back, got %+v", gotOrder)
		}
		if createdOrder.ID != claimedOrderID {
			t.Fatalf("order id %s must match the id recorded on the quote %s", createdOrder.ID, claimedOrderID)
		}
		if createdOrder.QuoteReference != "quote-1" || createdOrder.VendorID != "v-1" || createdOrder.BuyerID != "buyer-1" {
			t.Fatalf("order wired wrong: %+v", createdOrder)
		}
		if createdOrder.OrderType != entities.OrderTypeQuoteAcceptance || createdOrder.Status != entities.OrderStatusCreated {
			t.Fatalf("unexpected order classification: %+v", createdOrder)
		}
		if createdOrder.MonthlyCost != 480 {
			t.Fatalf("expected monthly cost carried over, got %v", createdOrder.MonthlyCost)
		}
	})

	t.Run("already accepted", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		q.Status = entities.QuoteStatusAccepted

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)

		if _, _, err := u.Accept(context.Background(), "quote-1"); !errors.Is(err, ErrQuoteAlreadyAccepted) {
			t.Fatalf("expected ErrQuoteAlreadyAccepted, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		q.Terms.ValidUntil = decisionNow.Add(-time.Hour)

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)

		if _, _, err := u.Accept(context.Background(), "quote-1"); !errors.Is(err, ErrQuoteExpired) {
			t.Fatalf("expected ErrQuoteExpired, got %v", err)
		}
	})

	t.Run("withdrawn quotes are not acceptable", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		q.Status = entities.QuoteStatusWithdrawn

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)

		if _, _, err := u.Accept(context.Background(), "quote-1"); !errors.Is(err, ErrQuoteNotAcceptable) {
			t.Fatalf("expected ErrQuoteNotAcceptable, got %v", err)
		}
	})

	t.Run("lost race leaves no order behind", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)
		m.requests.EXPECT().GetByID(gomock.Any(), "req-1").Return(entities.QuoteRequest{ID: "req-1"}, nil)
		// The conditional update refuses; no Create expectation is registered,
		// so any order write fails the test.
		m.quotes.EXPECT().MarkAccepted(gomock.Any(), "quote-1", decisionNow, gomock.Any()).Return(entities.Quote{}, nil)

		if _, _, err := u.Accept(context.Background(), "quote-1"); !errors.Is(err, ErrQuoteAlreadyAccepted) {
			t.Fatalf("expected ErrQuoteAlreadyAccepted on conditional refusal, got %v", err)
		}
	})
}

func TestReject(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)
		rejected := q
		rejected.Status = entities.QuoteStatusRejected
		m.quotes.EXPECT().MarkRejected(gomock.Any(), "quote-1", decisionNow, "too expensive").Return(rejected, nil)

		got, err := u.Reject(context.Background(), "quote-1", "too expensive")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Status != entities.QuoteStatusRejected {
			t.Fatalf("expected rejected quote, got %s", got.Status)
		}
	})

	t.Run("accepted quotes cannot be rejected", func(t *testing.T) {
		u, m := newDecision(t)
		q := openQuote()
		q.Status = entities.QuoteStatusAccepted

		m.quotes.EXPECT().GetByID(gomock.Any(), "quote-1").Return(q, nil)

		if _, err := u.Reject(context.Background(), "quote-1", ""); !errors.Is(err, ErrQuoteAlreadyAccepted) {
			t.Fatalf("expected ErrQuoteAlreadyAccepted, got %v", err)
		}
	})
}

func TestListForRequest(t *testing.T) {
	t.Run("sorted by ranking", func(t *testing.T) {
		u, m := newDecision(t)

		m.quotes.EXPECT().ListByQuoteRequestID(gomock.Any(), "req-1").Return([]entities.Quote{
			{ID: "q-3", Ranking: 3},
			{ID: "q-1", Ranking: 1},
			{ID: "q-2", Ranking: 2},
		}, nil)

		got, err := u.ListForRequest(context.Background(), "req-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for i, q := range got {
			if q.Ranking != i+1 {
				t.Fatalf("expected ranking order, got %+v", got)
			}
		}
	})

	t.Run("blank id", func(t *testing.T) {
		u, _ := newDecision(t)
		if _, err := u.ListForRequest(context.Background(), "  "); !errors.Is(err, ErrRequestNotFound) {
			t.Fatalf("expected ErrRequestNotFound, got %v", err)
		}
	})
}
