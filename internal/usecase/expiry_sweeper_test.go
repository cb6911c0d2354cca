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

func TestSweep(t *testing.T) {
	now := time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)

	newSweeper := func(t *testing.T) (*ExpirySweeper, *mock_interfaces.MockIQuoteRepository) {
		ctrl := gomock.NewController(t)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		clock := mock_interfaces.NewMockClock(ctrl)
		clock.EXPECT().Now().Return(now).AnyTimes()
		return NewExpirySweeper(quotes, clock, nil), quotes
	}

	t.Run("expires every overdue quote", func(t *testing.T) {
		s, quotes := newSweeper(t)

		quotes.EXPECT().ListOpenBefore(gomock.Any(), now).Return([]entities.Quote{
			{ID: "q-1"}, {ID: "q-2"},
		}, nil)
		quotes.EXPECT().MarkExpired(gomock.Any(), "q-1", now).Return(entities.Quote{ID: "q-1"}, nil)
		quotes.EXPECT().MarkExpired(gomock.Any(), "q-2", now).Return(entities.Quote{ID: "q-2"}, nil)

		n, err := s.Sweep(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 expired, got %d", n)
		}
	})

	t.Run("a failed update does not stop the sweep", func(t *testing.T) {
		s, quotes := newSweeper(t)

		quotes.EXPECT().ListOpenBefore(gomock.Any(), now).Return([]entities.Quote{
			{ID: "q-1"}, {ID: "q-2"},
		}, nil)
		quotes.EXPECT().MarkExpired(gomock.Any(), "q-1", now).Return(entities.Quote{}, errors.New("throttled"))
		quotes.EXPECT().MarkExpired(gomock.Any(), "q-2", now).Return(entities.Quote{ID: "q-2"}, nil)

		n, err := s.Sweep(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 expired, got %d", n)
		}
	})

	t.Run("a quote decided mid-sweep is not counted", func(t *testing.T) {
		s, quotes := newSweeper(t)

		quotes.EXPECT().ListOpenBefore(gomock.Any(), now).Return([]entities.Quote{{ID: "q-1"}}, nil)
		// Conditional update refused: the quote was accepted after the list.
		quotes.EXPECT().MarkExpired(gomock.Any(), "q-1", now).Return(entities.Quote{}, nil)

		n, err := s.Sweep(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 0 {
			t.Fatalf("expected 0 expired, got %d", n)
		}
	})

	t.Run("list failure surfaces", func(t *testing.T) {
		s, quotes := newSweeper(t)

		quotes.EXPECT().ListOpenBefore(gomock.Any(), now).Return(nil, errors.New("scan failed"))

		if _, err := s.Sweep(context.Background()); err == nil {
			t.Fatalf("expected an error")
		}
	})
}
