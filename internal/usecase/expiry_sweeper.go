package usecase

import (
	"context"

	"tendorai/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// ExpirySweeper transitions quotes whose validity window has passed into the
// expired status. Quotes already decided are untouched. The sweeper is wired
// to a cron schedule in main; Sweep itself is safe to run concurrently since
// the expiry update is conditional in the store.
type ExpirySweeper struct {
	quotes interfaces.IQuoteRepository
	clock  interfaces.Clock
	logger *zap.Logger
}

func NewExpirySweeper(quotes interfaces.IQuoteRepository, clock interfaces.Clock, logger *zap.Logger) *ExpirySweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpirySweeper{quotes: quotes, clock: clock, logger: logger}
}

// Sweep expires every open, overdue quote and returns how many it transitioned.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now()
	overdue, err := s.quotes.ListOpenBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, q := range overdue {
		updated, err := s.quotes.MarkExpired(ctx, q.ID, now)
		if err != nil {
			s.logger.Warn("expiring quote failed",
				zap.String("quote_id", q.ID),
				zap.Error(err))
			continue
		}
		if updated.ID != "" {
			expired++
		}
	}

	if len(overdue) > 0 {
		s.logger.Info("expiry sweep finished",
			zap.Int("overdue", len(overdue)),
			zap.Int("expired", expired))
	}
	return expired, nil
}
