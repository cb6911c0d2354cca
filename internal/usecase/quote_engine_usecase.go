package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// GenerateOptions tune a single engine invocation.
type GenerateOptions struct {
	// DeadlineMs caps the invocation; zero uses the configured default.
	DeadlineMs int
	// Retry fills missing ranking slots on an already matched request instead
	// of treating the re-run as a no-op. Existing quotes are preserved.
	Retry bool
	// SampleOnly produces a single synthetic quote without touching the
	// catalog. Integration smoke only.
	SampleOnly bool
}

// IQuoteEngineUseCase is the public entry point of the matching engine.
//
// GenerateQuotes converts a buyer requirement into at most
// engine.maxquotesperrequest ranked, vendor-diverse, fully costed quotes and
// returns their ids.

type IQuoteEngineUseCase interface {
	GenerateQuotes(ctx context.Context, quoteRequestID, submittedBy string, opts GenerateOptions) ([]string, error)
}

type QuoteEngineUseCase struct {
	requests interfaces.IQuoteRequestRepository
	products interfaces.IVendorProductRepository
	vendors  interfaces.IVendorRepository
	quotes   interfaces.IQuoteRepository

	cfg    config.Config
	clock  interfaces.Clock
	logger *zap.Logger
}

var _ IQuoteEngineUseCase = (*QuoteEngineUseCase)(nil)

func NewQuoteEngineUseCase(
	requests interfaces.IQuoteRequestRepository,
	products interfaces.IVendorProductRepository,
	vendors interfaces.IVendorRepository,
	quotes interfaces.IQuoteRepository,
	cfg config.Config,
	clock interfaces.Clock,
	logger *zap.Logger,
) *QuoteEngineUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteEngineUseCase{
		requests: requests,
		products: products,
		vendors:  vendors,
		quotes:   quotes,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
	}
}

// GenerateQuotes runs the pipeline: load, normalise, select, cost+score,
// deduplicate, assemble and persist. It is idempotent per request: re-running
// a matched request without the retry flag changes nothing and returns the
// existing quote ids.
func (u *QuoteEngineUseCase) GenerateQuotes(ctx context.Context, quoteRequestID, submittedBy string, opts GenerateOptions) ([]string, error) {
	started := u.clock.Now()
	log := u.logger.With(zap.String("request_id", quoteRequestID))

	deadline := time.Duration(u.cfg.Engine.DeadlineMs) * time.Millisecond
	if opts.DeadlineMs > 0 {
		deadline = time.Duration(opts.DeadlineMs) * time.Millisecond
	}
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	req, err := u.requests.GetByID(ctx, quoteRequestID)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, ErrRequestNotFound
	}
	if submittedBy != "" && req.SubmittedBy != "" && req.SubmittedBy != submittedBy {
		return nil, ErrRequestNotFound
	}

	existing := req.Quotes
	if req.Status == entities.QuoteRequestStatusMatched && !opts.Retry {
		log.Info("request already matched; skipping",
			zap.Int("existing_quotes", len(existing)))
		return existing, nil
	}

	norm, err := NormalizeRequest(req, u.cfg)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			if _, mErr := u.requests.MarkCancelled(ctx, req.ID, err.Error()); mErr != nil {
				log.Warn("cancelling invalid request failed", zap.Error(mErr))
			}
			log.Warn("request cannot be normalised", zap.Error(err))
		}
		return nil, err
	}
	log.Info("request normalised",
		zap.String("stage", "normalize"),
		zap.Int("total_volume", norm.MonthlyVolume.Total),
		zap.String("volume_range", string(norm.VolumeRange)),
		zap.String("priority", string(norm.Priority)),
		zap.Duration("elapsed", u.clock.Now().Sub(started)))

	if _, err := u.requests.UpdateStatus(ctx, req.ID, entities.QuoteRequestStatusProcessing); err != nil {
		log.Warn("advancing request to processing failed", zap.Error(err))
	}

	var scored []ScoredCandidate
	if opts.SampleOnly {
		scored = []ScoredCandidate{u.sampleCandidate(norm)}
	} else {
		selectStarted := u.clock.Now()
		candidates, err := u.selectCandidates(ctx, norm)
		if err != nil {
			return nil, err
		}
		log.Info("candidates selected",
			zap.String("stage", "select"),
			zap.Int("candidates", len(candidates)),
			zap.Duration("elapsed", u.clock.Now().Sub(selectStarted)))

		if len(candidates) == 0 {
			if len(existing) > 0 {
				u.restoreMatched(ctx, req.ID, log)
				log.Info("no new candidates; existing quotes stand",
					zap.String("stage", "done"),
					zap.Int("existing_quotes", len(existing)))
				return existing, nil
			}
			return nil, u.recordNoMatches(ctx, req.ID, log)
		}

		scoreStarted := u.clock.Now()
		scored = make([]ScoredCandidate, 0, len(candidates))
		for _, cand := range candidates {
			sc := ScoredCandidate{Product: cand.Product, Vendor: cand.Vendor}
			sc.Costs, sc.LeaseOptions, sc.CostNotes = SynthesizeCosts(cand.Product, norm, u.cfg)
			ScoreCandidate(&sc, norm, u.cfg)
			scored = append(scored, sc)
		}
		log.Info("candidates scored",
			zap.String("stage", "score"),
			zap.Int("candidates", len(scored)),
			zap.Duration("elapsed", u.clock.Now().Sub(scoreStarted)))
	}

	unique := DeduplicateByVendor(scored)
	log.Info("vendors deduplicated",
		zap.String("stage", "dedup"),
		zap.Int("in", len(scored)),
		zap.Int("out", len(unique)))

	createdIDs, deadlineHit := u.persistQuotes(ctx, unique, norm, existing, opts.Retry, log)

	if deadlineHit {
		if _, err := u.requests.AddRiskFactor(ctx, req.ID, RiskDeadlineExceeded); err != nil {
			log.Warn("recording deadline risk factor failed", zap.Error(err))
		}
	}

	if len(createdIDs) == 0 {
		if len(existing) == 0 {
			return nil, u.recordNoMatches(ctx, req.ID, log)
		}
		u.restoreMatched(ctx, req.ID, log)
		log.Info("no free ranking slots; existing quotes stand",
			zap.String("stage", "done"),
			zap.Int("existing_quotes", len(existing)),
			zap.Bool("deadline_hit", deadlineHit))
		return existing, nil
	}
	if _, err := u.requests.MarkMatched(ctx, req.ID, createdIDs, u.clock.Now()); err != nil {
		log.Error("marking request matched failed", zap.Error(err))
		return createdIDs, err
	}

	log.Info("quotes generated",
		zap.String("stage", "done"),
		zap.Int("created", len(createdIDs)),
		zap.Bool("deadline_hit", deadlineHit),
		zap.Duration("elapsed", u.clock.Now().Sub(started)))
	return createdIDs, nil
}

// persistQuotes writes the top-ranked candidates in descending score order.
// An individual persist failure is logged and skipped; a deadline expiry stops
// the batch after the in-flight write and leaves persisted quotes intact. On
// retry, ranking slots already occupied by existing quotes stay theirs and new
// quotes take the free slots in score order.
func (u *QuoteEngineUseCase) persistQuotes(ctx context.Context, unique []ScoredCandidate, norm NormalizedRequest, existingIDs []string, retry bool, log *zap.Logger) ([]string, bool) {
	maxQuotes := u.cfg.Engine.MaxQuotesPerRequest

	takenRanks := make(map[int]bool, maxQuotes)
	excludeVendors := make(map[string]bool)
	if retry && len(existingIDs) > 0 {
		kept, err := u.quotes.ListByQuoteRequestID(ctx, norm.ID)
		if err != nil {
			log.Warn("listing existing quotes for retry failed", zap.Error(err))
		}
		for _, q := range kept {
			takenRanks[q.Ranking] = true
			excludeVendors[q.VendorID] = true
		}
	}

	now := u.clock.Now()
	created := make([]string, 0, maxQuotes)
	deadlineHit := false

	nextRank := func() int {
		for r := 1; r <= maxQuotes; r++ {
			if !takenRanks[r] {
				takenRanks[r] = true
				return r
			}
		}
		return 0
	}

candidates:
	for _, cand := range unique {
		if excludeVendors[cand.Product.VendorID] {
			continue
		}
		for {
			rank := nextRank()
			if rank == 0 {
				break candidates
			}
			if ctx.Err() != nil {
				deadlineHit = true
				break candidates
			}

			quote := AssembleQuote(cand, norm, rank, now, u.cfg)
			persisted, err := u.quotes.Create(ctx, quote)
			if err != nil {
				if ctx.Err() != nil {
					deadlineHit = true
					break candidates
				}
				if errors.Is(err, interfaces.ErrRankingConflict) {
					// The slot belongs to a concurrent run now; leave it taken
					// and retry the same candidate on the next free rank.
					log.Warn("ranking slot already claimed; moving on",
						zap.String("vendor_id", cand.Product.VendorID),
						zap.Int("ranking", rank))
					continue
				}
				log.Warn("persisting quote failed; skipping",
					zap.String("vendor_id", cand.Product.VendorID),
					zap.Int("ranking", rank),
					zap.Error(err))
				takenRanks[rank] = false
				continue candidates
			}
			created = append(created, persisted.ID)
			continue candidates
		}
	}
	return created, deadlineHit
}

// restoreMatched puts a request that already carries quotes back to matched
// after a retry run produced nothing new.
func (u *QuoteEngineUseCase) restoreMatched(ctx context.Context, requestID string, log *zap.Logger) {
	if _, err := u.requests.UpdateStatus(ctx, requestID, entities.QuoteRequestStatusMatched); err != nil {
		log.Warn("restoring matched status failed", zap.Error(err))
	}
}

func (u *QuoteEngineUseCase) recordNoMatches(ctx context.Context, requestID string, log *zap.Logger) error {
	if _, err := u.requests.AddRiskFactor(ctx, requestID, RiskNoMatches); err != nil {
		log.Warn("recording no-match risk factor failed", zap.Error(err))
	}
	// The request goes back to pending so a later catalog change can retry it.
	if _, err := u.requests.UpdateStatus(ctx, requestID, entities.QuoteRequestStatusPending); err != nil {
		log.Warn("resetting request to pending failed", zap.Error(err))
	}
	log.Info("no viable candidates", zap.String("stage", "done"))
	return nil
}

// sampleCandidate fabricates one in-memory candidate so integration tests can
// exercise assembly and persistence without a populated catalog.
func (u *QuoteEngineUseCase) sampleCandidate(norm NormalizedRequest) ScoredCandidate {
	product := entities.VendorProduct{
		ID:           fmt.Sprintf("sample-product-%s", norm.ID),
		VendorID:     "sample-vendor",
		Manufacturer: "TendorAI",
		Model:        "Sample MFP",
		Speed:        norm.MinSpeed,
		Features:     norm.EssentialFeatures,
		PaperSizes: entities.PaperSizes{
			Primary:   entities.PaperSizeA4,
			Supported: []entities.PaperSize{entities.PaperSizeA4, entities.PaperSizeA3},
		},
		VolumeRange: norm.VolumeRange,
		MinVolume:   norm.MonthlyVolume.Total / 2,
		MaxVolume:   norm.MonthlyVolume.Total * 2,
		Costs: entities.ProductCosts{
			TotalMachineCost: 2400,
			CPCRates:         entities.CPCRates{A4Mono: 0.9, A4Colour: 4.0, A3Mono: 1.2, A3Colour: 5.0},
		},
		Service:      entities.ProductService{Level: entities.ServiceLevelStandard},
		Availability: entities.Availability{InStock: true, LeadTimeDays: 7},
	}
	vendor := entities.Vendor{
		ID:          product.VendorID,
		CompanyName: "TendorAI Sample Vendor",
		Status:      entities.VendorStatusActive,
		Tier:        entities.VendorTierPro,
	}

	sc := ScoredCandidate{Product: product, Vendor: vendor}
	sc.Costs, sc.LeaseOptions, sc.CostNotes = SynthesizeCosts(product, norm, u.cfg)
	ScoreCandidate(&sc, norm, u.cfg)
	return sc
}
