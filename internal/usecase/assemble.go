package usecase

import (
	"fmt"
	"time"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"

	"github.com/google/uuid"
)

// AssembleQuote converts one ranked candidate into a durable Quote document.
// Scores are clamped back into their declared ranges before persistence and
// every correction is recorded in the quote metadata; monetary values are
// rounded to whole pence here and nowhere earlier.
func AssembleQuote(c ScoredCandidate, norm NormalizedRequest, ranking int, now time.Time, cfg config.Config) entities.Quote {
	score, clamped := clampScore(c.Score)

	metadata := entities.QuoteMetadata{ClampedScores: clamped}
	if c.Warning {
		metadata.Warnings = append(metadata.Warnings, "missing a critical feature; surfaced for lack of better options")
	}

	paperSize := norm.PrimarySize
	if paperSize == "" {
		paperSize = entities.PaperSizeA4
	}

	return entities.Quote{
		ID:             uuid.NewString(),
		QuoteRequestID: norm.ID,
		VendorID:       c.Product.VendorID,
		ProductID:      c.Product.ID,
		Ranking:        ranking,

		MatchScore: score,
		Costs:      roundCosts(c.Costs),
		UserRequirements: entities.UserRequirements{
			MonthlyVolume: norm.MonthlyVolume,
			PaperSize:     paperSize,
			Priority:      norm.Priority,
			MaxLeasePrice: norm.MaxLeasePrice,
		},
		LeaseOptions: roundLeaseOptions(c.LeaseOptions),
		Terms: entities.QuoteTerms{
			ValidUntil:       now.Add(time.Duration(cfg.Quote.ValidityDays) * 24 * time.Hour),
			DeliveryTime:     deliveryTime(c.Product.Availability),
			InstallationTime: installationTime(c.Product.Availability),
			PaymentTerms:     "Quarterly in advance",
		},
		ProductSummary: entities.ProductSummary{
			Manufacturer: c.Product.Manufacturer,
			Model:        c.Product.Model,
			Speed:        c.Product.Speed,
			Features:     c.Product.Features,
			PaperSizes:   c.Product.PaperSizes,
			VolumeRange:  c.Product.VolumeRange,
		},

		Status:          entities.QuoteStatusGenerated,
		CustomerActions: []entities.CustomerAction{},
		Metrics:         entities.QuoteMetrics{ViewCount: 0},
		Metadata:        metadata,

		CreatedAt: now,
		UpdatedAt: now,
	}
}

// clampScore forces the total into [0,1] and every sub-score into its declared
// range, reporting which fields needed correction.
func clampScore(score entities.MatchScore) (entities.MatchScore, []string) {
	var clamped []string

	fix01 := func(name string, v float64) float64 {
		if v < 0 || v > 1 {
			clamped = append(clamped, name)
			return clamp01(v)
		}
		return v
	}

	score.Total = fix01("total", score.Total)
	b := &score.Breakdown
	b.VolumeMatch = fix01("volume_match", b.VolumeMatch)
	b.SpeedMatch = fix01("speed_match", b.SpeedMatch)
	b.FeatureMatch = fix01("feature_match", b.FeatureMatch)
	b.PaperSizeMatch = fix01("paper_size_match", b.PaperSizeMatch)
	b.ReliabilityMatch = fix01("reliability_match", b.ReliabilityMatch)
	b.UrgencyMatch = fix01("urgency_match", b.UrgencyMatch)

	if b.CostEfficiency < -1 || b.CostEfficiency > 1 {
		clamped = append(clamped, "cost_efficiency")
		if b.CostEfficiency < -1 {
			b.CostEfficiency = -1
		} else {
			b.CostEfficiency = 1
		}
	}
	return score, clamped
}

func roundCosts(c entities.QuoteCosts) entities.QuoteCosts {
	c.MonoCPCCost = round2(c.MonoCPCCost)
	c.ColourCPCCost = round2(c.ColourCPCCost)
	c.TotalCPCCost = round2(c.TotalCPCCost)
	c.MonthlyLease = round2(c.MonthlyLease)
	c.MonthlyService = round2(c.MonthlyService)
	c.TotalMonthlyCost = round2(c.TotalMonthlyCost)
	c.Savings.MonthlyAmount = round2(c.Savings.MonthlyAmount)
	c.Savings.AnnualAmount = round2(c.Savings.AnnualAmount)
	c.Savings.PercentageSaved = round2(c.Savings.PercentageSaved)
	c.Savings.CurrentMonthly = round2(c.Savings.CurrentMonthly)
	return c
}

func roundLeaseOptions(options []entities.LeaseOption) []entities.LeaseOption {
	out := make([]entities.LeaseOption, len(options))
	for i, opt := range options {
		opt.QuarterlyPayment = round2(opt.QuarterlyPayment)
		opt.MonthlyPayment = round2(opt.MonthlyPayment)
		opt.TotalCost = round2(opt.TotalCost)
		out[i] = opt
	}
	return out
}

func deliveryTime(a entities.Availability) string {
	if a.LeadTimeDays <= 0 {
		return "In stock"
	}
	return fmt.Sprintf("%d days", a.LeadTimeDays)
}

func installationTime(a entities.Availability) string {
	if a.InstallationWindow <= 0 {
		return ""
	}
	return fmt.Sprintf("%d days", a.InstallationWindow)
}
