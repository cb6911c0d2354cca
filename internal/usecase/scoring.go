package usecase

import (
	"fmt"
	"sort"
	"strings"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"
)

// ScoredCandidate carries a catalog row through the pipeline: costed first,
// then scored, then deduplicated and assembled.
type ScoredCandidate struct {
	Product entities.VendorProduct
	Vendor  entities.Vendor

	Costs        entities.QuoteCosts
	LeaseOptions []entities.LeaseOption
	CostNotes    []string

	Score entities.MatchScore
	// Warning marks candidates missing a critical feature. They stay in the
	// list with a halved total so they can still surface when nothing better
	// exists.
	Warning bool
}

// reliabilityByServiceLevel is the static proxy for reliability scoring.
var reliabilityByServiceLevel = map[entities.ServiceLevel]float64{
	entities.ServiceLevelPremium:  0.9,
	entities.ServiceLevelStandard: 0.7,
	entities.ServiceLevelBasic:    0.5,
}

// tierReliabilityBonus nudges reliability for vendors on managed plans.
var tierReliabilityBonus = map[entities.VendorTier]float64{
	entities.VendorTierEnterprise: 0.1,
	entities.VendorTierPro:        0.05,
}

// timeframeWindowDays maps the intake urgency options to a lead-time budget.
var timeframeWindowDays = map[string]int{
	"Immediately":    7,
	"Within 1 month": 30,
	"1-3 months":     90,
	"3-6 months":     180,
	"3+ months":      365,
}

const defaultTimeframeWindowDays = 90

// ScoreCandidate computes the full sub-score breakdown and the aggregate total
// for one costed candidate. Every sub-score is produced on [0,1]; only
// costEfficiency keeps its sign on [-1,1] for display, and its aggregate
// contribution is floored at zero.
func ScoreCandidate(c *ScoredCandidate, norm NormalizedRequest, cfg config.Config) {
	p := c.Product

	breakdown := entities.ScoreBreakdown{
		VolumeMatch:      volumeMatch(norm.MonthlyVolume.Total, p.MinVolume, p.MaxVolume, cfg.Engine.CandidateWindow),
		SpeedMatch:       speedMatch(p.Speed, norm.MinSpeed),
		PaperSizeMatch:   paperSizeMatch(p.PaperSizes, norm.PrimarySize),
		ReliabilityMatch: reliabilityMatch(p.Service.Level, c.Vendor.Tier),
		UrgencyMatch:     urgencyMatch(p.Availability.LeadTimeDays, norm.Timeframe),
		CostEfficiency:   costEfficiency(c.Costs.Savings),
	}

	featureScore, criticalMissing := featureMatch(p, norm)
	breakdown.FeatureMatch = featureScore

	w := cfg.WeightsFor(norm.Priority)
	total := w.Volume*breakdown.VolumeMatch +
		w.Speed*breakdown.SpeedMatch +
		w.Feature*breakdown.FeatureMatch +
		w.Paper*breakdown.PaperSizeMatch +
		w.Reliability*breakdown.ReliabilityMatch +
		w.Urgency*breakdown.UrgencyMatch +
		w.CostEfficiency*clamp01(breakdown.CostEfficiency)

	c.Warning = criticalMissing
	if criticalMissing {
		total *= 0.5
	}
	total = clamp01(total)

	c.Score = entities.MatchScore{
		Total:      total,
		Breakdown:  breakdown,
		Confidence: confidenceFor(total, breakdown, criticalMissing),
		Reasoning:  append(buildReasoning(p, breakdown, c.Costs.Savings), c.CostNotes...),
	}
}

// volumeMatch is a triangular function peaking while the buyer total sits in
// the product's rated window and decaying linearly to zero at lower*min below
// and upper*max above.
func volumeMatch(total, minVolume, maxVolume int, window config.CandidateWindow) float64 {
	if minVolume > maxVolume {
		return 0
	}
	t := float64(total)
	minV := float64(minVolume)
	maxV := float64(maxVolume)

	switch {
	case t >= minV && t <= maxV:
		return 1
	case t < minV:
		floor := window.LowerMultiplier * minV
		if t <= floor || minV == floor {
			return 0
		}
		return clamp01((t - floor) / (minV - floor))
	default:
		ceil := window.UpperMultiplier * maxV
		if t >= ceil || ceil == maxV {
			return 0
		}
		return clamp01((ceil - t) / (ceil - maxV))
	}
}

// speedMatch is 1 at or above the required speed, decaying linearly to zero at
// half the requirement.
func speedMatch(speed, minSpeed int) float64 {
	if minSpeed <= 0 || speed >= minSpeed {
		return 1
	}
	floor := float64(minSpeed) / 2
	if float64(speed) <= floor {
		return 0
	}
	return clamp01((float64(speed) - floor) / floor)
}

// featureMatch returns the fraction of essential features the product covers.
// A missing critical feature (colour capability when the buyer prints colour)
// forces the score to zero and flags the candidate.
func featureMatch(p entities.VendorProduct, norm NormalizedRequest) (float64, bool) {
	if len(norm.EssentialFeatures) == 0 {
		return 1, false
	}

	matched := 0
	criticalMissing := false
	for _, feature := range norm.EssentialFeatures {
		if p.HasFeature(feature) {
			matched++
			continue
		}
		if norm.ColourRequired && strings.Contains(strings.ToLower(feature), "colour") {
			criticalMissing = true
		}
	}
	if criticalMissing {
		return 0, true
	}
	return float64(matched) / float64(len(norm.EssentialFeatures)), false
}

// paperSizeMatch: 1 when the supported list covers the primary size, 0.5 when
// only the legacy primary field matches, 0 otherwise. No requirement scores 1.
func paperSizeMatch(sizes entities.PaperSizes, primary entities.PaperSize) float64 {
	if primary == "" {
		return 1
	}
	for _, s := range sizes.Supported {
		if s == primary {
			return 1
		}
	}
	if len(sizes.Supported) == 0 && sizes.Primary == primary {
		return 0.5
	}
	return 0
}

func reliabilityMatch(level entities.ServiceLevel, tier entities.VendorTier) float64 {
	score, ok := reliabilityByServiceLevel[level]
	if !ok {
		score = 0.6
	}
	return clamp01(score + tierReliabilityBonus[tier])
}

// urgencyMatch is 1 when the lead time fits the requested window, decaying
// linearly to zero at twice the window.
func urgencyMatch(leadTimeDays int, timeframe string) float64 {
	window, ok := timeframeWindowDays[timeframe]
	if !ok {
		window = defaultTimeframeWindowDays
	}
	if leadTimeDays <= window {
		return 1
	}
	return clamp01(1 - float64(leadTimeDays-window)/float64(window))
}

// costEfficiency is monthlySavings / currentMonthlyCost clipped to [-1,1]. The
// signed value is retained for display.
func costEfficiency(s entities.Savings) float64 {
	if s.CurrentMonthly <= 0 {
		return 0
	}
	v := s.MonthlyAmount / s.CurrentMonthly
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func confidenceFor(total float64, b entities.ScoreBreakdown, criticalMissing bool) entities.Confidence {
	if total < 0.5 || criticalMissing {
		return entities.ConfidenceLow
	}
	strong := 0
	for _, v := range []float64{
		b.VolumeMatch, clamp01(b.CostEfficiency), b.SpeedMatch, b.FeatureMatch,
		b.ReliabilityMatch, b.PaperSizeMatch, b.UrgencyMatch,
	} {
		if v >= 0.7 {
			strong++
		}
	}
	if total >= 0.75 && strong >= 5 {
		return entities.ConfidenceHigh
	}
	return entities.ConfidenceMedium
}

type namedScore struct {
	name  string
	value float64
}

// buildReasoning derives up to three short sentences from the strongest and
// weakest sub-scores plus the savings figure.
func buildReasoning(p entities.VendorProduct, b entities.ScoreBreakdown, savings entities.Savings) []string {
	scores := []namedScore{
		{"volume fit", b.VolumeMatch},
		{"speed", b.SpeedMatch},
		{"feature coverage", b.FeatureMatch},
		{"paper handling", b.PaperSizeMatch},
		{"service reliability", b.ReliabilityMatch},
		{"delivery timing", b.UrgencyMatch},
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].value > scores[j].value })

	reasons := make([]string, 0, 3)
	best := scores[0]
	if best.value >= 0.7 {
		reasons = append(reasons, fmt.Sprintf("%s %s is a strong match on %s.", p.Manufacturer, p.Model, best.name))
	}

	if savings.MonthlyAmount > 0 {
		reasons = append(reasons, fmt.Sprintf("Estimated savings of £%.2f per month against your current setup.", savings.MonthlyAmount))
	} else if savings.MonthlyAmount < 0 {
		reasons = append(reasons, fmt.Sprintf("Costs £%.2f more per month than your current setup, but fits your requirements better.", -savings.MonthlyAmount))
	}

	worst := scores[len(scores)-1]
	if worst.value < 0.5 {
		reasons = append(reasons, fmt.Sprintf("Weaker on %s; review before committing.", worst.name))
	}
	return reasons
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
