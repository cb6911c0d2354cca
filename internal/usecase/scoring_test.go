package usecase

import (
	"math"
	"testing"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVolumeMatch(t *testing.T) {
	window := config.Default().Engine.CandidateWindow

	t.Run("inside rated window", func(t *testing.T) {
		if got := volumeMatch(10000, 6000, 13000, window); got != 1 {
			t.Fatalf("expected 1, got %v", got)
		}
	})

	t.Run("below window decays linearly", func(t *testing.T) {
		// floor = 0.6*10000 = 6000; total 8000 sits halfway up.
		if got := volumeMatch(8000, 10000, 20000, window); !almostEqual(got, 0.5) {
			t.Fatalf("expected 0.5, got %v", got)
		}
	})

	t.Run("below floor is zero", func(t *testing.T) {
		if got := volumeMatch(5000, 10000, 20000, window); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("above ceiling is zero", func(t *testing.T) {
		// ceiling = 2.5*20000 = 50000.
		if got := volumeMatch(60000, 10000, 20000, window); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("inverted window is zero", func(t *testing.T) {
		if got := volumeMatch(10000, 20000, 10000, window); got != 0 {
			t.Fatalf("expected 0 for min>max, got %v", got)
		}
	})
}

func TestSpeedMatch(t *testing.T) {
	if got := speedMatch(45, 40); got != 1 {
		t.Fatalf("at or above requirement should be 1, got %v", got)
	}
	if got := speedMatch(30, 40); !almostEqual(got, 0.5) {
		t.Fatalf("30ppm against 40 requirement should be 0.5, got %v", got)
	}
	if got := speedMatch(20, 40); got != 0 {
		t.Fatalf("half the requirement should be 0, got %v", got)
	}
	if got := speedMatch(10, 0); got != 1 {
		t.Fatalf("no requirement should be 1, got %v", got)
	}
}

func TestFeatureMatch(t *testing.T) {
	product := entities.VendorProduct{Features: []string{"Duplex", "Stapling"}}

	t.Run("no requirements", func(t *testing.T) {
		score, critical := featureMatch(product, NormalizedRequest{})
		if score != 1 || critical {
			t.Fatalf("expected (1,false), got (%v,%v)", score, critical)
		}
	})

	t.Run("partial coverage", func(t *testing.T) {
		norm := NormalizedRequest{EssentialFeatures: []string{"Duplex", "Fax", "Stapling", "Booklet"}}
		score, critical := featureMatch(product, norm)
		if !almostEqual(score, 0.5) || critical {
			t.Fatalf("expected (0.5,false), got (%v,%v)", score, critical)
		}
	})

	t.Run("missing colour when colour required", func(t *testing.T) {
		norm := NormalizedRequest{
			EssentialFeatures: []string{"Colour printing"},
			ColourRequired:    true,
		}
		score, critical := featureMatch(product, norm)
		if score != 0 || !critical {
			t.Fatalf("expected critical zero, got (%v,%v)", score, critical)
		}
	})

	t.Run("missing colour tolerated for mono buyer", func(t *testing.T) {
		norm := NormalizedRequest{
			EssentialFeatures: []string{"Colour printing", "Duplex"},
			ColourRequired:    false,
		}
		score, critical := featureMatch(product, norm)
		if !almostEqual(score, 0.5) || critical {
			t.Fatalf("expected (0.5,false), got (%v,%v)", score, critical)
		}
	})
}

func TestPaperSizeMatch(t *testing.T) {
	t.Run("supported list wins", func(t *testing.T) {
		sizes := entities.PaperSizes{
			Primary:   entities.PaperSizeA4,
			Supported: []entities.PaperSize{entities.PaperSizeA4, entities.PaperSizeA3},
		}
		if got := paperSizeMatch(sizes, entities.PaperSizeA3); got != 1 {
			t.Fatalf("expected 1, got %v", got)
		}
	})

	t.Run("legacy primary fallback scores half", func(t *testing.T) {
		sizes := entities.PaperSizes{Primary: entities.PaperSizeA3}
		if got := paperSizeMatch(sizes, entities.PaperSizeA3); got != 0.5 {
			t.Fatalf("expected 0.5, got %v", got)
		}
	})

	t.Run("unsupported is zero", func(t *testing.T) {
		sizes := entities.PaperSizes{
			Primary:   entities.PaperSizeA4,
			Supported: []entities.PaperSize{entities.PaperSizeA4},
		}
		if got := paperSizeMatch(sizes, entities.PaperSizeA3); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})

	t.Run("no requirement is one", func(t *testing.T) {
		if got := paperSizeMatch(entities.PaperSizes{}, ""); got != 1 {
			t.Fatalf("expected 1, got %v", got)
		}
	})
}

func TestReliabilityMatch(t *testing.T) {
	if got := reliabilityMatch(entities.ServiceLevelPremium, entities.VendorTierEnterprise); got != 1 {
		t.Fatalf("premium+enterprise should clamp to 1, got %v", got)
	}
	if got := reliabilityMatch(entities.ServiceLevelStandard, entities.VendorTierPro); !almostEqual(got, 0.75) {
		t.Fatalf("standard+pro should be 0.75, got %v", got)
	}
	if got := reliabilityMatch("", entities.VendorTierFree); !almostEqual(got, 0.6) {
		t.Fatalf("unknown level should default to 0.6, got %v", got)
	}
}

func TestUrgencyMatch(t *testing.T) {
	if got := urgencyMatch(5, "Immediately"); got != 1 {
		t.Fatalf("lead within window should be 1, got %v", got)
	}
	// window 7, lead 10: 1 - 3/7.
	if got := urgencyMatch(10, "Immediately"); !almostEqual(got, 1-3.0/7.0) {
		t.Fatalf("expected partial decay, got %v", got)
	}
	if got := urgencyMatch(15, "Immediately"); got != 0 {
		t.Fatalf("double the window should be 0, got %v", got)
	}
	if got := urgencyMatch(60, "whenever"); got != 1 {
		t.Fatalf("unknown timeframe uses 90-day window, got %v", got)
	}
}

func TestCostEfficiency(t *testing.T) {
	if got := costEfficiency(entities.Savings{MonthlyAmount: 50, CurrentMonthly: 200}); !almostEqual(got, 0.25) {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := costEfficiency(entities.Savings{MonthlyAmount: -100, CurrentMonthly: 50}); got != -1 {
		t.Fatalf("expected clip at -1, got %v", got)
	}
	if got := costEfficiency(entities.Savings{MonthlyAmount: 10, CurrentMonthly: 0}); got != 0 {
		t.Fatalf("no current baseline should score 0, got %v", got)
	}
}

func TestScoreCandidate_AggregateAndConfidence(t *testing.T) {
	cfg := config.Default()
	norm := NormalizedRequest{
		MonthlyVolume: entities.MonthlyVolume{Mono: 8000, Colour: 2000, Total: 10000},
		VolumeRange:   entities.VolumeRange6To13k,
		Priority:      entities.PriorityBalanced,
		MinSpeed:      30,
		PrimarySize:   entities.PaperSizeA4,
		Timeframe:     "Within 1 month",
	}

	c := &ScoredCandidate{
		Product: entities.VendorProduct{
			VendorID:     "v-1",
			Manufacturer: "Canon",
			Model:        "iR 3530",
			Speed:        35,
			MinVolume:    6000,
			MaxVolume:    13000,
			PaperSizes: entities.PaperSizes{
				Primary:   entities.PaperSizeA4,
				Supported: []entities.PaperSize{entities.PaperSizeA4, entities.PaperSizeA3},
			},
			Service:      entities.ProductService{Level: entities.ServiceLevelPremium},
			Availability: entities.Availability{InStock: true, LeadTimeDays: 10},
		},
		Vendor: entities.Vendor{ID: "v-1", Tier: entities.VendorTierPro},
		Costs: entities.QuoteCosts{
			Savings: entities.Savings{MonthlyAmount: 80, CurrentMonthly: 400},
		},
	}

	ScoreCandidate(c, norm, cfg)

	b := c.Score.Breakdown
	if b.VolumeMatch != 1 || b.SpeedMatch != 1 || b.PaperSizeMatch != 1 || b.UrgencyMatch != 1 || b.FeatureMatch != 1 {
		t.Fatalf("expected full sub-scores, got %+v", b)
	}
	if !almostEqual(b.ReliabilityMatch, 0.95) {
		t.Fatalf("expected reliability 0.95, got %v", b.ReliabilityMatch)
	}
	if !almostEqual(b.CostEfficiency, 0.2) {
		t.Fatalf("expected cost efficiency 0.2, got %v", b.CostEfficiency)
	}

	want := (1 + 1 + 1 + 1 + 1 + 0.95 + 0.2) / 7
	if !almostEqual(c.Score.Total, want) {
		t.Fatalf("expected total %v, got %v", want, c.Score.Total)
	}
	if c.Score.Confidence != entities.ConfidenceHigh {
		t.Fatalf("expected High confidence, got %s", c.Score.Confidence)
	}
	if c.Warning {
		t.Fatalf("unexpected critical warning")
	}
	if len(c.Score.Reasoning) == 0 {
		t.Fatalf("expected reasoning sentences")
	}
}

func TestScoreCandidate_CriticalFeatureHalvesTotal(t *testing.T) {
	cfg := config.Default()
	norm := NormalizedRequest{
		MonthlyVolume:     entities.MonthlyVolume{Mono: 5000, Colour: 3000, Total: 8000},
		Priority:          entities.PriorityBalanced,
		ColourRequired:    true,
		EssentialFeatures: []string{"Colour printing"},
	}

	mono := &ScoredCandidate{
		Product: entities.VendorProduct{
			VendorID:  "v-2",
			MinVolume: 6000,
			MaxVolume: 13000,
			Speed:     40,
			Features:  []string{"Duplex"},
			Service:   entities.ProductService{Level: entities.ServiceLevelStandard},
		},
	}
	ScoreCandidate(mono, norm, cfg)

	if !mono.Warning {
		t.Fatalf("expected critical feature warning")
	}
	if mono.Score.Breakdown.FeatureMatch != 0 {
		t.Fatalf("expected zero feature score, got %v", mono.Score.Breakdown.FeatureMatch)
	}
	if mono.Score.Confidence != entities.ConfidenceLow {
		t.Fatalf("expected Low confidence, got %s", mono.Score.Confidence)
	}

	// The same candidate with the feature present must score at least twice
	// the flagged variant's total.
	colour := &ScoredCandidate{Product: mono.Product, Vendor: mono.Vendor}
	colour.Product.Features = []string{"Duplex", "Colour printing"}
	ScoreCandidate(colour, norm, cfg)

	if colour.Score.Total < 2*mono.Score.Total-1e-9 {
		t.Fatalf("expected halved total for missing critical feature: %v vs %v", mono.Score.Total, colour.Score.Total)
	}
}

func TestScoreCandidate_WeightProfileChangesRanking(t *testing.T) {
	cfg := config.Default()

	fastButPricey := entities.VendorProduct{
		VendorID: "v-fast", Speed: 80, MinVolume: 6000, MaxVolume: 13000,
		Service: entities.ProductService{Level: entities.ServiceLevelBasic},
	}
	slowButCheap := entities.VendorProduct{
		VendorID: "v-cheap", Speed: 25, MinVolume: 6000, MaxVolume: 13000,
		Service: entities.ProductService{Level: entities.ServiceLevelBasic},
	}

	score := func(p entities.VendorProduct, priority entities.Priority, savings entities.Savings) float64 {
		norm := NormalizedRequest{
			MonthlyVolume: entities.MonthlyVolume{Mono: 10000, Total: 10000},
			Priority:      priority,
			MinSpeed:      50,
		}
		c := &ScoredCandidate{Product: p, Costs: entities.QuoteCosts{Savings: savings}}
		ScoreCandidate(c, norm, cfg)
		return c.Score.Total
	}

	cheapSavings := entities.Savings{MonthlyAmount: 200, CurrentMonthly: 250}
	fastSavings := entities.Savings{MonthlyAmount: 0, CurrentMonthly: 250}

	if score(fastButPricey, entities.PrioritySpeed, fastSavings) <= score(slowButCheap, entities.PrioritySpeed, cheapSavings) {
		t.Fatalf("speed priority should prefer the fast machine")
	}
	if score(slowButCheap, entities.PriorityCost, cheapSavings) <= score(fastButPricey, entities.PriorityCost, fastSavings) {
		t.Fatalf("cost priority should prefer the cheap machine")
	}
}
