package usecase

import (
	"errors"
	"testing"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"
)

func TestNormalizeRequest_Validation(t *testing.T) {
	cfg := config.Default()

	t.Run("missing company name", func(t *testing.T) {
		req := entities.QuoteRequest{
			CompanyName:   "   ",
			MonthlyVolume: entities.MonthlyVolume{Mono: 1000},
		}
		_, err := NormalizeRequest(req, cfg)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("negative volume", func(t *testing.T) {
		req := entities.QuoteRequest{
			CompanyName:   "Acme",
			MonthlyVolume: entities.MonthlyVolume{Mono: -1, Colour: 500},
		}
		_, err := NormalizeRequest(req, cfg)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("zero volume", func(t *testing.T) {
		req := entities.QuoteRequest{CompanyName: "Acme"}
		_, err := NormalizeRequest(req, cfg)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	})
}

func TestNormalizeRequest_Defaults(t *testing.T) {
	cfg := config.Default()

	req := entities.QuoteRequest{
		ID:            "qr-1",
		CompanyName:   "Acme Ltd",
		UserID:        "user-7",
		MonthlyVolume: entities.MonthlyVolume{Mono: 9000, Colour: 0},
	}

	norm, err := NormalizeRequest(req, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if norm.MonthlyVolume.Total != 9000 {
		t.Fatalf("expected total 9000, got %d", norm.MonthlyVolume.Total)
	}
	if norm.VolumeRange != entities.VolumeRange6To13k {
		t.Fatalf("expected 6k-13k bucket, got %s", norm.VolumeRange)
	}
	if norm.SubmittedBy != "user-7" {
		t.Fatalf("expected legacy user id fallback, got %q", norm.SubmittedBy)
	}
	if norm.Priority != entities.PriorityBalanced {
		t.Fatalf("expected balanced priority default, got %s", norm.Priority)
	}
	if norm.MinSpeed != 25 {
		t.Fatalf("expected bucket speed default 25, got %d", norm.MinSpeed)
	}
	if norm.ColourRequired {
		t.Fatalf("expected colour not required for mono-only volume")
	}
	if norm.PreferredTermMonths != 60 {
		t.Fatalf("expected default preferred term 60, got %d", norm.PreferredTermMonths)
	}
	if norm.CurrentMonoRate != cfg.Cost.Defaults.MonoRate {
		t.Fatalf("expected default mono rate, got %v", norm.CurrentMonoRate)
	}
	if norm.NumOfficeLocations != 1 {
		t.Fatalf("expected single location default, got %d", norm.NumOfficeLocations)
	}
}

func TestNormalizeRequest_RateConversionAndAliases(t *testing.T) {
	cfg := config.Default()
	legacyFloors := true
	legacyLocations := 3

	req := entities.QuoteRequest{
		ID:          "qr-2",
		SubmittedBy: "buyer-1",
		CompanyName: "Print Co",
		MonthlyVolume: entities.MonthlyVolume{
			Mono: 4000, Colour: 2000,
			// Stored totals are untrusted; the normaliser recomputes.
			Total: 999,
		},
		CurrentSetup: entities.CurrentSetup{
			CurrentCosts: entities.CurrentCosts{
				MonoRate:           1.2,
				ColourRate:         6.5,
				QuarterlyLeaseCost: 900,
				QuarterlyService:   150,
			},
		},
		Requirements: entities.Requirements{
			Priority: entities.PriorityCost,
			MinSpeed: 40,
		},
		Budget:             entities.Budget{PreferredTerm: "48 months"},
		ColourPreference:   "no",
		MultiFloorLegacy:   &legacyFloors,
		NumLocationsLegacy: &legacyLocations,
	}

	norm, err := NormalizeRequest(req, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if norm.MonthlyVolume.Total != 6000 {
		t.Fatalf("expected recomputed total 6000, got %d", norm.MonthlyVolume.Total)
	}
	if norm.VolumeRange != entities.VolumeRange6To13k {
		t.Fatalf("expected 6k-13k bucket, got %s", norm.VolumeRange)
	}
	if norm.CurrentMonoRate != 0.012 {
		t.Fatalf("expected 1.2p converted to 0.012, got %v", norm.CurrentMonoRate)
	}
	if norm.CurrentColourRate != 0.065 {
		t.Fatalf("expected 6.5p converted to 0.065, got %v", norm.CurrentColourRate)
	}
	if norm.ColourRequired {
		t.Fatalf("expected explicit colour preference to override volume")
	}
	if norm.PreferredTermMonths != 48 {
		t.Fatalf("expected preferred term 48, got %d", norm.PreferredTermMonths)
	}
	if !norm.MultipleFloors {
		t.Fatalf("expected legacy multi_floor alias to apply")
	}
	if norm.NumOfficeLocations != 3 {
		t.Fatalf("expected legacy num_locations alias to apply, got %d", norm.NumOfficeLocations)
	}
	if norm.MinSpeed != 40 {
		t.Fatalf("expected explicit min speed kept, got %d", norm.MinSpeed)
	}
}

func TestParsePreferredTerm(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"60 months", 60},
		{"36", 36},
		{"", 60},
		{"soon", 60},
		{"13 months", 60},
	}
	for _, tc := range cases {
		if got := parsePreferredTerm(tc.in); got != tc.want {
			t.Fatalf("parsePreferredTerm(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestVolumeRangeFor_Boundaries(t *testing.T) {
	cases := []struct {
		total int
		want  entities.VolumeRange
	}{
		{0, entities.VolumeRange0To6k},
		{5999, entities.VolumeRange0To6k},
		{6000, entities.VolumeRange6To13k},
		{12999, entities.VolumeRange6To13k},
		{13000, entities.VolumeRange13To20k},
		{20000, entities.VolumeRange20To30k},
		{30000, entities.VolumeRange30To40k},
		{40000, entities.VolumeRange40To50k},
		{50000, entities.VolumeRange50kPlus},
		{120000, entities.VolumeRange50kPlus},
	}
	for _, tc := range cases {
		if got := entities.VolumeRangeFor(tc.total); got != tc.want {
			t.Fatalf("VolumeRangeFor(%d) = %s, want %s", tc.total, got, tc.want)
		}
	}
}
