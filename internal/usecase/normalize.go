package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"
)

// NormalizedRequest is the canonical requirement consumed by every stage after
// the normaliser. Legacy intake aliases never leave this adapter.
type NormalizedRequest struct {
	ID          string
	SubmittedBy string
	CompanyName string

	MonthlyVolume entities.MonthlyVolume
	VolumeRange   entities.VolumeRange

	PrimarySize     entities.PaperSize
	AdditionalSizes []entities.PaperSize

	Priority          entities.Priority
	EssentialFeatures []string
	MinSpeed          int
	ColourRequired    bool

	MaxLeasePrice       float64
	PreferredTermMonths int

	Timeframe string

	// Current setup, converted to pounds per page and quarterly amounts.
	CurrentMonoRate       float64
	CurrentColourRate     float64
	CurrentQuarterlyLease float64
	CurrentQuarterlyServ  float64

	MultipleFloors     bool
	NumOfficeLocations int
}

// minSpeedDefaults maps each volume bucket to the monotone ppm default applied
// when the buyer states no minimum speed.
var minSpeedDefaults = map[entities.VolumeRange]int{
	entities.VolumeRange0To6k:   20,
	entities.VolumeRange6To13k:  25,
	entities.VolumeRange13To20k: 30,
	entities.VolumeRange20To30k: 35,
	entities.VolumeRange30To40k: 45,
	entities.VolumeRange40To50k: 55,
	entities.VolumeRange50kPlus: 65,
}

const defaultPreferredTermMonths = 60

var allowedTerms = map[int]bool{12: true, 24: true, 36: true, 48: true, 60: true, 72: true}

// NormalizeRequest converts a loosely-typed buyer document into the canonical
// form, populating documented defaults for every absent field. It fails with
// ErrInvalidRequest when the company name or the monthly volume is missing, or
// when the volume is negative.
func NormalizeRequest(req entities.QuoteRequest, cfg config.Config) (NormalizedRequest, error) {
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return NormalizedRequest{}, fmt.Errorf("%w: company name is required", ErrInvalidRequest)
	}

	mono := req.MonthlyVolume.Mono
	colour := req.MonthlyVolume.Colour
	if mono < 0 || colour < 0 {
		return NormalizedRequest{}, fmt.Errorf("%w: monthly volume cannot be negative", ErrInvalidRequest)
	}
	total := mono + colour
	if total <= 0 {
		return NormalizedRequest{}, fmt.Errorf("%w: monthly volume is required", ErrInvalidRequest)
	}

	volumeRange := entities.VolumeRangeFor(total)

	submittedBy := strings.TrimSpace(req.SubmittedBy)
	if submittedBy == "" {
		submittedBy = strings.TrimSpace(req.UserID)
	}

	priority := req.Requirements.Priority
	switch priority {
	case entities.PriorityCost, entities.PrioritySpeed, entities.PriorityQuality,
		entities.PriorityReliability, entities.PriorityBalanced:
	default:
		priority = entities.PriorityBalanced
	}

	minSpeed := req.Requirements.MinSpeed
	if minSpeed <= 0 {
		minSpeed = minSpeedDefaults[volumeRange]
	}

	colourRequired := colour > 0
	switch strings.ToLower(strings.TrimSpace(req.ColourPreference)) {
	case "yes", "true":
		colourRequired = true
	case "no", "false":
		colourRequired = false
	}

	// Rates arrive in pence per page; everything downstream works in pounds.
	monoRate := req.CurrentSetup.CurrentCosts.MonoRate / 100
	if req.CurrentSetup.CurrentCosts.MonoRate <= 0 {
		monoRate = cfg.Cost.Defaults.MonoRate
	}
	colourRate := req.CurrentSetup.CurrentCosts.ColourRate / 100
	if req.CurrentSetup.CurrentCosts.ColourRate <= 0 {
		colourRate = cfg.Cost.Defaults.ColourRate
	}

	multipleFloors := false
	if req.MultipleFloors != nil {
		multipleFloors = *req.MultipleFloors
	} else if req.MultiFloorLegacy != nil {
		multipleFloors = *req.MultiFloorLegacy
	}

	numLocations := 1
	if req.NumOfficeLocations != nil {
		numLocations = *req.NumOfficeLocations
	} else if req.NumLocationsLegacy != nil {
		numLocations = *req.NumLocationsLegacy
	}
	if numLocations < 1 {
		numLocations = 1
	}

	return NormalizedRequest{
		ID:          req.ID,
		SubmittedBy: submittedBy,
		CompanyName: companyName,

		MonthlyVolume: entities.MonthlyVolume{Mono: mono, Colour: colour, Total: total},
		VolumeRange:   volumeRange,

		PrimarySize:     req.PaperRequirements.PrimarySize,
		AdditionalSizes: req.PaperRequirements.AdditionalSizes,

		Priority:          priority,
		EssentialFeatures: req.Requirements.EssentialFeatures,
		MinSpeed:          minSpeed,
		ColourRequired:    colourRequired,

		MaxLeasePrice:       req.Budget.MaxLeasePrice,
		PreferredTermMonths: parsePreferredTerm(req.Budget.PreferredTerm),

		Timeframe: strings.TrimSpace(req.Urgency.Timeframe),

		CurrentMonoRate:       monoRate,
		CurrentColourRate:     colourRate,
		CurrentQuarterlyLease: req.CurrentSetup.CurrentCosts.QuarterlyLeaseCost,
		CurrentQuarterlyServ:  req.CurrentSetup.CurrentCosts.QuarterlyService,

		MultipleFloors:     multipleFloors,
		NumOfficeLocations: numLocations,
	}, nil
}

// parsePreferredTerm maps intake strings like "60 months" (or bare "60") to
// integer months, defaulting to 60 for anything unrecognised.
func parsePreferredTerm(raw string) int {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return defaultPreferredTermMonths
	}
	months, err := strconv.Atoi(fields[0])
	if err != nil || !allowedTerms[months] {
		return defaultPreferredTermMonths
	}
	return months
}
