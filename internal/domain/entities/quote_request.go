package entities

import "time"

// QuoteRequestStatus represents the lifecycle of a buyer requirement.
//
// The engine drives pending -> processing -> matched (or cancelled on invalid
// input). quotes_sent and completed are advanced by the surrounding system.

type QuoteRequestStatus string

const (
	QuoteRequestStatusPending    QuoteRequestStatus = "pending"
	QuoteRequestStatusProcessing QuoteRequestStatus = "processing"
	QuoteRequestStatusMatched    QuoteRequestStatus = "matched"
	QuoteRequestStatusQuotesSent QuoteRequestStatus = "quotes_sent"
	QuoteRequestStatusCompleted  QuoteRequestStatus = "completed"
	QuoteRequestStatusCancelled  QuoteRequestStatus = "cancelled"
)

// Priority is the buyer's stated optimisation axis. It selects the scoring
// weight profile.

type Priority string

const (
	PriorityCost        Priority = "cost"
	PrioritySpeed       Priority = "speed"
	PriorityQuality     Priority = "quality"
	PriorityReliability Priority = "reliability"
	PriorityBalanced    Priority = "balanced"
)

// MonthlyVolume is the buyer's page volume split. Total must equal Mono+Colour.
type MonthlyVolume struct {
	Mono   int `json:"mono"`
	Colour int `json:"colour"`
	Total  int `json:"total"`
}

// PaperRequirements captures the formats the buyer needs.
type PaperRequirements struct {
	PrimarySize     PaperSize   `json:"primary_size,omitempty"`
	AdditionalSizes []PaperSize `json:"additional_sizes,omitempty"`
	SpecialPaper    bool        `json:"special_paper,omitempty"`
}

// CurrentCosts are the buyer's present per-page and contract costs. Rates are
// pence per page; lease and service are quarterly amounts.
type CurrentCosts struct {
	MonoRate           float64 `json:"mono_rate,omitempty"`
	ColourRate         float64 `json:"colour_rate,omitempty"`
	QuarterlyLeaseCost float64 `json:"quarterly_lease_cost,omitempty"`
	QuarterlyService   float64 `json:"quarterly_service,omitempty"`
}

// CurrentSetup describes the incumbent machine and contract.
type CurrentSetup struct {
	CurrentCosts    CurrentCosts `json:"current_costs"`
	ContractEndDate *time.Time   `json:"contract_end_date,omitempty"`
}

// Requirements are the buyer's hard asks.
type Requirements struct {
	Priority          Priority `json:"priority,omitempty"`
	EssentialFeatures []string `json:"essential_features,omitempty"`
	MinSpeed          int      `json:"min_speed,omitempty"`
}

// Budget bounds the acceptable lease. PreferredTerm is stored the way the
// intake form sends it ("60 months"); the normalizer maps it to integer months.
type Budget struct {
	MaxLeasePrice float64 `json:"max_lease_price,omitempty"`
	PreferredTerm string  `json:"preferred_term,omitempty"`
}

// Urgency is the buyer's delivery window.
type Urgency struct {
	Timeframe string `json:"timeframe,omitempty"`
}

// Location is the delivery address at region granularity.
type Location struct {
	Postcode string `json:"postcode,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
}

// AIAnalysis is the engine's diagnostic annotation on a request.
type AIAnalysis struct {
	Processed       bool       `json:"processed"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	RiskFactors     []string   `json:"risk_factors,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// QuoteRequest is the buyer's canonical requirement document.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Intake payloads are heterogeneous; a few legacy aliases survive in stored
// documents (MultiFloorLegacy, ColourPreference, NumLocationsLegacy, UserID).
// The normalizer coerces them into canonical fields and nothing downstream of
// it may read them.

type QuoteRequest struct {
	ID          string `json:"id"`
	SubmittedBy string `json:"submitted_by"`
	CompanyName string `json:"company_name"`

	MonthlyVolume     MonthlyVolume     `json:"monthly_volume"`
	VolumeRange       VolumeRange       `json:"volume_range,omitempty"`
	PaperRequirements PaperRequirements `json:"paper_requirements"`
	CurrentSetup      CurrentSetup      `json:"current_setup"`
	Requirements      Requirements      `json:"requirements"`
	Budget            Budget            `json:"budget"`
	Urgency           Urgency           `json:"urgency"`
	Location          Location          `json:"location"`

	MultipleFloors     *bool  `json:"multiple_floors,omitempty"`
	NumOfficeLocations *int   `json:"num_office_locations,omitempty"`
	MultiFloorLegacy   *bool  `json:"multi_floor,omitempty"`
	ColourPreference   string `json:"colour,omitempty"`
	NumLocationsLegacy *int   `json:"num_locations,omitempty"`
	UserID             string `json:"user_id,omitempty"`

	Status     QuoteRequestStatus `json:"status"`
	AIAnalysis AIAnalysis         `json:"ai_analysis"`
	Quotes     []string           `json:"quotes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
