package entities

import "time"

// QuoteStatus represents the lifecycle of a generated offer. Transitions are
// forward-only; the engine only ever creates quotes in status generated.

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusGenerated QuoteStatus = "generated"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusViewed    QuoteStatus = "viewed"
	QuoteStatusContacted QuoteStatus = "contacted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusWithdrawn QuoteStatus = "withdrawn"
	QuoteStatusConverted QuoteStatus = "converted"
)

// Acceptable reports whether a buyer may still accept a quote in this status.
func (s QuoteStatus) Acceptable() bool {
	switch s {
	case QuoteStatusGenerated, QuoteStatusSent, QuoteStatusViewed, QuoteStatusContacted:
		return true
	}
	return false
}

// Confidence is the coarse trust band attached to a match score.

type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ScoreBreakdown holds the per-factor sub-scores. All values live on [0,1]
// except CostEfficiency, which keeps its sign on [-1,1] for display; the
// aggregate clamps it to zero from below.
type ScoreBreakdown struct {
	VolumeMatch      float64 `json:"volume_match"`
	CostEfficiency   float64 `json:"cost_efficiency"`
	SpeedMatch       float64 `json:"speed_match"`
	FeatureMatch     float64 `json:"feature_match"`
	ReliabilityMatch float64 `json:"reliability_match"`
	PaperSizeMatch   float64 `json:"paper_size_match"`
	UrgencyMatch     float64 `json:"urgency_match"`
}

// MatchScore is the scoring result persisted on a quote.
type MatchScore struct {
	Total      float64        `json:"total"`
	Confidence Confidence     `json:"confidence"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	Reasoning  []string       `json:"reasoning,omitempty"`
}

// Savings compares the proposed monthly cost against the buyer's current setup.
type Savings struct {
	MonthlyAmount   float64 `json:"monthly_amount"`
	AnnualAmount    float64 `json:"annual_amount"`
	PercentageSaved float64 `json:"percentage_saved"`
	CurrentMonthly  float64 `json:"current_monthly"`
}

// QuoteCosts is the full monthly cost synthesis for a quote.
type QuoteCosts struct {
	MonoRate         float64 `json:"mono_rate"`
	ColourRate       float64 `json:"colour_rate"`
	MonoCPCCost      float64 `json:"mono_cpc_cost"`
	ColourCPCCost    float64 `json:"colour_cpc_cost"`
	TotalCPCCost     float64 `json:"total_cpc_cost"`
	MonthlyLease     float64 `json:"monthly_lease"`
	MonthlyService   float64 `json:"monthly_service"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
	Savings          Savings `json:"savings"`
}

// LeaseOption is one lease term offer. Quarterly is the billing cadence;
// MonthlyPayment is always Quarterly/3.
type LeaseOption struct {
	TermMonths       int     `json:"term_months"`
	QuarterlyPayment float64 `json:"quarterly_payment"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalCost        float64 `json:"total_cost"`
	Margin           float64 `json:"margin,omitempty"`
	IsRecommended    bool    `json:"is_recommended"`
}

// QuoteTerms are the contractual boundaries of the offer.
type QuoteTerms struct {
	ValidUntil         time.Time `json:"valid_until"`
	DeliveryTime       string    `json:"delivery_time,omitempty"`
	InstallationTime   string    `json:"installation_time,omitempty"`
	PaymentTerms       string    `json:"payment_terms,omitempty"`
	CancellationPolicy string    `json:"cancellation_policy,omitempty"`
}

// ProductSummary is a denormalised snapshot of the matched product so a quote
// renders correctly even after the catalog row is edited or delisted.
type ProductSummary struct {
	Manufacturer string      `json:"manufacturer"`
	Model        string      `json:"model"`
	Speed        int         `json:"speed"`
	Features     []string    `json:"features,omitempty"`
	PaperSizes   PaperSizes  `json:"paper_sizes"`
	VolumeRange  VolumeRange `json:"volume_range"`
}

// UserRequirements snapshots the buyer context at generation time so the offer
// stays reconstructable after the buyer edits the request.
type UserRequirements struct {
	MonthlyVolume MonthlyVolume `json:"monthly_volume"`
	PaperSize     PaperSize     `json:"paper_size"`
	Priority      Priority      `json:"priority"`
	MaxLeasePrice float64       `json:"max_lease_price,omitempty"`
}

// CustomerAction is one entry in the per-quote audit log.
type CustomerAction struct {
	Action string    `json:"action"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// DecisionDetails are set on accept/reject only. AcceptedAt is set once and
// never cleared.
type DecisionDetails struct {
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// QuoteMetrics tracks buyer engagement with the offer.
type QuoteMetrics struct {
	ViewCount      int `json:"view_count"`
	TimeToDecision int `json:"time_to_decision_minutes,omitempty"`
	TimeToView     int `json:"time_to_view_minutes,omitempty"`
}

// QuoteMetadata records corrections the assembler applied before persistence,
// e.g. sub-scores clamped back into their declared range.
type QuoteMetadata struct {
	ClampedScores []string `json:"clamped_scores,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Quote is the engine's output: a durable, shareable offer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_request_id-index): quote_request_id
//   - rank_key = quote_request_id#ranking enforces ranking uniqueness per
//     request via a conditional put.
//
// The quote is an immutable offer snapshot; after generation only lifecycle
// fields mutate (Status, CustomerActions, Metrics, DecisionDetails,
// CreatedOrder).

type Quote struct {
	ID             string `json:"id"`
	QuoteRequestID string `json:"quote_request_id"`
	VendorID       string `json:"vendor_id"`
	ProductID      string `json:"product_id"`
	Ranking        int    `json:"ranking"`

	MatchScore       MatchScore       `json:"match_score"`
	Costs            QuoteCosts       `json:"costs"`
	UserRequirements UserRequirements `json:"user_requirements"`
	LeaseOptions     []LeaseOption    `json:"lease_options"`
	Terms            QuoteTerms       `json:"terms"`
	ProductSummary   ProductSummary   `json:"product_summary"`

	Status          QuoteStatus      `json:"status"`
	CustomerActions []CustomerAction `json:"customer_actions"`
	DecisionDetails DecisionDetails  `json:"decision_details"`
	Metrics         QuoteMetrics     `json:"metrics"`
	Metadata        QuoteMetadata    `json:"metadata"`
	CreatedOrder    string           `json:"created_order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecommendedLease returns the single lease option flagged as recommended.
func (q Quote) RecommendedLease() (LeaseOption, bool) {
	for _, opt := range q.LeaseOptions {
		if opt.IsRecommended {
			return opt, true
		}
	}
	return LeaseOption{}, false
}

// Expired reports whether the offer validity window has passed.
func (q Quote) Expired(now time.Time) bool {
	return q.Terms.ValidUntil.Before(now)
}
