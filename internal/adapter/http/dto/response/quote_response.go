package response

import (
	"time"

	"tendorai/internal/domain/entities"
)

type ScoreBreakdownResponse struct {
	VolumeMatch      float64 `json:"volume_match"`
	CostEfficiency   float64 `json:"cost_efficiency"`
	SpeedMatch       float64 `json:"speed_match"`
	FeatureMatch     float64 `json:"feature_match"`
	ReliabilityMatch float64 `json:"reliability_match"`
	PaperSizeMatch   float64 `json:"paper_size_match"`
	UrgencyMatch     float64 `json:"urgency_match"`
}

type MatchScoreResponse struct {
	Total      float64                `json:"total"`
	Confidence string                 `json:"confidence"`
	Breakdown  ScoreBreakdownResponse `json:"breakdown"`
	Reasoning  []string               `json:"reasoning,omitempty"`
}

type SavingsResponse struct {
	MonthlyAmount   float64 `json:"monthly_amount"`
	AnnualAmount    float64 `json:"annual_amount"`
	PercentageSaved float64 `json:"percentage_saved"`
	CurrentMonthly  float64 `json:"current_monthly"`
}

type QuoteCostsResponse struct {
	MonoRate         float64         `json:"mono_rate"`
	ColourRate       float64         `json:"colour_rate"`
	MonoCPCCost      float64         `json:"mono_cpc_cost"`
	ColourCPCCost    float64         `json:"colour_cpc_cost"`
	TotalCPCCost     float64         `json:"total_cpc_cost"`
	MonthlyLease     float64         `json:"monthly_lease"`
	MonthlyService   float64         `json:"monthly_service"`
	TotalMonthlyCost float64         `json:"total_monthly_cost"`
	Savings          SavingsResponse `json:"savings"`
}

type LeaseOptionResponse struct {
	TermMonths       int     `json:"term_months"`
	QuarterlyPayment float64 `json:"quarterly_payment"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalCost        float64 `json:"total_cost"`
	IsRecommended    bool    `json:"is_recommended"`
}

type QuoteTermsResponse struct {
	ValidUntil       time.Time `json:"valid_until"`
	DeliveryTime     string    `json:"delivery_time,omitempty"`
	InstallationTime string    `json:"installation_time,omitempty"`
}

type ProductSummaryResponse struct {
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Speed        int      `json:"speed"`
	Features     []string `json:"features,omitempty"`
	PaperSize    string   `json:"paper_size"`
	VolumeRange  string   `json:"volume_range"`
}

type QuoteResponse struct {
	ID             string                 `json:"id"`
	QuoteRequestID string                 `json:"quote_request_id"`
	VendorID       string                 `json:"vendor_id"`
	Ranking        int                    `json:"ranking"`
	Status         string                 `json:"status"`
	MatchScore     MatchScoreResponse     `json:"match_score"`
	Costs          QuoteCostsResponse     `json:"costs"`
	LeaseOptions   []LeaseOptionResponse  `json:"lease_options"`
	Terms          QuoteTermsResponse     `json:"terms"`
	Product        ProductSummaryResponse `json:"product"`
	ViewCount      int                    `json:"view_count"`
	CreatedOrder   string                 `json:"created_order,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	opts := make([]LeaseOptionResponse, 0, len(q.LeaseOptions))
	for _, o := range q.LeaseOptions {
		opts = append(opts, LeaseOptionResponse{
			TermMonths:       o.TermMonths,
			QuarterlyPayment: o.QuarterlyPayment,
			MonthlyPayment:   o.MonthlyPayment,
			TotalCost:        o.TotalCost,
			IsRecommended:    o.IsRecommended,
		})
	}

	return QuoteResponse{
		ID:             q.ID,
		QuoteRequestID: q.QuoteRequestID,
		VendorID:       q.VendorID,
		Ranking:        q.Ranking,
		Status:         string(q.Status),
		MatchScore: MatchScoreResponse{
			Total:      q.MatchScore.Total,
			Confidence: string(q.MatchScore.Confidence),
			Breakdown: ScoreBreakdownResponse{
				VolumeMatch:      q.MatchScore.Breakdown.VolumeMatch,
				CostEfficiency:   q.MatchScore.Breakdown.CostEfficiency,
				SpeedMatch:       q.MatchScore.Breakdown.SpeedMatch,
				FeatureMatch:     q.MatchScore.Breakdown.FeatureMatch,
				ReliabilityMatch: q.MatchScore.Breakdown.ReliabilityMatch,
				PaperSizeMatch:   q.MatchScore.Breakdown.PaperSizeMatch,
				UrgencyMatch:     q.MatchScore.Breakdown.UrgencyMatch,
			},
			Reasoning: q.MatchScore.Reasoning,
		},
		Costs: QuoteCostsResponse{
			MonoRate:         q.Costs.MonoRate,
			ColourRate:       q.Costs.ColourRate,
			MonoCPCCost:      q.Costs.MonoCPCCost,
			ColourCPCCost:    q.Costs.ColourCPCCost,
			TotalCPCCost:     q.Costs.TotalCPCCost,
			MonthlyLease:     q.Costs.MonthlyLease,
			MonthlyService:   q.Costs.MonthlyService,
			TotalMonthlyCost: q.Costs.TotalMonthlyCost,
			Savings: SavingsResponse{
				MonthlyAmount:   q.Costs.Savings.MonthlyAmount,
				AnnualAmount:    q.Costs.Savings.AnnualAmount,
				PercentageSaved: q.Costs.Savings.PercentageSaved,
				CurrentMonthly:  q.Costs.Savings.CurrentMonthly,
			},
		},
		LeaseOptions: opts,
		Terms: QuoteTermsResponse{
			ValidUntil:       q.Terms.ValidUntil,
			DeliveryTime:     q.Terms.DeliveryTime,
			InstallationTime: q.Terms.InstallationTime,
		},
		Product: ProductSummaryResponse{
			Manufacturer: q.ProductSummary.Manufacturer,
			Model:        q.ProductSummary.Model,
			Speed:        q.ProductSummary.Speed,
			Features:     q.ProductSummary.Features,
			PaperSize:    string(q.ProductSummary.PaperSizes.Primary),
			VolumeRange:  string(q.ProductSummary.VolumeRange),
		},
		ViewCount:    q.Metrics.ViewCount,
		CreatedOrder: q.CreatedOrder,
		CreatedAt:    q.CreatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

type GenerateQuotesResponse struct {
	QuoteRequestID string   `json:"quote_request_id"`
	QuoteIDs       []string `json:"quote_ids"`
	Count          int      `json:"count"`
	NextSteps      string   `json:"next_steps,omitempty"`
}

type QuoteListResponse struct {
	QuoteRequestID string          `json:"quote_request_id"`
	Quotes         []QuoteResponse `json:"quotes"`
}

type OrderResponse struct {
	ID             string    `json:"id"`
	QuoteReference string    `json:"quote_reference"`
	QuoteRequestID string    `json:"quote_request_id"`
	VendorID       string    `json:"vendor_id"`
	BuyerID        string    `json:"buyer_id"`
	OrderType      string    `json:"order_type"`
	Status         string    `json:"status"`
	MonthlyCost    float64   `json:"monthly_cost"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		QuoteReference: o.QuoteReference,
		QuoteRequestID: o.QuoteRequestID,
		VendorID:       o.VendorID,
		BuyerID:        o.BuyerID,
		OrderType:      string(o.OrderType),
		Status:         string(o.Status),
		MonthlyCost:    o.MonthlyCost,
		CreatedAt:      o.CreatedAt,
	}
}

type AcceptQuoteResponse struct {
	Quote QuoteResponse `json:"quote"`
	Order OrderResponse `json:"order"`
}
