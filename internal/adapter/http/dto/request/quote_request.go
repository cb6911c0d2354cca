package request

import "strings"

// GenerateQuotesRequest triggers the matching engine for a quote request.
//
// submitted_by must match the request owner; the engine treats a mismatch the
// same as an unknown id so callers cannot enumerate other buyers' requests.
type GenerateQuotesRequest struct {
	SubmittedBy string `json:"submitted_by" binding:"required"`
	DeadlineMs  int    `json:"deadline_ms"`
	Retry       bool   `json:"retry"`
	SampleOnly  bool   `json:"sample_only"`
}

func (r GenerateQuotesRequest) ResolveSubmittedBy() string {
	return strings.TrimSpace(r.SubmittedBy)
}

// RejectQuoteRequest carries the optional buyer reason for declining an offer.
type RejectQuoteRequest struct {
	Reason string `json:"reason"`
}

func (r RejectQuoteRequest) ResolveReason() string {
	return strings.TrimSpace(r.Reason)
}
