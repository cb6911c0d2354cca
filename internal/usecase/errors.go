package usecase

import "errors"

var (
	// ErrInvalidRequest means the buyer document cannot be normalised. The
	// orchestrator cancels the request and surfaces this to the caller.
	ErrInvalidRequest = errors.New("invalid quote request")
	// ErrRequestNotFound means an unknown quote request id. No mutation.
	ErrRequestNotFound = errors.New("quote request not found")
	// ErrCatalogUnavailable wraps a data store read failure during candidate
	// selection. Retryable; no mutation.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	ErrQuoteNotFound        = errors.New("quote not found")
	ErrQuoteAlreadyAccepted = errors.New("quote already accepted")
	ErrQuoteNotAcceptable   = errors.New("quote not in an acceptable status")
	ErrQuoteExpired         = errors.New("quote expired")
)

// RiskNoMatches is recorded on a request when the pipeline produced no quotes.
// The surrounding system keys retries off this exact text.
const RiskNoMatches = "No immediate matches found - will retry"

// RiskDeadlineExceeded is recorded when the orchestrator deadline cut a batch
// short. Already-persisted quotes stay intact.
const RiskDeadlineExceeded = "deadline exceeded"
