package usecase

import (
	"context"
	"fmt"

	"tendorai/internal/domain/entities"
	"tendorai/internal/usecase/interfaces"
)

// Candidate pairs a selectable catalog row with its (active) vendor.
type Candidate struct {
	Product entities.VendorProduct
	Vendor  entities.Vendor
}

// selectCandidates queries the catalog for in-stock products whose rated
// volume window overlaps the buyer's total, then applies the paper-size rule
// and drops products whose vendor is not active. Ordering is irrelevant at
// this stage. A data store failure surfaces as ErrCatalogUnavailable.
func (u *QuoteEngineUseCase) selectCandidates(ctx context.Context, norm NormalizedRequest) ([]Candidate, error) {
	window := u.cfg.Engine.CandidateWindow
	query := interfaces.CandidateQuery{
		VolumeRange:      norm.VolumeRange,
		MinVolumeCeiling: int(window.UpperMultiplier * float64(norm.MonthlyVolume.Total)),
		MaxVolumeFloor:   int(window.LowerMultiplier * float64(norm.MonthlyVolume.Total)),
	}

	products, err := u.products.FindCandidates(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if norm.PrimarySize != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.PaperSizes.Supports(norm.PrimarySize) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if len(products) == 0 {
		return nil, nil
	}

	vendorIDs := make([]string, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if !seen[p.VendorID] {
			seen[p.VendorID] = true
			vendorIDs = append(vendorIDs, p.VendorID)
		}
	}

	vendors, err := u.vendors.ListActiveByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	candidates := make([]Candidate, 0, len(products))
	for _, p := range products {
		vendor, active := vendors[p.VendorID]
		if !active {
			continue
		}
		candidates = append(candidates, Candidate{Product: p, Vendor: vendor})
	}
	return candidates, nil
}
