package interfaces

import (
	"context"

	"tendorai/internal/domain/entities"
)

// CandidateQuery is the catalog filter evaluated in the data store. Volume
// bounds come pre-multiplied by the candidate window so the repository stays
// free of engine tuning.
type CandidateQuery struct {
	// VolumeRange matches the buyer's bucket exactly.
	VolumeRange entities.VolumeRange
	// MinVolumeCeiling / MaxVolumeFloor define the overlap window accepted as
	// an alternative to an exact bucket match: min_volume <= MinVolumeCeiling
	// AND max_volume >= MaxVolumeFloor.
	MinVolumeCeiling int
	MaxVolumeFloor   int
}

// IVendorProductRepository abstracts read-only DynamoDB access to the catalog.
// Only in-stock products are returned; paper-size and vendor-status rules are
// applied by the selector.

type IVendorProductRepository interface {
	FindCandidates(ctx context.Context, q CandidateQuery) ([]entities.VendorProduct, error)
}
