package interfaces

import (
	"context"

	"tendorai/internal/domain/entities"
)

// IVendorRepository abstracts read-only DynamoDB access to vendors. The engine
// never writes this collection.

type IVendorRepository interface {
	GetByID(ctx context.Context, id string) (entities.Vendor, error)
	// ListActiveByIDs resolves the given vendor ids and returns only those
	// with status=active, keyed by id.
	ListActiveByIDs(ctx context.Context, ids []string) (map[string]entities.Vendor, error)
}
