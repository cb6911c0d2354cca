package interfaces

import (
	"context"

	"tendorai/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order. The engine only
// creates orders, on quote acceptance.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
}
