package entities

import "time"

// OrderType distinguishes how an order came to exist. The engine only ever
// produces quote acceptances.

type OrderType string

const (
	OrderTypeQuoteAcceptance OrderType = "quote_acceptance"
)

// OrderStatus is the fulfilment state of an order. The engine creates orders
// in status created; fulfilment is owned by the surrounding system.

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order records a buyer's acceptance of a quote.
//
// Storage model (DynamoDB):
//   - PK: id
type Order struct {
	ID             string      `json:"id"`
	QuoteReference string      `json:"quote_reference"`
	QuoteRequestID string      `json:"quote_request_id"`
	VendorID       string      `json:"vendor_id"`
	BuyerID        string      `json:"buyer_id"`
	OrderType      OrderType   `json:"order_type"`
	Status         OrderStatus `json:"status"`
	MonthlyCost    float64     `json:"monthly_cost"`
	CreatedAt      time.Time   `json:"created_at"`
}
