package entities

import "time"

// VendorStatus represents the operational state of a vendor account.
//
// Only active vendors may surface in candidate results; the selector treats
// every other status as invisible.

type VendorStatus string

const (
	VendorStatusActive    VendorStatus = "active"
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusSuspended VendorStatus = "suspended"
	VendorStatusDisabled  VendorStatus = "disabled"
)

// VendorTier is the commercial plan the vendor is subscribed to.

type VendorTier string

const (
	VendorTierFree       VendorTier = "free"
	VendorTierStarter    VendorTier = "starter"
	VendorTierPro        VendorTier = "pro"
	VendorTierEnterprise VendorTier = "enterprise"
)

// SubscriptionStatus mirrors the billing provider's view of the vendor plan.

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionNone      SubscriptionStatus = "none"
)

// Vendor is a supplier account in the marketplace.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The engine reads vendors only to enforce the status=active invariant and to
// feed the reliability sub-score; it never writes them.

type Vendor struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Slug        string `json:"slug"`

	Tier                 VendorTier         `json:"tier"`
	SubscriptionStatus   SubscriptionStatus `json:"subscription_status"`
	StripeCustomerID     string             `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string             `json:"stripe_subscription_id,omitempty"`

	Status    VendorStatus `json:"status"`
	Locations []string     `json:"locations,omitempty"`
	Services  []string     `json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Selectable reports whether the vendor may appear in candidate results.
func (v Vendor) Selectable() bool {
	return v.Status == VendorStatusActive
}
