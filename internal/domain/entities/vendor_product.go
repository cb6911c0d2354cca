package entities

import "time"

// VolumeRange is the discrete bucket categorising monthly page volume. It is
// the coarse index shared by catalog rows and buyer requests.

type VolumeRange string

const (
	VolumeRange0To6k   VolumeRange = "0-6k"
	VolumeRange6To13k  VolumeRange = "6k-13k"
	VolumeRange13To20k VolumeRange = "13k-20k"
	VolumeRange20To30k VolumeRange = "20k-30k"
	VolumeRange30To40k VolumeRange = "30k-40k"
	VolumeRange40To50k VolumeRange = "40k-50k"
	VolumeRange50kPlus VolumeRange = "50k+"
)

// VolumeRangeFor derives the bucket containing the given total monthly volume.
func VolumeRangeFor(total int) VolumeRange {
	switch {
	case total < 6000:
		return VolumeRange0To6k
	case total < 13000:
		return VolumeRange6To13k
	case total < 20000:
		return VolumeRange13To20k
	case total < 30000:
		return VolumeRange20To30k
	case total < 40000:
		return VolumeRange30To40k
	case total < 50000:
		return VolumeRange40To50k
	default:
		return VolumeRange50kPlus
	}
}

// PaperSize is an ISO paper format handled by a device.

type PaperSize string

const (
	PaperSizeA4   PaperSize = "A4"
	PaperSizeA3   PaperSize = "A3"
	PaperSizeSRA3 PaperSize = "SRA3"
)

// PaperSizes describes the formats a product can print.
type PaperSizes struct {
	Primary   PaperSize   `json:"primary"`
	Supported []PaperSize `json:"supported,omitempty"`
}

// Supports reports whether the product handles the given size. Legacy catalog
// rows carry no supported list; for those the primary size is authoritative.
func (p PaperSizes) Supports(size PaperSize) bool {
	if len(p.Supported) == 0 {
		return p.Primary == size
	}
	for _, s := range p.Supported {
		if s == size {
			return true
		}
	}
	return false
}

// CPCRates are per-page rates in pence for each paper/colour combination.
type CPCRates struct {
	A4Mono   float64 `json:"a4_mono"`
	A4Colour float64 `json:"a4_colour"`
	A3Mono   float64 `json:"a3_mono"`
	A3Colour float64 `json:"a3_colour"`
}

// ProductCosts is the commercial breakdown behind a catalog row.
type ProductCosts struct {
	MachineCost      float64  `json:"machine_cost"`
	Installation     float64  `json:"installation"`
	ProfitMargin     float64  `json:"profit_margin"`
	TotalMachineCost float64  `json:"total_machine_cost"`
	CPCRates         CPCRates `json:"cpc_rates"`
}

// LeaseRates are quarterly lease payments per contract term. A zero value
// means the vendor publishes no rate for that term.
type LeaseRates struct {
	Term36 float64 `json:"term_36"`
	Term48 float64 `json:"term_48"`
	Term60 float64 `json:"term_60"`
	Term72 float64 `json:"term_72"`
}

// ForTerm returns the quarterly rate for a term in months, false when unset.
func (l LeaseRates) ForTerm(months int) (float64, bool) {
	var rate float64
	switch months {
	case 36:
		rate = l.Term36
	case 48:
		rate = l.Term48
	case 60:
		rate = l.Term60
	case 72:
		rate = l.Term72
	}
	return rate, rate > 0
}

// ServiceLevel is the vendor's support tier for a product.

type ServiceLevel string

const (
	ServiceLevelPremium  ServiceLevel = "Premium"
	ServiceLevelStandard ServiceLevel = "Standard"
	ServiceLevelBasic    ServiceLevel = "Basic"
)

// ProductService describes the support package attached to a product.
type ProductService struct {
	Level                ServiceLevel `json:"level"`
	ResponseTime         string       `json:"response_time,omitempty"`
	QuarterlyServiceCost float64      `json:"quarterly_service_cost,omitempty"`
}

// Availability describes whether and how fast a product can be delivered.
type Availability struct {
	InStock            bool `json:"in_stock"`
	LeadTimeDays       int  `json:"lead_time_days"`
	InstallationWindow int  `json:"installation_window_days,omitempty"`
}

// VendorProduct is a catalog row, the unit of matching.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (vendor_id-index): vendor_id
//
// Invariants: MinVolume <= MaxVolume; CPC rates are non-negative; a product is
// selectable only while Availability.InStock is true.

type VendorProduct struct {
	ID       string `json:"id"`
	VendorID string `json:"vendor_id"`

	Manufacturer string      `json:"manufacturer"`
	Model        string      `json:"model"`
	Speed        int         `json:"speed"`
	Features     []string    `json:"features,omitempty"`
	PaperSizes   PaperSizes  `json:"paper_sizes"`
	VolumeRange  VolumeRange `json:"volume_range"`
	MinVolume    int         `json:"min_volume"`
	MaxVolume    int         `json:"max_volume"`

	SalePrice  float64      `json:"sale_price,omitempty"`
	Costs      ProductCosts `json:"costs"`
	LeaseRates LeaseRates   `json:"lease_rates"`

	Service      ProductService `json:"service"`
	Availability Availability   `json:"availability"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasFeature reports whether the product lists the feature verbatim.
func (p VendorProduct) HasFeature(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}
