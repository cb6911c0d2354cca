package usecase

import (
	"fmt"
	"math"

	"tendorai/internal/config"
	"tendorai/internal/domain/entities"
)

// leaseTerms are the contract lengths the engine synthesises, in months.
var leaseTerms = [...]int{36, 48, 60, 72}

// leaseTermMultipliers shape the synthetic quarterly payment when a vendor
// publishes no lease rates: shorter contracts carry a premium, longer ones a
// discount, relative to straight amortisation of the machine cost.
var leaseTermMultipliers = map[int]float64{
	36: 1.15,
	48: 1.00,
	60: 0.88,
	72: 0.90,
}

// serviceFallbackFraction prices service at a fixed fraction of CPC+lease when
// the vendor quotes no service cost.
const serviceFallbackFraction = 0.10

// SynthesizeCosts computes monthly CPC cost, the lease option ladder and the
// savings against the buyer's current setup for one candidate. Missing vendor
// rates are substituted with the configured defaults and noted; the function
// never fails. Monetary values keep full precision here; rounding happens at
// the persistence boundary.
func SynthesizeCosts(p entities.VendorProduct, norm NormalizedRequest, cfg config.Config) (entities.QuoteCosts, []entities.LeaseOption, []string) {
	var notes []string

	// Paper size drives the CPC column; anything that is not A3 bills at A4.
	size := entities.PaperSizeA4
	if norm.PrimarySize == entities.PaperSizeA3 {
		size = entities.PaperSizeA3
	}

	monoPence, colourPence := p.Costs.CPCRates.A4Mono, p.Costs.CPCRates.A4Colour
	if size == entities.PaperSizeA3 {
		monoPence, colourPence = p.Costs.CPCRates.A3Mono, p.Costs.CPCRates.A3Colour
	}

	monoRate := monoPence / 100
	if monoPence <= 0 && norm.MonthlyVolume.Mono > 0 {
		monoRate = cfg.Cost.Defaults.MonoRate
		notes = append(notes, fmt.Sprintf("No %s mono rate on file; using the standard %.2fp per page.", size, monoRate*100))
	}
	colourRate := colourPence / 100
	if colourPence <= 0 && norm.MonthlyVolume.Colour > 0 {
		colourRate = cfg.Cost.Defaults.ColourRate
		notes = append(notes, fmt.Sprintf("No %s colour rate on file; using the standard %.2fp per page.", size, colourRate*100))
	}

	monoCPC := float64(norm.MonthlyVolume.Mono) * monoRate
	colourCPC := float64(norm.MonthlyVolume.Colour) * colourRate
	totalCPC := monoCPC + colourCPC

	options := buildLeaseOptions(p, norm.PreferredTermMonths)
	monthlyLease := 0.0
	if rec, ok := recommendedOption(options); ok {
		monthlyLease = rec.MonthlyPayment
	}

	monthlyService := p.Service.QuarterlyServiceCost / 3
	if p.Service.QuarterlyServiceCost <= 0 {
		monthlyService = serviceFallbackFraction * (totalCPC + monthlyLease)
	}

	totalMonthly := totalCPC + monthlyLease + monthlyService

	currentCPC := float64(norm.MonthlyVolume.Mono)*norm.CurrentMonoRate +
		float64(norm.MonthlyVolume.Colour)*norm.CurrentColourRate
	currentMonthly := currentCPC + norm.CurrentQuarterlyLease/3 + norm.CurrentQuarterlyServ/3

	monthlySavings := currentMonthly - totalMonthly
	percentage := 0.0
	if currentMonthly > 0 {
		percentage = monthlySavings / currentMonthly * 100
	}

	costs := entities.QuoteCosts{
		MonoRate:         monoRate,
		ColourRate:       colourRate,
		MonoCPCCost:      monoCPC,
		ColourCPCCost:    colourCPC,
		TotalCPCCost:     totalCPC,
		MonthlyLease:     monthlyLease,
		MonthlyService:   monthlyService,
		TotalMonthlyCost: totalMonthly,
		Savings: entities.Savings{
			MonthlyAmount:   monthlySavings,
			AnnualAmount:    12 * monthlySavings,
			PercentageSaved: percentage,
			CurrentMonthly:  currentMonthly,
		},
	}
	return costs, options, notes
}

// buildLeaseOptions emits one option per published lease term, synthesising
// the ladder from the machine cost when the vendor publishes none. Exactly one
// option comes back flagged as recommended.
func buildLeaseOptions(p entities.VendorProduct, preferredTerm int) []entities.LeaseOption {
	options := make([]entities.LeaseOption, 0, len(leaseTerms))
	for _, term := range leaseTerms {
		quarterly, ok := p.LeaseRates.ForTerm(term)
		if !ok {
			if p.Costs.TotalMachineCost <= 0 {
				continue
			}
			quarters := float64(term) / 3
			quarterly = p.Costs.TotalMachineCost / quarters * leaseTermMultipliers[term]
		}
		options = append(options, entities.LeaseOption{
			TermMonths:       term,
			QuarterlyPayment: quarterly,
			MonthlyPayment:   quarterly / 3,
			TotalCost:        quarterly * float64(term) / 3,
			Margin:           p.Costs.ProfitMargin,
		})
	}
	markRecommended(options, preferredTerm)
	return options
}

// markRecommended flags the option matching the buyer's preferred term, then
// 60 months, then the nearest available term.
func markRecommended(options []entities.LeaseOption, preferredTerm int) {
	if len(options) == 0 {
		return
	}
	pick := -1
	for i, opt := range options {
		if opt.TermMonths == preferredTerm {
			pick = i
			break
		}
	}
	if pick < 0 {
		for i, opt := range options {
			if opt.TermMonths == defaultPreferredTermMonths {
				pick = i
				break
			}
		}
	}
	if pick < 0 {
		best := math.MaxInt
		for i, opt := range options {
			if d := abs(opt.TermMonths - preferredTerm); d < best {
				best = d
				pick = i
			}
		}
	}
	options[pick].IsRecommended = true
}

func recommendedOption(options []entities.LeaseOption) (entities.LeaseOption, bool) {
	for _, opt := range options {
		if opt.IsRecommended {
			return opt, true
		}
	}
	return entities.LeaseOption{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// round2 rounds a monetary amount to whole pence. Applied only at the
// persistence boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
