package usecase

import "sort"

// DeduplicateByVendor reduces scored candidates to at most one per vendor so
// the buyer's short-list surfaces vendor diversity. The survivor per vendor is
// the highest-scoring product; ties break on higher cost efficiency, then
// lower total monthly cost, then lexicographic (manufacturer, model) so the
// result is deterministic. The returned slice is sorted by descending total.
func DeduplicateByVendor(candidates []ScoredCandidate) []ScoredCandidate {
	byVendor := make(map[string]ScoredCandidate, len(candidates))
	for _, c := range candidates {
		best, seen := byVendor[c.Product.VendorID]
		if !seen || betterCandidate(c, best) {
			byVendor[c.Product.VendorID] = c
		}
	}

	unique := make([]ScoredCandidate, 0, len(byVendor))
	for _, c := range byVendor {
		unique = append(unique, c)
	}
	sort.SliceStable(unique, func(i, j int) bool { return betterCandidate(unique[i], unique[j]) })
	return unique
}

// betterCandidate is the total ordering used for both dedup survival and final
// ranking.
func betterCandidate(a, b ScoredCandidate) bool {
	if a.Score.Total != b.Score.Total {
		return a.Score.Total > b.Score.Total
	}
	if a.Score.Breakdown.CostEfficiency != b.Score.Breakdown.CostEfficiency {
		return a.Score.Breakdown.CostEfficiency > b.Score.Breakdown.CostEfficiency
	}
	if a.Costs.TotalMonthlyCost != b.Costs.TotalMonthlyCost {
		return a.Costs.TotalMonthlyCost < b.Costs.TotalMonthlyCost
	}
	if a.Product.Manufacturer != b.Product.Manufacturer {
		return a.Product.Manufacturer < b.Product.Manufacturer
	}
	return a.Product.Model < b.Product.Model
}
