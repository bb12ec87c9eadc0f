package product

import "fmt"

// CheckConsistency reports relationships the seed data is expected to
// satisfy but that nothing enforces. It never rejects a product; callers log
// the warnings and keep the data as-is.
func CheckConsistency(p *Product) []string {
	var warnings []string

	if want := p.OriginalPrice.Sub(p.Price); !p.Savings.Equal(want) {
		warnings = append(warnings, fmt.Sprintf(
			"savings %s does not equal originalPrice - price (%s)", p.Savings, want))
	}

	seen := make(map[int]bool, len(p.EmiPlans))
	for _, plan := range p.EmiPlans {
		if plan.DurationMonths <= 0 {
			warnings = append(warnings, fmt.Sprintf(
				"emi plan has non-positive duration %d", plan.DurationMonths))
		}
		if seen[plan.DurationMonths] {
			warnings = append(warnings, fmt.Sprintf(
				"duplicate emi plan duration %d", plan.DurationMonths))
		}
		seen[plan.DurationMonths] = true
	}

	for _, s := range p.StorageOptions {
		if s.PriceAdjustment.IsNegative() {
			warnings = append(warnings, fmt.Sprintf(
				"storage option %s has negative price adjustment %s", s.ID, s.PriceAdjustment))
		}
	}

	return warnings
}
