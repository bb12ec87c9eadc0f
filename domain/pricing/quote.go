package pricing

import (
	"github.com/marufk21/1fi/domain/product"
	"github.com/shopspring/decimal"
)

// startingPlanIndex is the plan advertised as "EMI from" on product cards.
const startingPlanIndex = 2

// Installment is the economics of the selected EMI plan.
type Installment struct {
	DurationMonths int             `json:"durationMonths"`
	MonthlyAmount  decimal.Decimal `json:"monthlyAmount"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	Cashback       decimal.Decimal `json:"cashback"`
	InterestRate   decimal.Decimal `json:"interestRate"`
}

// Quote is everything derived from a product and a Selection.
type Quote struct {
	Selection               Selection               `json:"selection"`
	Color                   *product.ProductColor   `json:"color,omitempty"`
	Storage                 *product.ProductStorage `json:"storage,omitempty"`
	CalculatedPrice         decimal.Decimal         `json:"calculatedPrice"`
	CalculatedOriginalPrice decimal.Decimal         `json:"calculatedOriginalPrice"`
	Savings                 decimal.Decimal         `json:"savings"`
	Installment             *Installment            `json:"installment,omitempty"`
}

// priceAdjustment is the selected storage delta, zero when nothing valid is
// selected.
func priceAdjustment(p *product.Product, sel Selection) decimal.Decimal {
	if s := SelectedStorage(p, sel); s != nil {
		return s.PriceAdjustment
	}
	return decimal.Zero
}

// CalculatedPrice is the base price plus the selected storage adjustment.
func CalculatedPrice(p *product.Product, sel Selection) decimal.Decimal {
	return p.Price.Add(priceAdjustment(p, sel))
}

// CalculatedOriginalPrice is the pre-discount price plus the selected storage
// adjustment.
func CalculatedOriginalPrice(p *product.Product, sel Selection) decimal.Decimal {
	return p.OriginalPrice.Add(priceAdjustment(p, sel))
}

// TotalRepayment is monthly amount times duration, computed exactly.
func TotalRepayment(plan *product.ProductEmiPlan) decimal.Decimal {
	return plan.MonthlyAmount.Mul(decimal.NewFromInt(int64(plan.DurationMonths)))
}

// InstallmentFor returns the installment figures of plan, or nil for a nil
// plan.
func InstallmentFor(plan *product.ProductEmiPlan) *Installment {
	if plan == nil {
		return nil
	}
	return &Installment{
		DurationMonths: plan.DurationMonths,
		MonthlyAmount:  plan.MonthlyAmount,
		TotalRepayment: TotalRepayment(plan),
		Cashback:       plan.Cashback,
		InterestRate:   plan.InterestRate,
	}
}

// Derive computes the quote for sel. Unknown ids are treated as unselected.
func Derive(p *product.Product, sel Selection) Quote {
	return Quote{
		Selection:               sel,
		Color:                   SelectedColor(p, sel),
		Storage:                 SelectedStorage(p, sel),
		CalculatedPrice:         CalculatedPrice(p, sel),
		CalculatedOriginalPrice: CalculatedOriginalPrice(p, sel),
		Savings:                 p.Savings,
		Installment:             InstallmentFor(SelectedEmiPlan(p, sel)),
	}
}

// StartingMonthly is the "EMI from" amount shown on product cards: the
// monthly amount of the third plan when there is one, otherwise price / 12.
func StartingMonthly(p *product.Product) decimal.Decimal {
	if len(p.EmiPlans) > startingPlanIndex {
		return p.EmiPlans[startingPlanIndex].MonthlyAmount
	}
	return p.Price.Div(decimal.NewFromInt(12))
}
