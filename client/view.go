package client

import (
	"github.com/marufk21/1fi/domain/money"
	"github.com/marufk21/1fi/domain/pricing"
	"github.com/marufk21/1fi/domain/product"
)

// Card is what a product list shows for one product.
type Card struct {
	ID            string
	Name          string
	Brand         string
	Tag           *string
	Image         string
	Price         string
	OriginalPrice string
	EmiFrom       string
}

// Cards formats products for a list view, keeping their order.
func Cards(products []product.Product, f *money.Formatter) []Card {
	cards := make([]Card, 0, len(products))
	for i := range products {
		p := &products[i]
		cards = append(cards, Card{
			ID:            p.ID,
			Name:          p.Name,
			Brand:         p.Brand,
			Tag:           p.Tag,
			Image:         p.Image,
			Price:         f.Format(p.Price),
			OriginalPrice: f.Format(p.OriginalPrice),
			EmiFrom:       f.Format(pricing.StartingMonthly(p)),
		})
	}
	return cards
}

// PlanOption is one EMI plan as listed on a product page.
type PlanOption struct {
	DurationMonths int
	MonthlyAmount  string
	TotalRepayment string
	Cashback       string
	Selected       bool
}

// DetailView is the state of a product page: the product, the current
// selection and everything derived from it. It is a value; the Select
// methods return updated copies.
type DetailView struct {
	Product   *product.Product
	Selection pricing.Selection
	Quote     pricing.Quote

	Price          string
	OriginalPrice  string
	Savings        string
	MonthlyAmount  string
	TotalRepayment string
	Cashback       string
	Plans          []PlanOption

	formatter *money.Formatter
}

// NewDetailView opens p with its initial selection.
func NewDetailView(p *product.Product, f *money.Formatter) DetailView {
	return newDetailView(p, pricing.InitialSelection(p), f)
}

// SelectColor picks a color. Price does not change.
func (v DetailView) SelectColor(id string) DetailView {
	return newDetailView(v.Product, v.Selection.WithColor(id), v.formatter)
}

// SelectStorage picks a storage option.
func (v DetailView) SelectStorage(id string) DetailView {
	return newDetailView(v.Product, v.Selection.WithStorage(id), v.formatter)
}

// SelectEmiPlan picks the plan with the given duration.
func (v DetailView) SelectEmiPlan(months int) DetailView {
	return newDetailView(v.Product, v.Selection.WithEmiMonths(months), v.formatter)
}

func newDetailView(p *product.Product, sel pricing.Selection, f *money.Formatter) DetailView {
	q := pricing.Derive(p, sel)
	v := DetailView{
		Product:       p,
		Selection:     sel,
		Quote:         q,
		Price:         f.Format(q.CalculatedPrice),
		OriginalPrice: f.Format(q.CalculatedOriginalPrice),
		Savings:       f.Format(q.Savings),
		Plans:         make([]PlanOption, 0, len(p.EmiPlans)),
		formatter:     f,
	}
	if in := q.Installment; in != nil {
		v.MonthlyAmount = f.Format(in.MonthlyAmount)
		v.TotalRepayment = f.Format(in.TotalRepayment)
		v.Cashback = f.Format(in.Cashback)
	}
	for i := range p.EmiPlans {
		plan := &p.EmiPlans[i]
		v.Plans = append(v.Plans, PlanOption{
			DurationMonths: plan.DurationMonths,
			MonthlyAmount:  f.Format(plan.MonthlyAmount),
			TotalRepayment: f.Format(pricing.TotalRepayment(plan)),
			Cashback:       f.Format(plan.Cashback),
			Selected:       sel.EmiMonths != nil && *sel.EmiMonths == plan.DurationMonths,
		})
	}
	return v
}
