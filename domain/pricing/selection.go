// Package pricing derives the displayed price and installment figures of a
// product from the shopper's color, storage and EMI selections.
//
// Every function here is pure: the same product and Selection always give
// the same result, and derived values are never stored.
package pricing

import "github.com/marufk21/1fi/domain/product"

// Selection is the shopper's current choice for one product. A nil field
// means nothing is selected. Selection is a value; the With* methods return
// modified copies.
type Selection struct {
	ColorID   *string `json:"colorId,omitempty"`
	StorageID *string `json:"storageId,omitempty"`
	EmiMonths *int    `json:"emiMonths,omitempty"`
}

// InitialSelection selects the first color, storage option and EMI plan of
// p, leaving a slot unset when its collection is empty.
func InitialSelection(p *product.Product) Selection {
	var sel Selection
	if len(p.Colors) > 0 {
		sel = sel.WithColor(p.Colors[0].ID)
	}
	if len(p.StorageOptions) > 0 {
		sel = sel.WithStorage(p.StorageOptions[0].ID)
	}
	if len(p.EmiPlans) > 0 {
		sel = sel.WithEmiMonths(p.EmiPlans[0].DurationMonths)
	}
	return sel
}

// WithColor returns a copy of s with the color set to id.
func (s Selection) WithColor(id string) Selection {
	s.ColorID = &id
	return s
}

// WithStorage returns a copy of s with the storage option set to id.
func (s Selection) WithStorage(id string) Selection {
	s.StorageID = &id
	return s
}

// WithEmiMonths returns a copy of s with the EMI duration set to months.
func (s Selection) WithEmiMonths(months int) Selection {
	s.EmiMonths = &months
	return s
}

// SelectedColor returns the selected color, or nil when unset or unknown.
func SelectedColor(p *product.Product, sel Selection) *product.ProductColor {
	if sel.ColorID == nil {
		return nil
	}
	return p.FindColor(*sel.ColorID)
}

// SelectedStorage returns the selected storage option, or nil when unset or
// unknown.
func SelectedStorage(p *product.Product, sel Selection) *product.ProductStorage {
	if sel.StorageID == nil {
		return nil
	}
	return p.FindStorage(*sel.StorageID)
}

// SelectedEmiPlan returns the plan whose duration matches the selection, or
// nil when unset or no plan matches.
func SelectedEmiPlan(p *product.Product, sel Selection) *product.ProductEmiPlan {
	if sel.EmiMonths == nil {
		return nil
	}
	return p.FindEmiPlan(*sel.EmiMonths)
}
