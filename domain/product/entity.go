// Package product provides the catalog entities, their repository and the
// seed loader that populates them.
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// API consumers expect prices as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a phone in the catalog with its configurable options.
type Product struct {
	ID             string           `gorm:"primaryKey;size:64" json:"id"`
	Position       int              `gorm:"not null;default:0;index" json:"-"`
	Name           string           `gorm:"size:255;not null" json:"name"`
	Brand          string           `gorm:"size:100;not null" json:"brand"`
	Tag            *string          `gorm:"size:100" json:"tag,omitempty"`
	Description    string           `gorm:"type:text" json:"description"`
	Price          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	OriginalPrice  decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"originalPrice"`
	Savings        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"savings"`
	Image          string           `gorm:"size:512" json:"image"`
	Colors         []ProductColor   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors"`
	StorageOptions []ProductStorage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"storageOptions"`
	EmiPlans       []ProductEmiPlan `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"emiPlans"`
	CreatedAt      time.Time        `json:"-"`
	UpdatedAt      time.Time        `json:"-"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductColor is a color variant. Colors carry no price delta.
type ProductColor struct {
	ID        string  `gorm:"primaryKey;size:128" json:"id"`
	ProductID string  `gorm:"size:64;not null;index" json:"-"`
	Position  int     `gorm:"not null;default:0" json:"-"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	HexCode   *string `gorm:"size:16" json:"hexCode,omitempty"`
}

// TableName returns the table name for ProductColor.
func (ProductColor) TableName() string {
	return "product_colors"
}

// ProductStorage is a capacity variant whose PriceAdjustment is added to the
// base price when selected.
type ProductStorage struct {
	ID              string          `gorm:"primaryKey;size:128" json:"id"`
	ProductID       string          `gorm:"size:64;not null;index" json:"-"`
	Position        int             `gorm:"not null;default:0" json:"-"`
	Size            string          `gorm:"size:50;not null" json:"size"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"priceAdjustment"`
}

// TableName returns the table name for ProductStorage.
func (ProductStorage) TableName() string {
	return "product_storage_options"
}

// ProductEmiPlan is an installment plan, identified within its product by
// DurationMonths.
type ProductEmiPlan struct {
	ProductID      string          `gorm:"primaryKey;size:64;autoIncrement:false" json:"-"`
	DurationMonths int             `gorm:"primaryKey;autoIncrement:false" json:"durationMonths"`
	Position       int             `gorm:"not null;default:0" json:"-"`
	MonthlyAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthlyAmount"`
	Cashback       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cashback"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"interestRate"`
}

// TableName returns the table name for ProductEmiPlan.
func (ProductEmiPlan) TableName() string {
	return "product_emi_plans"
}

// FindStorage returns the storage option with the given id, or nil.
func (p *Product) FindStorage(id string) *ProductStorage {
	for i := range p.StorageOptions {
		if p.StorageOptions[i].ID == id {
			return &p.StorageOptions[i]
		}
	}
	return nil
}

// FindColor returns the color with the given id, or nil.
func (p *Product) FindColor(id string) *ProductColor {
	for i := range p.Colors {
		if p.Colors[i].ID == id {
			return &p.Colors[i]
		}
	}
	return nil
}

// FindEmiPlan returns the plan with the given duration, or nil.
func (p *Product) FindEmiPlan(months int) *ProductEmiPlan {
	for i := range p.EmiPlans {
		if p.EmiPlans[i].DurationMonths == months {
			return &p.EmiPlans[i]
		}
	}
	return nil
}
