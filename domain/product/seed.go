package product

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SeedDocument is the static JSON document the catalog is loaded from.
type SeedDocument struct {
	Products []SeedProduct `json:"products"`
}

// SeedProduct is one product as it appears in the seed document. Child ids
// are local to the product.
type SeedProduct struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Tag            *string         `json:"tag,omitempty"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	Savings        decimal.Decimal `json:"savings"`
	Image          string          `json:"image"`
	Colors         []SeedColor     `json:"colors"`
	StorageOptions []SeedStorage   `json:"storageOptions"`
	EmiPlans       []SeedEmiPlan   `json:"emiPlans"`
}

type SeedColor struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	HexCode *string `json:"hexCode,omitempty"`
}

type SeedStorage struct {
	ID              string          `json:"id"`
	Size            string          `json:"size"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

type SeedEmiPlan struct {
	DurationMonths int             `json:"durationMonths"`
	MonthlyAmount  decimal.Decimal `json:"monthlyAmount"`
	Cashback       decimal.Decimal `json:"cashback"`
	InterestRate   decimal.Decimal `json:"interestRate"`
}

// LoadSeedFile reads and parses a seed document.
func LoadSeedFile(path string) (*SeedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var doc SeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &doc, nil
}

// ChildID builds the stored id of a child row from its parent and source ids.
func ChildID(productID, sourceID string) string {
	return productID + "-" + sourceID
}

// ToProduct converts the seed entry into a storable Product at the given
// list position.
func (s SeedProduct) ToProduct(position int) Product {
	p := Product{
		ID:            s.ID,
		Position:      position,
		Name:          s.Name,
		Brand:         s.Brand,
		Tag:           s.Tag,
		Description:   s.Description,
		Price:         s.Price,
		OriginalPrice: s.OriginalPrice,
		Savings:       s.Savings,
		Image:         s.Image,
	}
	for i, c := range s.Colors {
		p.Colors = append(p.Colors, ProductColor{
			ID:       ChildID(s.ID, c.ID),
			Position: i,
			Name:     c.Name,
			HexCode:  c.HexCode,
		})
	}
	for i, st := range s.StorageOptions {
		p.StorageOptions = append(p.StorageOptions, ProductStorage{
			ID:              ChildID(s.ID, st.ID),
			Position:        i,
			Size:            st.Size,
			PriceAdjustment: st.PriceAdjustment,
		})
	}
	for i, e := range s.EmiPlans {
		p.EmiPlans = append(p.EmiPlans, ProductEmiPlan{
			DurationMonths: e.DurationMonths,
			Position:       i,
			MonthlyAmount:  e.MonthlyAmount,
			Cashback:       e.Cashback,
			InterestRate:   e.InterestRate,
		})
	}
	return p
}

// Seeder replaces the catalog contents with a seed document.
type Seeder struct {
	repo   *Repository
	logger zerolog.Logger
}

// NewSeeder creates a seeder writing through repo.
func NewSeeder(repo *Repository, logger zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Seed clears every product, then creates each product of doc, all in one
// transaction. Running it twice with the same document leaves the same
// catalog. It returns the number of products created.
func (s *Seeder) Seed(ctx context.Context, doc *SeedDocument) (int, error) {
	created := 0
	err := s.repo.Transaction(ctx, func(repo *Repository) error {
		s.logger.Info().Msg("Clearing old products")
		removed, err := repo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		s.logger.Info().Int64("removed", removed).Msg("Old products cleared")

		for i, sp := range doc.Products {
			p := sp.ToProduct(i)
			for _, warning := range CheckConsistency(&p) {
				s.logger.Warn().Str("product_id", p.ID).Msg(warning)
			}
			if err := repo.Create(ctx, &p); err != nil {
				return err
			}
			created++
			s.logger.Info().Str("product_id", p.ID).Msgf("Created product: %s", p.Name)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seeding failed: %w", err)
	}
	s.logger.Info().Int("products", created).Msg("Seeding completed")
	return created, nil
}
