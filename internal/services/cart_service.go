package services

import (
	"database/sql"
	"errors"
	"fmt"

	"ecocart/internal/domain"
	"ecocart/internal/repos"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type CartService struct {
	Products *repos.ProductRepo
	Carts    *repos.CartRepo
}

func NewCartService(products *repos.ProductRepo, carts *repos.CartRepo) *CartService {
	return &CartService{Products: products, Carts: carts}
}

// CartView is the rendered state of one session's cart.
type CartView struct {
	Lines     []domain.CartLine
	Subtotal  decimal.Decimal
	ItemCount int
	Impact    domain.Impact
}

// Add puts one unit of the product into the session's cart. A repeat add
// bumps the existing line's quantity; the first add snapshots the catalog
// price and per-unit impact figures onto the line.
func (s *CartService) Add(sessionID string, productID int64) error {
	p, err := s.Products.Get(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.AddLine(cartID, domain.CartLine{
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Image:           p.Image,
		CarbonFootprint: p.CarbonFootprint,
		WasteSaved:      p.WasteSaved,
		WaterSaved:      p.WaterSaved,
		HasImpact:       true,
	})
}

// UpdateQuantity applies a signed delta to a line. When the resulting
// quantity drops to zero or below, the line is removed. Unknown lines
// are left alone.
func (s *CartService) UpdateQuantity(sessionID string, productID int64, delta int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	l, err := s.Carts.Line(cartID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	next := l.Qty + delta
	if next <= 0 {
		return s.Carts.Remove(cartID, productID)
	}
	return s.Carts.SetQty(cartID, productID, next)
}

func (s *CartService) Remove(sessionID string, productID int64) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Remove(cartID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

// View loads the cart and computes its aggregates. Lines written before
// impact snapshots existed get their figures backfilled from the catalog.
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	for i, l := range lines {
		if l.HasImpact {
			continue
		}
		p, err := s.Products.Get(l.ProductID)
		if err != nil {
			continue // product deleted since; counts as zero impact
		}
		lines[i].CarbonFootprint = p.CarbonFootprint
		lines[i].WasteSaved = p.WasteSaved
		lines[i].WaterSaved = p.WaterSaved
		lines[i].HasImpact = true
		if err := s.Carts.SetImpact(cartID, l.ProductID, lines[i]); err != nil {
			return CartView{}, err
		}
	}
	return CartView{
		Lines:     lines,
		Subtotal:  Subtotal(lines),
		ItemCount: ItemCount(lines),
		Impact:    ComputeImpact(lines),
	}, nil
}

// Subtotal is the sum of price times quantity over the lines.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func ItemCount(lines []domain.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Qty
	}
	return n
}

// ComputeImpact sums the per-unit figures scaled by quantity and formats
// each total to two decimal places. Lines without a snapshot contribute
// zero; View backfills those before display.
func ComputeImpact(lines []domain.CartLine) domain.Impact {
	carbon, waste, water := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range lines {
		if !l.HasImpact {
			continue
		}
		qty := decimal.NewFromInt(int64(l.Qty))
		carbon = carbon.Add(l.CarbonFootprint.Mul(qty))
		waste = waste.Add(l.WasteSaved.Mul(qty))
		water = water.Add(l.WaterSaved.Mul(qty))
	}
	return domain.Impact{
		Carbon: carbon.StringFixed(2),
		Waste:  waste.StringFixed(2),
		Water:  water.StringFixed(2),
	}
}

// Money renders a decimal amount with two places for templates.
func Money(d decimal.Decimal) string {
	return fmt.Sprintf("R%s", d.StringFixed(2))
}
