package repos

import (
	"time"

	"ecocart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// AddLine inserts a new line with qty 1 carrying the full snapshot, or
// bumps the existing line's quantity by one without touching the snapshot.
func (r *CartRepo) AddLine(cartID string, l domain.CartLine) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,name,price,image,qty,
		  carbon_footprint,waste_saved,water_saved,has_impact,created_at)
		VALUES(?,?,?,?,?,1,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + 1, updated_at = CURRENT_TIMESTAMP
	`, cartID, l.ProductID, l.Name, l.Price, l.Image,
		l.CarbonFootprint, l.WasteSaved, l.WaterSaved, l.HasImpact)
	return err
}

const cartLineCols = `
  product_id, name, price, COALESCE(image,'') AS image, qty,
  carbon_footprint, waste_saved, water_saved, has_impact`

func (r *CartRepo) Lines(cartID string) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.Select(&out, `
	  SELECT `+cartLineCols+` FROM cart_items WHERE cart_id = ? ORDER BY created_at, product_id
	`, cartID)
	return out, err
}

// Line returns sql.ErrNoRows when the product is not in the cart.
func (r *CartRepo) Line(cartID string, productID int64) (domain.CartLine, error) {
	var l domain.CartLine
	err := r.db.Get(&l, `
	  SELECT `+cartLineCols+` FROM cart_items WHERE cart_id = ? AND product_id = ?
	`, cartID, productID)
	return l, err
}

func (r *CartRepo) SetQty(cartID string, productID int64, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?
	`, qty, cartID, productID)
	return err
}

// SetImpact backfills a missing per-unit impact snapshot on a line.
func (r *CartRepo) SetImpact(cartID string, productID int64, l domain.CartLine) error {
	_, err := r.db.Exec(`
		UPDATE cart_items
		SET carbon_footprint = ?, waste_saved = ?, water_saved = ?, has_impact = 1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?
	`, l.CarbonFootprint, l.WasteSaved, l.WaterSaved, cartID, productID)
	return err
}

func (r *CartRepo) Remove(cartID string, productID int64) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
