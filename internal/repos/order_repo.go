package repos

import (
	"strings"

	"ecocart/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, COALESCE(session_id,'') AS session_id, date,
  COALESCE(customer_name,'') AS customer_name, COALESCE(customer_email,'') AS customer_email,
  COALESCE(customer_phone,'') AS customer_phone, COALESCE(customer_address,'') AS customer_address,
  subtotal, status,
  COALESCE(impact_carbon,'0.00') AS impact_carbon,
  COALESCE(impact_waste,'0.00') AS impact_waste,
  COALESCE(impact_water,'0.00') AS impact_water,
  COALESCE(updated_at,'') AS updated_at`

// Create inserts the order header and its item snapshots in one transaction.
func (r *OrderRepo) Create(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, session_id, date, customer_name, customer_email, customer_phone,
	     customer_address, subtotal, status, impact_carbon, impact_waste, impact_water)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.SessionID, o.Date, o.Name, o.Email, o.Phone, o.Address,
		o.Subtotal, o.Status, o.Carbon, o.Waste, o.Water); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, price, qty)
		  VALUES(?,?,?,?,?)
		`, o.ID, it.ProductID, it.Name, it.Price, it.Qty); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id int64) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, nil, err
	}
	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT order_id, product_id, name, price, qty
		FROM order_items WHERE order_id = ? ORDER BY name
	`, id); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

// Filter applies the admin table predicates and returns newest first.
// Search matches the order id, customer name and email; status "all" or ""
// disables the status filter; datePrefix restricts to dates starting with it.
func (r *OrderRepo) Filter(search, status, datePrefix string) ([]domain.Order, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where += ` AND (CAST(id AS TEXT) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?)`
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like, like)
	}
	if status != "" && status != "all" {
		where += ` AND status = ?`
		args = append(args, status)
	}
	if datePrefix != "" {
		where += ` AND date LIKE ?`
		args = append(args, datePrefix+"%")
	}

	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders WHERE `+where+` ORDER BY date DESC, id DESC
	`, args...)
	return out, err
}

// ListForCustomer is the profile order-history view: a weak join matching
// the customer email or name recorded on the order, newest first.
func (r *OrderRepo) ListForCustomer(email, name string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		WHERE customer_email = ? OR customer_name = ?
		ORDER BY date DESC, id DESC
	`, email, name)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return err
}

// Delete is a no-op when the id does not exist.
func (r *OrderRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	return err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = ?`, status)
	return n, err
}

func (r *OrderRepo) TotalRevenue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `SELECT COALESCE(SUM(subtotal),0) FROM orders`)
	return total, err
}

// TotalImpact sums the per-order impact figures across all orders.
func (r *OrderRepo) TotalImpact() (domain.Impact, error) {
	var row struct {
		Carbon decimal.Decimal `db:"carbon"`
		Waste  decimal.Decimal `db:"waste"`
		Water  decimal.Decimal `db:"water"`
	}
	err := r.db.Get(&row, `
		SELECT COALESCE(SUM(CAST(impact_carbon AS REAL)),0) AS carbon,
		       COALESCE(SUM(CAST(impact_waste  AS REAL)),0) AS waste,
		       COALESCE(SUM(CAST(impact_water  AS REAL)),0) AS water
		FROM orders`)
	if err != nil {
		return domain.Impact{}, err
	}
	return domain.Impact{
		Carbon: row.Carbon.StringFixed(2),
		Waste:  row.Waste.StringFixed(2),
		Water:  row.Water.StringFixed(2),
	}, nil
}

type ProductSales struct {
	Name  string `db:"name"`
	Units int    `db:"units"`
}

// TopProducts ranks products by units sold across all orders.
func (r *OrderRepo) TopProducts(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []ProductSales
	err := r.db.Select(&out, `
		SELECT name, SUM(qty) AS units
		FROM order_items
		GROUP BY name
		ORDER BY units DESC, name
		LIMIT ?
	`, limit)
	return out, err
}
