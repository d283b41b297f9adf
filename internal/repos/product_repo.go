package repos

import (
	"strings"

	"ecocart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, COALESCE(description,'') AS description, price, category,
  COALESCE(image,'') AS image, stock, carbon_footprint, waste_saved, water_saved,
  COALESCE(sustainability_json,'') AS sustainability_json,
  COALESCE(created_at,'') AS created_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Filter applies the admin table predicates: a case-insensitive substring
// match over name and description, ANDed with an exact category match.
// An empty or "all" category disables the categorical filter.
func (r *ProductRepo) Filter(search, category string) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like)
	}
	if category != "" && category != "all" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY id`, args...)
	return out, err
}

// Create assigns max(id)+1, or 1 for an empty catalog. Single admin writer
// by assumption, so the read-then-insert race is acceptable.
func (r *ProductRepo) Create(p domain.Product) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var next int64
	if err := tx.Get(&next, `SELECT COALESCE(MAX(id),0)+1 FROM products`); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`
		INSERT INTO products(id,name,description,price,category,image,stock,
		  carbon_footprint,waste_saved,water_saved,sustainability_json)
		VALUES(?,?,?,?,?,?,?,?,?,?,?)
	`, next, p.Name, p.Description, p.Price, p.Category, p.Image, p.Stock,
		p.CarbonFootprint, p.WasteSaved, p.WaterSaved, p.SustainabilityJSON); err != nil {
		return 0, err
	}
	return next, tx.Commit()
}

func (r *ProductRepo) Update(id int64, p domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products SET name=?, description=?, price=?, category=?, image=?,
		  stock=?, carbon_footprint=?, waste_saved=?, water_saved=?, sustainability_json=?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Category, p.Image, p.Stock,
		p.CarbonFootprint, p.WasteSaved, p.WaterSaved, p.SustainabilityJSON, id)
	return err
}

// Delete is a no-op when the id does not exist.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) Categories() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT DISTINCT category FROM products ORDER BY category`)
	return out, err
}

func (r *ProductRepo) CountLowStock(threshold int) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE stock < ?`, threshold)
	return n, err
}
