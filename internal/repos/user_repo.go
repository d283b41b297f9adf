package repos

import (
	"strings"

	"ecocart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `
  id, name, email, COALESCE(phone,'') AS phone, password_hash, role, eco_points,
  COALESCE(address,'') AS address, COALESCE(city,'') AS city,
  COALESCE(postal_code,'') AS postal_code,
  COALESCE(preferences_json,'') AS preferences_json,
  COALESCE(created_at,'') AS created_at`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Filter applies the admin table predicates: case-insensitive substring
// over name and email, ANDed with an exact role match ("all" disables).
func (r *UserRepo) Filter(search, role string) ([]domain.User, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)`
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like)
	}
	if role != "" && role != "all" {
		where += ` AND role = ?`
		args = append(args, role)
	}
	var out []domain.User
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users WHERE `+where+` ORDER BY email`, args...)
	return out, err
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,name,email,phone,password_hash,role,eco_points,
		  address,city,postal_code,preferences_json)
		VALUES(?,?,?,?,?,?,?,?,?,?,?)
	`, u.ID, u.Name, u.Email, u.Phone, u.Hash, u.Role, u.EcoPoints,
		u.Address, u.City, u.PostalCode, u.PreferencesJSON)
	return err
}

// Register inserts a self-service signup, letting sqlite assign the id.
func (r *UserRepo) Register(u domain.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users(name,email,phone,password_hash,role,eco_points)
		VALUES(?,?,?,?,?,?)
	`, u.Name, u.Email, u.Phone, u.Hash, u.Role, u.EcoPoints)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update replaces the mutable profile fields of the record with the given id.
func (r *UserRepo) Update(id int64, u domain.User) error {
	_, err := r.DB.Exec(`
		UPDATE users SET name=?, email=?, phone=?, password_hash=?, role=?,
		  eco_points=?, address=?, city=?, postal_code=?, preferences_json=?
		WHERE id = ?
	`, u.Name, u.Email, u.Phone, u.Hash, u.Role, u.EcoPoints,
		u.Address, u.City, u.PostalCode, u.PreferencesJSON, id)
	return err
}

// AddEcoPoints bumps the balance and returns the new value.
func (r *UserRepo) AddEcoPoints(id int64, delta int) (int, error) {
	if _, err := r.DB.Exec(`UPDATE users SET eco_points = eco_points + ? WHERE id = ?`, delta, id); err != nil {
		return 0, err
	}
	var balance int
	err := r.DB.Get(&balance, `SELECT eco_points FROM users WHERE id = ?`, id)
	return balance, err
}

// Delete removes the user; sessions fall back to anonymous via FK SET NULL.
// A no-op when the id does not exist.
func (r *UserRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}

func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}

// ---------- Sessions ----------

func (r *UserRepo) BindSession(sid string, userID int64) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT `+sessionUserCols+`
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const sessionUserCols = `
  u.id, u.name, u.email, COALESCE(u.phone,'') AS phone, u.password_hash, u.role,
  u.eco_points, COALESCE(u.address,'') AS address, COALESCE(u.city,'') AS city,
  COALESCE(u.postal_code,'') AS postal_code,
  COALESCE(u.preferences_json,'') AS preferences_json,
  COALESCE(u.created_at,'') AS created_at`

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
