package repos

import (
	"strings"

	"ecocart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TicketRepo struct{ db *sqlx.DB }

func NewTicketRepo(db *sqlx.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketCols = `
  id, COALESCE(user_name,'') AS user_name, COALESCE(subject,'') AS subject,
  COALESCE(message,'') AS message, status,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

// List applies the admin table predicates: case-insensitive substring
// over subject, user and message, ANDed with an exact status match
// ("all" or "" disables). Newest first.
func (r *TicketRepo) List(search, status string) ([]domain.SupportTicket, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where += ` AND (LOWER(subject) LIKE ? OR LOWER(user_name) LIKE ? OR LOWER(message) LIKE ?)`
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like, like)
	}
	if status != "" && status != "all" {
		where += ` AND status = ?`
		args = append(args, status)
	}
	var out []domain.SupportTicket
	err := r.db.Select(&out, `
		SELECT `+ticketCols+` FROM tickets WHERE `+where+` ORDER BY created_at DESC, id DESC
	`, args...)
	return out, err
}

func (r *TicketRepo) Get(id string) (domain.SupportTicket, error) {
	var t domain.SupportTicket
	err := r.db.Get(&t, `SELECT `+ticketCols+` FROM tickets WHERE id = ?`, id)
	return t, err
}

func (r *TicketRepo) Create(t domain.SupportTicket) error {
	_, err := r.db.Exec(`
		INSERT INTO tickets(id,user_name,subject,message,status)
		VALUES(?,?,?,?,?)
	`, t.ID, t.User, t.Subject, t.Message, t.Status)
	return err
}

// Respond records a staff reply and moves the ticket to in_progress
// unless it is already closed.
func (r *TicketRepo) Respond(id string, resp domain.TicketResponse) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO ticket_responses(ticket_id,responder,message,at)
		VALUES(?,?,?,COALESCE(NULLIF(?,''),CURRENT_TIMESTAMP))
	`, id, resp.By, resp.Message, resp.At); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		UPDATE tickets SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status != ?
	`, domain.TicketInProgress, id, domain.TicketClosed); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TicketRepo) SetStatus(id, status string) error {
	_, err := r.db.Exec(`
		UPDATE tickets SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return err
}

// Delete is a no-op when the id does not exist.
func (r *TicketRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM tickets WHERE id = ?`, id)
	return err
}

func (r *TicketRepo) Responses(ticketID string) ([]domain.TicketResponse, error) {
	var out []domain.TicketResponse
	err := r.db.Select(&out, `
		SELECT ticket_id, COALESCE(responder,'') AS responder,
		       COALESCE(message,'') AS message, COALESCE(at,'') AS at
		FROM ticket_responses WHERE ticket_id = ? ORDER BY at
	`, ticketID)
	return out, err
}
