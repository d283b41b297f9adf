package repos

import (
	"strings"

	"ecocart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PostRepo struct{ db *sqlx.DB }

func NewPostRepo(db *sqlx.DB) *PostRepo { return &PostRepo{db: db} }

const postCols = `
  id, COALESCE(title,'') AS title, COALESCE(author,'') AS author,
  COALESCE(body,'') AS body, status,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

// List applies the admin moderation predicates: a case-insensitive
// substring match over title, author and body, ANDed with an exact
// status match ("all" or "" disables). Newest first.
func (r *PostRepo) List(search, status string) ([]domain.Post, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(body) LIKE ?)`
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like, like)
	}
	if status != "" && status != "all" {
		where += ` AND status = ?`
		args = append(args, status)
	}
	var out []domain.Post
	err := r.db.Select(&out, `
		SELECT `+postCols+` FROM posts WHERE `+where+` ORDER BY created_at DESC, id DESC
	`, args...)
	return out, err
}

func (r *PostRepo) Get(id string) (domain.Post, error) {
	var p domain.Post
	err := r.db.Get(&p, `SELECT `+postCols+` FROM posts WHERE id = ?`, id)
	return p, err
}

func (r *PostRepo) Create(p domain.Post) error {
	_, err := r.db.Exec(`
		INSERT INTO posts(id,title,author,body,status,created_at)
		VALUES(?,?,?,?,?,COALESCE(NULLIF(?,''),CURRENT_TIMESTAMP))
	`, p.ID, p.Title, p.Author, p.Body, p.Status, p.CreatedAt)
	return err
}

// Upsert is the sync merge write: a server copy replaces the local row
// wholesale, so remote edits and moderation decisions win.
func (r *PostRepo) Upsert(p domain.Post) error {
	_, err := r.db.Exec(`
		INSERT INTO posts(id,title,author,body,status,created_at,updated_at)
		VALUES(?,?,?,?,?,COALESCE(NULLIF(?,''),CURRENT_TIMESTAMP),CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  title=excluded.title, author=excluded.author, body=excluded.body,
		  status=excluded.status, updated_at=CURRENT_TIMESTAMP
	`, p.ID, p.Title, p.Author, p.Body, p.Status, p.CreatedAt)
	return err
}

func (r *PostRepo) Approve(id string) error {
	_, err := r.db.Exec(`
		UPDATE posts SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, domain.PostApproved, id)
	return err
}

// Delete cascades to the post's comments. A no-op for an unknown id.
func (r *PostRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

func (r *PostRepo) AddComment(c domain.Comment) error {
	_, err := r.db.Exec(`
		INSERT INTO comments(id,post_id,author,body,created_at)
		VALUES(?,?,?,?,COALESCE(NULLIF(?,''),CURRENT_TIMESTAMP))
	`, c.ID, c.PostID, c.Author, c.Body, c.CreatedAt)
	return err
}

// Comments lists all comments joined with their post title for the admin
// moderation table, newest first. Search matches author, body and title.
func (r *PostRepo) Comments(search string) ([]domain.Comment, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where += ` AND (LOWER(c.author) LIKE ? OR LOWER(c.body) LIKE ? OR LOWER(p.title) LIKE ?)`
		like := "%" + strings.ToLower(search) + "%"
		args = append(args, like, like, like)
	}
	var out []domain.Comment
	err := r.db.Select(&out, `
		SELECT c.id, c.post_id, COALESCE(p.title,'') AS post_title,
		       COALESCE(c.author,'') AS author, COALESCE(c.body,'') AS body,
		       COALESCE(c.created_at,'') AS created_at
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		WHERE `+where+`
		ORDER BY c.created_at DESC, c.id DESC
	`, args...)
	return out, err
}

func (r *PostRepo) CommentsFor(postID string) ([]domain.Comment, error) {
	var out []domain.Comment
	err := r.db.Select(&out, `
		SELECT c.id, c.post_id, '' AS post_title,
		       COALESCE(c.author,'') AS author, COALESCE(c.body,'') AS body,
		       COALESCE(c.created_at,'') AS created_at
		FROM comments c WHERE c.post_id = ? ORDER BY c.created_at, c.id
	`, postID)
	return out, err
}

// DeleteComment is a no-op when the id does not exist.
func (r *PostRepo) DeleteComment(id string) error {
	_, err := r.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	return err
}
