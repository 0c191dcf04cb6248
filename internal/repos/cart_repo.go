package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"muraqqa/internal/domain"
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

// InsertLine appends a new line. Same artwork+kind+size twice is two rows.
func (r *CartRepo) InsertLine(cartID string, l domain.LineItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_lines(id,cart_id,artwork_id,title,kind,print_size,qty,unit_price,created_at)
	  VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, l.ID, cartID, l.ArtworkID, l.Title, l.Kind, l.PrintSize, l.Qty, l.UnitPrice)
	return err
}

func (r *CartRepo) RemoveLine(cartID, lineID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_lines WHERE cart_id = ? AND id = ?`, cartID, lineID)
	return err
}

func (r *CartRepo) Lines(cartID string) ([]domain.LineItem, error) {
	out := []domain.LineItem{}
	err := r.db.Select(&out, `
	  SELECT id, artwork_id, title, kind, print_size, qty, unit_price
	  FROM cart_lines
	  WHERE cart_id = ?
	  ORDER BY created_at, id
	`, cartID)
	return out, err
}

func (r *CartRepo) ClearCart(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_lines WHERE cart_id = ?`, cartID)
	return err
}
