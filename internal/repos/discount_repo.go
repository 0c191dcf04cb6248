package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"muraqqa/internal/domain"
)

type DiscountRepo struct{ db *sqlx.DB }

func NewDiscountRepo(db *sqlx.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// FindDiscount reports (zero, false, nil) for unknown codes: pricing treats
// them as "not applied", not as an error.
func (r *DiscountRepo) FindDiscount(code string) (domain.Discount, bool, error) {
	var d domain.Discount
	err := r.db.Get(&d, `SELECT code, kind, value FROM discounts WHERE code = ?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Discount{}, false, nil
	}
	if err != nil {
		return domain.Discount{}, false, err
	}
	return d, true, nil
}
