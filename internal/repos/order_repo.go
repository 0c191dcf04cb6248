package repos

import (
	"github.com/jmoiron/sqlx"

	"muraqqa/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, COALESCE(session_id,'') AS session_id, COALESCE(buyer_ref,'') AS buyer_ref,
  COALESCE(customer_name,'') AS customer_name, COALESCE(customer_email,'') AS customer_email,
  subtotal, shipping_cost, tax, discount, total, currency, status,
  COALESCE(ship_provider,'') AS ship_provider, COALESCE(ship_label,'') AS ship_label,
  COALESCE(address,'') AS address, COALESCE(country,'') AS country,
  payment_method, payment_ref, paid_at, tracking_ref, created_at`

// CreateOrder writes the header and frozen lines in one transaction: an order
// is either fully persisted or absent.
func (r *OrderRepo) CreateOrder(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, session_id, buyer_ref, customer_name, customer_email,
	    subtotal, shipping_cost, tax, discount, total, currency, status,
	    ship_provider, ship_label, address, country, payment_method, payment_ref, paid_at, tracking_ref, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, o.SessionID, o.BuyerRef, o.CustomerName, o.CustomerEmail,
		o.Subtotal, o.ShippingCost, o.Tax, o.Discount, o.Total, o.Currency, o.Status,
		o.ShipProvider, o.ShipLabel, o.Address, o.Country, o.PaymentMethod, o.PaymentRef, o.PaidAt, o.TrackingRef, o.CreatedAt); err != nil {
		return err
	}

	for _, l := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_lines(id, order_id, artwork_id, title, kind, print_size, qty, unit_price)
		  VALUES(?,?,?,?,?,?,?,?)
		`, l.ID, o.ID, l.ArtworkID, l.Title, l.Kind, l.PrintSize, l.Qty, l.UnitPrice); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) GetOrder(id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, err
	}
	if err := r.db.Select(&o.Items, `
	  SELECT id, artwork_id, title, kind, print_size, qty, unit_price
	  FROM order_lines WHERE order_id = ? ORDER BY id
	`, id); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListByBuyer(buyerRef string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE buyer_ref = ?
	  ORDER BY datetime(created_at) DESC
	`, buyerRef)
	return out, err
}

func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE session_id = ?
	  ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatus writes the new status and any refs in one statement; empty
// refs keep their previous value.
func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus, extra domain.StatusExtra) error {
	_, err := r.db.Exec(`
	  UPDATE orders SET
	    status = ?,
	    payment_ref  = CASE WHEN ? = '' THEN payment_ref  ELSE ? END,
	    paid_at      = CASE WHEN ? = '' THEN paid_at      ELSE ? END,
	    tracking_ref = CASE WHEN ? = '' THEN tracking_ref ELSE ? END
	  WHERE id = ?
	`, status, extra.PaymentRef, extra.PaymentRef, extra.PaidAt, extra.PaidAt, extra.TrackingRef, extra.TrackingRef, id)
	return err
}
