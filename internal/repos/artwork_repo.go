package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"muraqqa/internal/domain"
	"muraqqa/internal/services"
)

type ArtworkRepo struct{ db *sqlx.DB }

func NewArtworkRepo(db *sqlx.DB) *ArtworkRepo { return &ArtworkRepo{db: db} }

const artworkCols = `
  a.id, a.artist_id, ar.name AS artist_name, a.title,
  COALESCE(a.description,'') AS description, a.category,
  COALESCE(a.medium,'') AS medium, COALESCE(a.year,0) AS year,
  a.price, a.in_stock, COALESCE(a.provenance_id,'') AS provenance_id,
  a.is_auction, COALESCE(a.auction_end,'') AS auction_end, a.created_at`

func (r *ArtworkRepo) Get(id string) (domain.Artwork, error) {
	var a domain.Artwork
	err := r.db.Get(&a, `
	  SELECT `+artworkCols+`
	  FROM artworks a JOIN artists ar ON ar.id = a.artist_id
	  WHERE a.id = ?
	`, id)
	return a, err
}

func (r *ArtworkRepo) List(category, q string, limit, offset int) ([]domain.Artwork, error) {
	where := `1=1`
	args := []any{}
	if category != "" {
		where += ` AND a.category = ?`
		args = append(args, category)
	}
	if q != "" {
		where += ` AND (LOWER(a.title) LIKE ? OR LOWER(ar.name) LIKE ?)`
		p := "%" + strings.ToLower(q) + "%"
		args = append(args, p, p)
	}
	args = append(args, limit, offset)

	var out []domain.Artwork
	err := r.db.Select(&out, `
	  SELECT `+artworkCols+`
	  FROM artworks a JOIN artists ar ON ar.id = a.artist_id
	  WHERE `+where+`
	  ORDER BY a.created_at DESC
	  LIMIT ? OFFSET ?
	`, args...)
	return out, err
}

// Availability is the checkout-time snapshot: current base price + sold flag.
func (r *ArtworkRepo) Availability(id string) (domain.Availability, error) {
	var row struct {
		Price   int64 `db:"price"`
		InStock bool  `db:"in_stock"`
	}
	if err := r.db.Get(&row, `SELECT price, in_stock FROM artworks WHERE id = ?`, id); err != nil {
		return domain.Availability{}, err
	}
	return domain.Availability{Price: domain.Paisa(row.Price), InStock: row.InStock}, nil
}

// MarkSold flips the sold flag with a guard so two simultaneous buyers cannot
// both take a unique original.
func (r *ArtworkRepo) MarkSold(id string) error {
	res, err := r.db.Exec(`UPDATE artworks SET in_stock = 0 WHERE id = ? AND in_stock = 1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return services.ErrOutOfStock
	}
	return nil
}

func (r *ArtworkRepo) Restore(id string) error {
	_, err := r.db.Exec(`UPDATE artworks SET in_stock = 1 WHERE id = ?`, id)
	return err
}
