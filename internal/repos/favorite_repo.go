package repos

import (
	"github.com/jmoiron/sqlx"

	"muraqqa/internal/domain"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) SaveFavorite(sessionID, artworkID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO favorites(session_id, artwork_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(session_id, artwork_id) DO NOTHING
	`, sessionID, artworkID)
	return err
}

func (r *FavoriteRepo) RemoveFavorite(sessionID, artworkID string) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE session_id=? AND artwork_id=?`, sessionID, artworkID)
	return err
}

func (r *FavoriteRepo) ListFavorites(sessionID string) ([]domain.Artwork, error) {
	var out []domain.Artwork
	err := r.db.Select(&out, `
	  SELECT `+artworkCols+`
	  FROM favorites f
	  JOIN artworks a ON a.id = f.artwork_id
	  JOIN artists ar ON ar.id = a.artist_id
	  WHERE f.session_id = ?
	  ORDER BY f.created_at DESC
	`, sessionID)
	return out, err
}
