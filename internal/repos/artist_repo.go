package repos

import (
	"github.com/jmoiron/sqlx"

	"muraqqa/internal/domain"
)

type ArtistRepo struct{ db *sqlx.DB }

func NewArtistRepo(db *sqlx.DB) *ArtistRepo { return &ArtistRepo{db: db} }

func (r *ArtistRepo) ListArtists() ([]domain.Artist, error) {
	var out []domain.Artist
	err := r.db.Select(&out, `
	  SELECT id, name, COALESCE(specialty,'') AS specialty, COALESCE(bio,'') AS bio, created_at
	  FROM artists ORDER BY name
	`)
	return out, err
}

func (r *ArtistRepo) GetArtist(id string) (domain.Artist, error) {
	var a domain.Artist
	err := r.db.Get(&a, `
	  SELECT id, name, COALESCE(specialty,'') AS specialty, COALESCE(bio,'') AS bio, created_at
	  FROM artists WHERE id = ?
	`, id)
	return a, err
}
