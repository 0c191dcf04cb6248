package services

import "muraqqa/internal/domain"

type FavoritesService struct {
	Repo FavoriteStore
}

func NewFavoritesService(r FavoriteStore) *FavoritesService { return &FavoritesService{Repo: r} }

func (s *FavoritesService) Save(sessionID, artworkID string) error {
	return s.Repo.SaveFavorite(sessionID, artworkID)
}

func (s *FavoritesService) Unsave(sessionID, artworkID string) error {
	return s.Repo.RemoveFavorite(sessionID, artworkID)
}

func (s *FavoritesService) List(sessionID string) ([]domain.Artwork, error) {
	return s.Repo.ListFavorites(sessionID)
}
