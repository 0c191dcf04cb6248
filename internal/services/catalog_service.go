package services

import "muraqqa/internal/domain"

// CatalogService is the read-only browse/search surface over artworks and
// artists. Checkout only consumes the availability snapshot.
type CatalogService struct {
	Artworks ArtworkStore
	Artists  ArtistStore
}

func NewCatalogService(artworks ArtworkStore, artists ArtistStore) *CatalogService {
	return &CatalogService{Artworks: artworks, Artists: artists}
}

func (s *CatalogService) List(category, q string, page, pageSize int) ([]domain.Artwork, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	return s.Artworks.List(category, q, pageSize, (page-1)*pageSize)
}

func (s *CatalogService) Get(id string) (domain.Artwork, error) {
	return s.Artworks.Get(id)
}

func (s *CatalogService) Availability(id string) (domain.Availability, error) {
	return s.Artworks.Availability(id)
}

func (s *CatalogService) ListArtists() ([]domain.Artist, error) {
	return s.Artists.ListArtists()
}

func (s *CatalogService) GetArtist(id string) (domain.Artist, error) {
	return s.Artists.GetArtist(id)
}
