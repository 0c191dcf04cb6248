package services

import (
	"github.com/google/uuid"

	"muraqqa/internal/domain"
)

// CartService owns the session cart. Single writer per session; adding the
// same artwork twice under the same kind+size yields two distinct lines so
// each line stays individually removable.
type CartService struct {
	Carts    CartStore
	Artworks ArtworkStore
}

func NewCartService(carts CartStore, artworks ArtworkStore) *CartService {
	return &CartService{Carts: carts, Artworks: artworks}
}

// Add snapshots the artwork's current base price into a new line.
// Availability gates originals only: prints stay purchasable after the
// original sells.
func (s *CartService) Add(sessionID, artworkID string, kind domain.PurchaseKind, size domain.PrintSize, qty int) (domain.LineItem, error) {
	if kind != domain.KindOriginal && kind != domain.KindPrint {
		return domain.LineItem{}, Invalid("kind", "must be ORIGINAL or PRINT")
	}
	if kind == domain.KindPrint && !size.Valid() {
		return domain.LineItem{}, ErrInvalidSelection
	}
	if kind == domain.KindOriginal {
		size = ""
		qty = 1 // an original cannot have multiple units
	}
	if qty < 1 {
		qty = 1
	}

	art, err := s.Artworks.Get(artworkID)
	if err != nil {
		return domain.LineItem{}, err
	}
	if kind == domain.KindOriginal && !art.InStock {
		return domain.LineItem{}, ErrOutOfStock
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.LineItem{}, err
	}

	line := domain.LineItem{
		ID:        uuid.NewString(),
		ArtworkID: art.ID,
		Title:     art.Title,
		Kind:      kind,
		PrintSize: size,
		Qty:       qty,
		UnitPrice: art.Price,
	}
	if err := s.Carts.InsertLine(cartID, line); err != nil {
		return domain.LineItem{}, err
	}
	return line, nil
}

func (s *CartService) Remove(sessionID, lineID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveLine(cartID, lineID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.ClearCart(cartID)
}

func (s *CartService) Items(sessionID string) ([]domain.LineItem, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Carts.Lines(cartID)
}

type CartView struct {
	Items    []domain.LineItem `json:"items"`
	Subtotal int64             `json:"subtotal"`
	Currency domain.Currency   `json:"currency"`
}

func (s *CartService) View(sessionID string) (CartView, error) {
	items, err := s.Items(sessionID)
	if err != nil {
		return CartView{}, err
	}
	var subtotal int64
	for _, l := range items {
		subtotal += l.LinePrice()
	}
	return CartView{Items: items, Subtotal: subtotal, Currency: domain.PKR}, nil
}
