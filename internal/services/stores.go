package services

import "muraqqa/internal/domain"

// Store interfaces are satisfied both by the sqlx repos (durable strategy)
// and by repos.MemStore (offline strategy). Services never see which one
// they were handed.

// ArtworkStore is the catalog snapshot accessor. The core never mutates the
// catalog except to flip the sold flag on a purchased original.
type ArtworkStore interface {
	Get(id string) (domain.Artwork, error)
	List(category, q string, limit, offset int) ([]domain.Artwork, error)
	Availability(id string) (domain.Availability, error)
	// MarkSold flips in_stock 1 -> 0 with a compare-and-set; returns
	// ErrOutOfStock when the original was already sold.
	MarkSold(id string) error
	// Restore undoes MarkSold when a multi-original confirmation fails midway.
	Restore(id string) error
}

type ArtistStore interface {
	ListArtists() ([]domain.Artist, error)
	GetArtist(id string) (domain.Artist, error)
}

type CartStore interface {
	EnsureCart(sessionID string) (string, error)
	InsertLine(cartID string, line domain.LineItem) error
	RemoveLine(cartID, lineID string) error
	Lines(cartID string) ([]domain.LineItem, error)
	ClearCart(cartID string) error
}

type OrderStore interface {
	// CreateOrder persists the header and frozen line items atomically.
	CreateOrder(o domain.Order) error
	GetOrder(id string) (domain.Order, error)
	ListByBuyer(buyerRef string) ([]domain.Order, error)
	ListBySession(sessionID string) ([]domain.Order, error)
	ListLatest(limit int) ([]domain.Order, error)
	UpdateStatus(id string, status domain.OrderStatus, extra domain.StatusExtra) error
}

// DiscountStore returns (Discount, true) for a known code. Unknown codes are
// not an error: pricing treats them as "not applied".
type DiscountStore interface {
	FindDiscount(code string) (domain.Discount, bool, error)
}

type UserStore interface {
	ByEmail(email string) (*domain.User, error)
	BindSession(sid, userID string) error
	SessionUser(sid string) (*domain.User, error)
	UnbindSession(sid string) error
}

type FavoriteStore interface {
	SaveFavorite(sessionID, artworkID string) error
	RemoveFavorite(sessionID, artworkID string) error
	ListFavorites(sessionID string) ([]domain.Artwork, error)
}

// Stores bundles every backend dependency for wiring.
type Stores struct {
	Artworks  ArtworkStore
	Artists   ArtistStore
	Carts     CartStore
	Orders    OrderStore
	Discounts DiscountStore
	Users     UserStore
	Favorites FavoriteStore
}
