package repos

import (
	"github.com/jmoiron/sqlx"

	"muraqqa/internal/services"
)

// NewSQLStores wires the durable strategy.
func NewSQLStores(db *sqlx.DB) services.Stores {
	return services.Stores{
		Artworks:  NewArtworkRepo(db),
		Artists:   NewArtistRepo(db),
		Carts:     NewCartRepo(db),
		Orders:    NewOrderRepo(db),
		Discounts: NewDiscountRepo(db),
		Users:     NewUserRepo(db),
		Favorites: NewFavoriteRepo(db),
	}
}

// NewMemStores wires the offline strategy with the demo catalog.
func NewMemStores() services.Stores {
	m := NewMemStore().SeedDemo()
	return services.Stores{
		Artworks:  m,
		Artists:   m,
		Carts:     m,
		Orders:    m,
		Discounts: m,
		Users:     m,
		Favorites: m,
	}
}
