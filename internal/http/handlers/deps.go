package handlers

import (
	"muraqqa/internal/config"
	"muraqqa/internal/domain"
	"muraqqa/internal/services"
)

// Deps holds every handler the router mounts, built from one store bundle so
// both persistence strategies wire identically.
type Deps struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Cart      *CartHandler
	Checkout  *CheckoutHandler
	Payment   *PaymentHandler
	Order     *OrderHandler
	Admin     *AdminHandler
	Favorites *FavoritesHandler

	AuthSvc *services.AuthService
}

func NewDeps(st services.Stores, cfg config.Config) *Deps {
	pricing := services.NewPricingService(st.Discounts, cfg.DutyBP)
	shipping := services.NewShippingService(cfg.Shipping)
	cart := services.NewCartService(st.Carts, st.Artworks)
	catalog := services.NewCatalogService(st.Artworks, st.Artists)
	gateways := map[domain.PaymentMethod]services.PaymentGateway{
		domain.PayCard:         &services.CardGateway{},
		domain.PayBankTransfer: &services.BankTransferGateway{},
	}
	orders := services.NewOrderService(st, pricing, shipping, gateways, services.LogNotifier{})
	invoices := services.NewInvoiceService(st.Orders)
	auth := &services.AuthService{Users: st.Users}
	favorites := services.NewFavoritesService(st.Favorites)

	return &Deps{
		Auth:      &AuthHandler{Auth: auth},
		Catalog:   &CatalogHandler{Catalog: catalog},
		Cart:      &CartHandler{Cart: cart},
		Checkout:  &CheckoutHandler{Cart: cart, Pricing: pricing, Shipping: shipping, Orders: orders, Auth: auth},
		Payment:   &PaymentHandler{Orders: orders, Auth: auth},
		Order:     &OrderHandler{Orders: orders, Invoices: invoices, Auth: auth},
		Admin:     &AdminHandler{Orders: orders},
		Favorites: &FavoritesHandler{Favorites: favorites},
		AuthSvc:   auth,
	}
}
