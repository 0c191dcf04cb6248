package domain

import "github.com/shopspring/decimal"

type Artist struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Specialty string `db:"specialty" json:"specialty"`
	Bio       string `db:"bio" json:"bio"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Artwork struct {
	ID           string `db:"id" json:"id"`
	ArtistID     string `db:"artist_id" json:"artistId"`
	ArtistName   string `db:"artist_name" json:"artistName"`
	Title        string `db:"title" json:"title"`
	Description  string `db:"description" json:"description"`
	Category     string `db:"category" json:"category"` // Calligraphy | Landscape | Abstract | Miniature | Portrait
	Medium       string `db:"medium" json:"medium"`
	Year         int    `db:"year" json:"year"`
	Price        int64  `db:"price" json:"price"` // base price in paisa
	InStock      bool   `db:"in_stock" json:"inStock"`
	ProvenanceID string `db:"provenance_id" json:"provenanceId,omitempty"`
	IsAuction    bool   `db:"is_auction" json:"isAuction"`
	AuctionEnd   string `db:"auction_end" json:"auctionEnd,omitempty"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// Availability is the checkout-time catalog snapshot.
type Availability struct {
	Price   Money `json:"price"`
	InStock bool  `json:"inStock"`
}

type PurchaseKind string

const (
	KindOriginal PurchaseKind = "ORIGINAL"
	KindPrint    PurchaseKind = "PRINT"
)

type PrintSize string

const (
	PrintA4     PrintSize = "A4"
	PrintA3     PrintSize = "A3"
	PrintCanvas PrintSize = "CANVAS_24x36"
)

// Print prices are a fixed fraction of the original's base price,
// never a separately stored print price.
var printMultipliers = map[PrintSize]decimal.Decimal{
	PrintA4:     decimal.RequireFromString("0.05"),
	PrintA3:     decimal.RequireFromString("0.08"),
	PrintCanvas: decimal.RequireFromString("0.15"),
}

func (p PrintSize) Valid() bool {
	_, ok := printMultipliers[p]
	return ok
}

func (p PrintSize) Multiplier() decimal.Decimal { return printMultipliers[p] }

// LineItem is one cart line. UnitPrice snapshots the original's base price at
// add-to-cart time; it does not track later catalog price changes.
type LineItem struct {
	ID        string       `db:"id" json:"id"`
	ArtworkID string       `db:"artwork_id" json:"artworkId"`
	Title     string       `db:"title" json:"title"`
	Kind      PurchaseKind `db:"kind" json:"kind"`
	PrintSize PrintSize    `db:"print_size" json:"printSize,omitempty"` // empty for originals
	Qty       int          `db:"qty" json:"qty"`
	UnitPrice int64        `db:"unit_price" json:"unitPrice"` // base price snapshot, paisa
}

// EffectiveUnitPrice is the per-unit charge: the snapshot itself for an
// original, or the snapshot scaled by the print-size multiplier.
func (l LineItem) EffectiveUnitPrice() int64 {
	if l.Kind == KindOriginal {
		return l.UnitPrice
	}
	return RoundHalfUp(l.UnitPrice, l.PrintSize.Multiplier())
}

func (l LineItem) LinePrice() int64 {
	return l.EffectiveUnitPrice() * int64(l.Qty)
}

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "PERCENTAGE"
	DiscountFixed      DiscountKind = "FIXED"
)

type Discount struct {
	Code  string       `db:"code" json:"code"`
	Kind  DiscountKind `db:"kind" json:"kind"`
	Value int64        `db:"value" json:"value"` // percent (0-100) or fixed paisa
}

// Amount returns the discount in paisa, never exceeding the subtotal.
func (d Discount) Amount(subtotal int64) int64 {
	var amt int64
	switch d.Kind {
	case DiscountPercentage:
		amt = RoundHalfUp(subtotal, decimal.NewFromInt(d.Value).Div(decimal.NewFromInt(100)))
	case DiscountFixed:
		amt = d.Value
	}
	if amt > subtotal {
		amt = subtotal
	}
	if amt < 0 {
		amt = 0
	}
	return amt
}

// ShippingOption is ephemeral: recomputed per checkout attempt and embedded
// into the order as cost+label once selected.
type ShippingOption struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	ServiceLabel  string `json:"serviceLabel"`
	Price         int64  `json:"price"` // paisa
	EstimatedDays string `json:"estimatedDays"`
}

type PaymentMethod string

const (
	PayCard         PaymentMethod = "CARD"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
)

type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVC    string `json:"cvc"`
}

type PricingResult struct {
	Subtotal     int64    `json:"subtotal"`
	ShippingCost int64    `json:"shippingCost"`
	Tax          int64    `json:"tax"`
	Discount     int64    `json:"discount"`
	Total        int64    `json:"total"`
	Currency     Currency `json:"currency"`
}

// Order is the durable aggregate root. Line items are frozen copies: editing
// the live cart after checkout never alters a submitted order.
type Order struct {
	ID            string        `db:"id" json:"id"`
	SessionID     string        `db:"session_id" json:"-"`
	BuyerRef      string        `db:"buyer_ref" json:"buyerRef"`
	CustomerName  string        `db:"customer_name" json:"customerName"`
	CustomerEmail string        `db:"customer_email" json:"customerEmail"`
	Items         []LineItem    `json:"items"`
	Subtotal      int64         `db:"subtotal" json:"subtotal"`
	ShippingCost  int64         `db:"shipping_cost" json:"shippingCost"`
	Tax           int64         `db:"tax" json:"tax"`
	Discount      int64         `db:"discount" json:"discount"`
	Total         int64         `db:"total" json:"total"`
	Currency      Currency      `db:"currency" json:"currency"`
	Status        OrderStatus   `db:"status" json:"status"`
	ShipProvider  string        `db:"ship_provider" json:"shipProvider"`
	ShipLabel     string        `db:"ship_label" json:"shipLabel"`
	Address       string        `db:"address" json:"shippingAddress"`
	Country       string        `db:"country" json:"shippingCountry"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	PaymentRef    string        `db:"payment_ref" json:"paymentRef,omitempty"`
	PaidAt        string        `db:"paid_at" json:"paidAt,omitempty"` // set once, on the PAID transition; survives cancellation
	TrackingRef   string        `db:"tracking_ref" json:"trackingRef,omitempty"`
	CreatedAt     string        `db:"created_at" json:"createdAt"`
}

// StatusExtra carries the optional fields written alongside a transition.
type StatusExtra struct {
	PaymentRef  string
	PaidAt      string
	TrackingRef string
}

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"` // USER | ADMIN
}
