package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"muraqqa/internal/domain"
)

type SubmitRequest struct {
	Name             string
	Email            string
	Address          string
	Country          string
	ShippingOptionID string
	DiscountCode     string
	PaymentMethod    domain.PaymentMethod
}

// OrderService drives the order lifecycle. Transitions serialize per order
// id, so a duplicated payment confirmation can never double-apply the PAID
// side effects.
type OrderService struct {
	Carts    CartStore
	Artworks ArtworkStore
	Orders   OrderStore
	Pricing  *PricingService
	Shipping *ShippingService
	Gateways map[domain.PaymentMethod]PaymentGateway
	Notifier Notifier

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOrderService(st Stores, pricing *PricingService, shipping *ShippingService, gateways map[domain.PaymentMethod]PaymentGateway, notifier Notifier) *OrderService {
	return &OrderService{
		Carts:    st.Carts,
		Artworks: st.Artworks,
		Orders:   st.Orders,
		Pricing:  pricing,
		Shipping: shipping,
		Gateways: gateways,
		Notifier: notifier,
		locks:    map[string]*sync.Mutex{},
	}
}

func (s *OrderService) lock(orderID string) func() {
	s.mu.Lock()
	m, ok := s.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[orderID] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Submit freezes the cart into a PENDING order. All pricing fields are
// computed before the first persistence write, so a failed submit never
// leaves a half-priced order behind. For card payments an intent is requested
// before returning; a gateway outage leaves the order PENDING for retry.
func (s *OrderService) Submit(ctx context.Context, sessionID, buyerRef string, req SubmitRequest) (domain.Order, PaymentIntent, error) {
	if req.PaymentMethod != domain.PayCard && req.PaymentMethod != domain.PayBankTransfer {
		return domain.Order{}, PaymentIntent{}, Invalid("paymentMethod", "must be CARD or BANK_TRANSFER")
	}
	if strings.TrimSpace(req.Address) == "" {
		return domain.Order{}, PaymentIntent{}, Invalid("address", "shipping address required")
	}
	if strings.TrimSpace(req.Country) == "" {
		return domain.Order{}, PaymentIntent{}, Invalid("country", "destination country required")
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return domain.Order{}, PaymentIntent{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return domain.Order{}, PaymentIntent{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, PaymentIntent{}, ErrEmptyCart
	}

	// Re-validate availability: an original sold between add-to-cart and
	// checkout makes the cart stale.
	for _, l := range lines {
		if l.Kind != domain.KindOriginal {
			continue
		}
		av, err := s.Artworks.Availability(l.ArtworkID)
		if err != nil {
			return domain.Order{}, PaymentIntent{}, err
		}
		if !av.InStock {
			return domain.Order{}, PaymentIntent{}, fmt.Errorf("%s: %w", l.ArtworkID, ErrStaleCart)
		}
	}

	opt, err := s.Shipping.Resolve(req.Country, req.ShippingOptionID, lines)
	if err != nil {
		return domain.Order{}, PaymentIntent{}, err
	}
	pr, err := s.Pricing.Price(lines, req.Country, opt.Price, req.DiscountCode)
	if err != nil {
		return domain.Order{}, PaymentIntent{}, err
	}

	order := domain.Order{
		ID:            "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		SessionID:     sessionID,
		BuyerRef:      buyerRef,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		Items:         lines,
		Subtotal:      pr.Subtotal,
		ShippingCost:  pr.ShippingCost,
		Tax:           pr.Tax,
		Discount:      pr.Discount,
		Total:         pr.Total,
		Currency:      pr.Currency,
		Status:        domain.StatusPending,
		ShipProvider:  opt.Provider,
		ShipLabel:     opt.ServiceLabel,
		Address:       req.Address,
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Orders.CreateOrder(order); err != nil {
		return domain.Order{}, PaymentIntent{}, err
	}

	var intent PaymentIntent
	if req.PaymentMethod == domain.PayCard {
		intent, err = s.Gateways[domain.PayCard].CreateIntent(ctx, order)
		if err != nil {
			// order stays PENDING; the buyer retries intent creation
			return order, PaymentIntent{}, err
		}
		if err := s.Orders.UpdateStatus(order.ID, domain.StatusPending, domain.StatusExtra{PaymentRef: intent.IntentID}); err != nil {
			return order, PaymentIntent{}, err
		}
		order.PaymentRef = intent.IntentID
	}
	return order, intent, nil
}

// CreateIntent re-requests a payment intent for a PENDING card order (retry
// path after a gateway outage).
func (s *OrderService) CreateIntent(ctx context.Context, orderID string) (PaymentIntent, error) {
	unlock := s.lock(orderID)
	defer unlock()

	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return PaymentIntent{}, ErrOrderNotFound
	}
	if o.PaymentMethod != domain.PayCard {
		return PaymentIntent{}, Invalid("paymentMethod", "order is not a card payment")
	}
	if o.Status != domain.StatusPending {
		return PaymentIntent{}, fmt.Errorf("create intent on %s order: %w", o.Status, ErrInvalidTransition)
	}
	intent, err := s.Gateways[domain.PayCard].CreateIntent(ctx, o)
	if err != nil {
		return PaymentIntent{}, err
	}
	if err := s.Orders.UpdateStatus(o.ID, domain.StatusPending, domain.StatusExtra{PaymentRef: intent.IntentID}); err != nil {
		return PaymentIntent{}, err
	}
	return intent, nil
}

// PayWithCard runs the card confirmation against the gateway and, on
// success, applies the PENDING -> PAID transition. Validation failures and
// declines leave the order PENDING.
func (s *OrderService) PayWithCard(ctx context.Context, orderID string, card domain.CardDetails) (domain.Order, error) {
	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return domain.Order{}, ErrOrderNotFound
	}
	if o.PaymentMethod != domain.PayCard {
		return domain.Order{}, Invalid("paymentMethod", "order is not a card payment")
	}
	if o.Status == domain.StatusPaid {
		return o, nil
	}
	res, err := s.Gateways[domain.PayCard].Confirm(ctx, o.PaymentRef, card)
	if err != nil {
		return o, err
	}
	return s.ConfirmPayment(orderID, res.Reference)
}

// ConfirmBankTransfer records an operator-verified wire against the order.
// Card orders must settle through the gateway, so the method guard mirrors
// PayWithCard's.
func (s *OrderService) ConfirmBankTransfer(orderID, reference string) (domain.Order, error) {
	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return domain.Order{}, ErrOrderNotFound
	}
	if o.PaymentMethod != domain.PayBankTransfer {
		return domain.Order{}, Invalid("paymentMethod", "order is not a bank transfer")
	}
	return s.ConfirmPayment(orderID, reference)
}

// ConfirmPayment transitions PENDING -> PAID exactly once. A repeat call on
// an already-PAID order is a no-op, matching duplicated gateway callbacks.
// Side effects on the real transition: mark purchased originals sold (CAS),
// clear the originating cart, emit the confirmation event.
func (s *OrderService) ConfirmPayment(orderID, reference string) (domain.Order, error) {
	unlock := s.lock(orderID)
	defer unlock()

	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return domain.Order{}, ErrOrderNotFound
	}
	if o.Status == domain.StatusPaid {
		return o, nil
	}
	if !o.Status.CanTransitionTo(domain.StatusPaid) {
		return o, fmt.Errorf("%s -> PAID: %w", o.Status, ErrInvalidTransition)
	}

	// Guarded read-then-write on each original: losing the race to another
	// buyer cancels this order instead of overselling a unique piece.
	var sold []string
	for _, l := range o.Items {
		if l.Kind != domain.KindOriginal {
			continue
		}
		if err := s.Artworks.MarkSold(l.ArtworkID); err != nil {
			for _, id := range sold {
				if rerr := s.Artworks.Restore(id); rerr != nil {
					log.Printf("[order] restore %s after failed confirm: %v", id, rerr)
				}
			}
			if uerr := s.Orders.UpdateStatus(o.ID, domain.StatusCancelled, domain.StatusExtra{}); uerr != nil {
				return o, uerr
			}
			return o, fmt.Errorf("%s: %w", l.ArtworkID, err)
		}
		sold = append(sold, l.ArtworkID)
	}

	paidAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.Orders.UpdateStatus(o.ID, domain.StatusPaid, domain.StatusExtra{PaymentRef: reference, PaidAt: paidAt}); err != nil {
		return o, err
	}
	o.Status = domain.StatusPaid
	o.PaymentRef = reference
	o.PaidAt = paidAt

	if cartID, err := s.Carts.EnsureCart(o.SessionID); err == nil {
		if err := s.Carts.ClearCart(cartID); err != nil {
			log.Printf("[order] clear cart for %s: %v", o.ID, err)
		}
	}
	if err := s.Notifier.SendOrderConfirmation(o); err != nil {
		log.Printf("[order] confirmation notify for %s: %v", o.ID, err)
	}
	return o, nil
}

// MarkProcessing is the admin-only fulfillment-start transition.
func (s *OrderService) MarkProcessing(orderID string) (domain.Order, error) {
	return s.step(orderID, domain.StatusProcessing, domain.StatusExtra{})
}

func (s *OrderService) MarkShipped(orderID, trackingRef string) (domain.Order, error) {
	if strings.TrimSpace(trackingRef) == "" {
		return domain.Order{}, Invalid("trackingRef", "tracking reference required")
	}
	return s.step(orderID, domain.StatusShipped, domain.StatusExtra{TrackingRef: trackingRef})
}

func (s *OrderService) MarkDelivered(orderID string) (domain.Order, error) {
	return s.step(orderID, domain.StatusDelivered, domain.StatusExtra{})
}

// Cancel is allowed from any non-terminal state. Cancelling a PAID order
// only records the transition and raises the refund-requested signal; the
// refund itself is a business concern outside this core.
func (s *OrderService) Cancel(orderID string) (domain.Order, error) {
	unlock := s.lock(orderID)
	defer unlock()

	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return domain.Order{}, ErrOrderNotFound
	}
	if o.Status == domain.StatusCancelled {
		return o, nil
	}
	if !o.Status.CanTransitionTo(domain.StatusCancelled) {
		return o, fmt.Errorf("%s -> CANCELLED: %w", o.Status, ErrInvalidTransition)
	}
	wasPaid := o.Status != domain.StatusPending
	if err := s.Orders.UpdateStatus(o.ID, domain.StatusCancelled, domain.StatusExtra{}); err != nil {
		return o, err
	}
	// release originals reserved by this order
	for _, l := range o.Items {
		if l.Kind == domain.KindOriginal && wasPaid {
			if err := s.Artworks.Restore(l.ArtworkID); err != nil {
				log.Printf("[order] restore %s on cancel: %v", l.ArtworkID, err)
			}
		}
	}
	o.Status = domain.StatusCancelled
	if wasPaid {
		if err := s.Notifier.SendRefundRequested(o); err != nil {
			log.Printf("[order] refund notify for %s: %v", o.ID, err)
		}
	}
	return o, nil
}

func (s *OrderService) step(orderID string, target domain.OrderStatus, extra domain.StatusExtra) (domain.Order, error) {
	unlock := s.lock(orderID)
	defer unlock()

	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return domain.Order{}, ErrOrderNotFound
	}
	if o.Status == target {
		return o, nil
	}
	if !o.Status.CanTransitionTo(target) {
		return o, fmt.Errorf("%s -> %s: %w", o.Status, target, ErrInvalidTransition)
	}
	if err := s.Orders.UpdateStatus(o.ID, target, extra); err != nil {
		return o, err
	}
	o.Status = target
	if extra.TrackingRef != "" {
		o.TrackingRef = extra.TrackingRef
	}
	return o, nil
}

func (s *OrderService) Get(orderID string) (domain.Order, error) {
	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// History merges the buyer's orders with guest orders placed under the same
// browser session, deduped by id. Both lists arrive newest-first from the
// store, so the merge preserves that ordering.
func (s *OrderService) History(buyerRef, sessionID string) ([]domain.Order, error) {
	byBuyer, err := s.Orders.ListByBuyer(buyerRef)
	if err != nil {
		return nil, err
	}
	bySession, err := s.Orders.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(byBuyer))
	out := make([]domain.Order, 0, len(byBuyer)+len(bySession))
	for _, o := range byBuyer {
		seen[o.ID] = true
		out = append(out, o)
	}
	for _, o := range bySession {
		if !seen[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

// Latest is the back-office feed of recent orders across all buyers.
func (s *OrderService) Latest(limit int) ([]domain.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Orders.ListLatest(limit)
}
