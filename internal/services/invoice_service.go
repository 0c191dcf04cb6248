package services

import (
	"muraqqa/internal/domain"
)

// InvoiceLine carries a frozen order line with its charged amounts in both
// the base currency and the requested display currency.
type InvoiceLine struct {
	Title        string              `json:"title"`
	Kind         domain.PurchaseKind `json:"kind"`
	PrintSize    domain.PrintSize    `json:"printSize,omitempty"`
	Qty          int                 `json:"qty"`
	UnitPrice    int64               `json:"unitPrice"`
	LineTotal    int64               `json:"lineTotal"`
	DisplayTotal domain.Money        `json:"displayTotal"`
}

type Invoice struct {
	Order           domain.Order    `json:"order"`
	Lines           []InvoiceLine   `json:"lines"`
	DisplayCurrency domain.Currency `json:"displayCurrency"`
	DisplaySubtotal domain.Money    `json:"displaySubtotal"`
	DisplayShipping domain.Money    `json:"displayShipping"`
	DisplayTax      domain.Money    `json:"displayTax"`
	DisplayDiscount domain.Money    `json:"displayDiscount"`
	DisplayTotal    domain.Money    `json:"displayTotal"`
}

// InvoiceService assembles an immutable snapshot of a persisted order for
// display. Conversion happens here and only here; nothing converted is ever
// written back.
type InvoiceService struct {
	Orders OrderStore
}

func NewInvoiceService(orders OrderStore) *InvoiceService { return &InvoiceService{Orders: orders} }

func (s *InvoiceService) Assemble(orderID string, display domain.Currency) (Invoice, error) {
	o, err := s.Orders.GetOrder(orderID)
	if err != nil {
		return Invoice{}, ErrOrderNotFound
	}
	if display == "" {
		display = domain.PKR
	}

	conv := func(amount int64) (domain.Money, error) {
		return domain.Paisa(amount).ConvertForDisplay(display)
	}

	inv := Invoice{Order: o, DisplayCurrency: display}
	if inv.DisplaySubtotal, err = conv(o.Subtotal); err != nil {
		return Invoice{}, err
	}
	if inv.DisplayShipping, err = conv(o.ShippingCost); err != nil {
		return Invoice{}, err
	}
	if inv.DisplayTax, err = conv(o.Tax); err != nil {
		return Invoice{}, err
	}
	if inv.DisplayDiscount, err = conv(o.Discount); err != nil {
		return Invoice{}, err
	}
	if inv.DisplayTotal, err = conv(o.Total); err != nil {
		return Invoice{}, err
	}

	for _, l := range o.Items {
		dt, err := conv(l.LinePrice())
		if err != nil {
			return Invoice{}, err
		}
		inv.Lines = append(inv.Lines, InvoiceLine{
			Title:        l.Title,
			Kind:         l.Kind,
			PrintSize:    l.PrintSize,
			Qty:          l.Qty,
			UnitPrice:    l.EffectiveUnitPrice(),
			LineTotal:    l.LinePrice(),
			DisplayTotal: dt,
		})
	}
	return inv, nil
}
