package handlers_test

import (
	"net/http"
	"testing"
)

// Full buyer journey over the wire: browse, cart, quote, submit, pay, invoice.
func TestCheckoutFlowHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	sid := "http-flow"

	// browse
	resp, err := app.Test(jsonReq("GET", "/artworks?category=Calligraphy", sid, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("browse: %d", resp.StatusCode)
	}

	// add the original to the cart
	resp, err = app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-001", "kind": "ORIGINAL",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("cart add: %d", resp.StatusCode)
	}

	// shipping options for the destination
	resp, err = app.Test(jsonReq("GET", "/checkout/shipping?country=Pakistan", sid, nil))
	if err != nil {
		t.Fatal(err)
	}
	var ship struct {
		Options []struct {
			ID    string `json:"id"`
			Price int64  `json:"price"`
		} `json:"options"`
	}
	decodeBody(t, resp, &ship)
	if len(ship.Options) != 1 || ship.Options[0].ID != "domestic-courier" {
		t.Fatalf("bad options: %+v", ship)
	}

	// quote matches what submit will charge
	resp, err = app.Test(jsonReq("POST", "/checkout/quote", sid, map[string]any{
		"country": "Pakistan", "shippingOptionId": "domestic-courier", "discountCode": "MURAQQA10",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var quote struct {
		Total int64 `json:"total"`
	}
	decodeBody(t, resp, &quote)
	if quote.Total != 405500 {
		t.Fatalf("want quote 405500, got %d", quote.Total)
	}

	// submit
	resp, err = app.Test(jsonReq("POST", "/checkout", sid, map[string]any{
		"name": "Collector", "email": "collector@muraqqa.test",
		"address": "14-B Gulberg III, Lahore", "country": "Pakistan",
		"shippingOptionId": "domestic-courier", "discountCode": "MURAQQA10",
		"paymentMethod": "CARD",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: %d", resp.StatusCode)
	}
	var submitted struct {
		Order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Total  int64  `json:"total"`
		} `json:"order"`
		PaymentIntent struct {
			IntentID string `json:"paymentIntentId"`
		} `json:"paymentIntent"`
	}
	decodeBody(t, resp, &submitted)
	if submitted.Order.Status != "PENDING" || submitted.Order.Total != 405500 {
		t.Fatalf("bad submitted order: %+v", submitted.Order)
	}
	if submitted.PaymentIntent.IntentID == "" {
		t.Fatal("card submit must include a payment intent")
	}
	oid := submitted.Order.ID

	// pay
	resp, err = app.Test(jsonReq("POST", "/orders/"+oid+"/pay", sid, map[string]any{
		"number": "4242424242424242", "expiry": "12/27", "cvc": "123",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pay: %d", resp.StatusCode)
	}

	// payment status reflects PAID
	resp, err = app.Test(jsonReq("GET", "/orders/"+oid+"/payment", sid, nil))
	if err != nil {
		t.Fatal(err)
	}
	var ps struct {
		Status string `json:"status"`
		Paid   bool   `json:"paid"`
	}
	decodeBody(t, resp, &ps)
	if ps.Status != "PAID" || !ps.Paid {
		t.Fatalf("bad payment status: %+v", ps)
	}

	// JSON invoice in GBP
	req := jsonReq("GET", "/orders/"+oid+"/invoice?currency=GBP", sid, nil)
	req.Header.Set("Accept", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var inv struct {
		DisplayCurrency string `json:"displayCurrency"`
		DisplayTotal    struct {
			Amount int64 `json:"amount"`
		} `json:"displayTotal"`
	}
	decodeBody(t, resp, &inv)
	if inv.DisplayCurrency != "GBP" {
		t.Fatalf("want GBP invoice, got %+v", inv)
	}
	// 405500 * 0.0028 = 1135.4 -> 1135 pence
	if inv.DisplayTotal.Amount != 1135 {
		t.Fatalf("want display total 1135, got %d", inv.DisplayTotal.Amount)
	}
}

// The buyer types the code however they like; quote and submit must agree on
// what it is worth.
func TestLowercaseDiscountCodePricesSameAtSubmit(t *testing.T) {
	app, _ := newTestApp(t)
	sid := "http-code-case"

	if resp, _ := app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-001", "kind": "ORIGINAL",
	})); resp.StatusCode != http.StatusCreated {
		t.Fatalf("cart add: %d", resp.StatusCode)
	}

	resp, err := app.Test(jsonReq("POST", "/checkout/quote", sid, map[string]any{
		"country": "Pakistan", "shippingOptionId": "domestic-courier", "discountCode": "muraqqa10",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var quote struct {
		Discount int64 `json:"discount"`
		Total    int64 `json:"total"`
	}
	decodeBody(t, resp, &quote)
	if quote.Discount != 45000 || quote.Total != 405500 {
		t.Fatalf("bad quote for lowercase code: %+v", quote)
	}

	resp, err = app.Test(jsonReq("POST", "/checkout", sid, map[string]any{
		"name": "Collector", "email": "collector@muraqqa.test",
		"address": "14-B Gulberg III, Lahore", "country": "Pakistan",
		"shippingOptionId": "domestic-courier", "discountCode": "muraqqa10",
		"paymentMethod": "BANK_TRANSFER",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: %d", resp.StatusCode)
	}
	var submitted struct {
		Order struct {
			Discount int64 `json:"discount"`
			Total    int64 `json:"total"`
		} `json:"order"`
	}
	decodeBody(t, resp, &submitted)
	if submitted.Order.Total != quote.Total || submitted.Order.Discount != quote.Discount {
		t.Fatalf("quoted %d/%d but charged %d/%d",
			quote.Discount, quote.Total, submitted.Order.Discount, submitted.Order.Total)
	}
}

// An order cancelled after payment still reports that money moved.
func TestPaymentStatusSurvivesCancelHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	sid := "http-cancel-paid"

	if resp, _ := app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-001", "kind": "ORIGINAL",
	})); resp.StatusCode != http.StatusCreated {
		t.Fatalf("cart add: %d", resp.StatusCode)
	}
	resp, err := app.Test(jsonReq("POST", "/checkout", sid, map[string]any{
		"name": "Collector", "email": "c@muraqqa.test",
		"address": "14-B Gulberg III, Lahore", "country": "Pakistan",
		"shippingOptionId": "domestic-courier", "paymentMethod": "CARD",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var submitted struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	decodeBody(t, resp, &submitted)
	oid := submitted.Order.ID

	if resp, _ := app.Test(jsonReq("POST", "/orders/"+oid+"/pay", sid, map[string]any{
		"number": "4242424242424242", "expiry": "12/27", "cvc": "123",
	})); resp.StatusCode != http.StatusOK {
		t.Fatalf("pay: %d", resp.StatusCode)
	}
	if resp, _ := app.Test(jsonReq("POST", "/orders/"+oid+"/cancel", sid, nil)); resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel: %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonReq("GET", "/orders/"+oid+"/payment", sid, nil))
	if err != nil {
		t.Fatal(err)
	}
	var ps struct {
		Status string `json:"status"`
		Paid   bool   `json:"paid"`
		PaidAt string `json:"paidAt"`
	}
	decodeBody(t, resp, &ps)
	if ps.Status != "CANCELLED" || !ps.Paid || ps.PaidAt == "" {
		t.Fatalf("cancelled-after-payment must still read paid: %+v", ps)
	}
}

func TestDeclinedCardHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	sid := "http-declined"

	if resp, _ := app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-003", "kind": "ORIGINAL",
	})); resp.StatusCode != http.StatusCreated {
		t.Fatalf("cart add: %d", resp.StatusCode)
	}
	resp, err := app.Test(jsonReq("POST", "/checkout", sid, map[string]any{
		"name": "Collector", "email": "c@muraqqa.test",
		"address": "House 7, F-6", "country": "Pakistan",
		"shippingOptionId": "domestic-courier", "paymentMethod": "CARD",
	}))
	if err != nil {
		t.Fatal(err)
	}
	var submitted struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	decodeBody(t, resp, &submitted)

	resp, err = app.Test(jsonReq("POST", "/orders/"+submitted.Order.ID+"/pay", sid, map[string]any{
		"number": "4242424242420000", "expiry": "12/27", "cvc": "123",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("want 402 for declined card, got %d", resp.StatusCode)
	}

	// the order is still open for a retry
	resp, err = app.Test(jsonReq("GET", "/orders/"+submitted.Order.ID+"/payment", sid, nil))
	if err != nil {
		t.Fatal(err)
	}
	var ps struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &ps)
	if ps.Status != "PENDING" {
		t.Fatalf("declined card must leave PENDING, got %s", ps.Status)
	}
}

func TestCheckoutValidationHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	sid := "http-validation"

	// empty cart submit
	resp, err := app.Test(jsonReq("POST", "/checkout", sid, map[string]any{
		"name": "X", "email": "x@y.z", "address": "somewhere", "country": "Pakistan",
		"shippingOptionId": "domestic-courier", "paymentMethod": "CARD",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty cart: want 400, got %d", resp.StatusCode)
	}

	// bad purchase kind
	resp, _ = app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-001", "kind": "POSTER",
	}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad kind: want 400, got %d", resp.StatusCode)
	}

	// print without a size
	resp, _ = app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-001", "kind": "PRINT",
	}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing size: want 400, got %d", resp.StatusCode)
	}

	// missing address surfaces the offending field
	if resp, _ = app.Test(jsonReq("POST", "/cart", sid, map[string]any{
		"artworkId": "art-001", "kind": "ORIGINAL",
	})); resp.StatusCode != http.StatusCreated {
		t.Fatalf("cart add: %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("POST", "/checkout", sid, map[string]any{
		"name": "X", "email": "x@y.z", "country": "Pakistan",
		"shippingOptionId": "domestic-courier", "paymentMethod": "CARD",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing address: want 400, got %d", resp.StatusCode)
	}
	var body struct {
		Field string `json:"field"`
	}
	decodeBody(t, resp, &body)
	if body.Field != "address" {
		t.Fatalf("want field=address, got %q", body.Field)
	}
}
