package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"essenza/internal/cart"
	"essenza/internal/currency"
	"essenza/internal/payment"
	"essenza/internal/pricing"
	"essenza/internal/repos"
	"essenza/internal/services"
)

func rules() pricing.Ruleset {
	return pricing.Ruleset{
		FreeShippingThreshold: decimal.RequireFromString("35"),
		DiscountThreshold:     decimal.RequireFromString("35"),
		DiscountPct:           decimal.RequireFromString("0.15"),
		FlatShippingCost:      decimal.RequireFromString("6.00"),
		GiftThreshold:         decimal.RequireFromString("35"),
		CouponCode:            "ESSENZA10",
		CouponPct:             decimal.RequireFromString("0.10"),
	}
}

func newServices(t *testing.T, pay payment.Tokenizer) (*services.CartService, *services.CheckoutService, *repos.OrderStore) {
	t.Helper()
	// OpenDB seeds the demo cosmetics catalog.
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// :memory: is per-connection; keep the pool at one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	cartSvc := services.NewCartService(repos.NewCartStore(), repos.NewProductRepo(db), rules())
	orders := repos.NewOrderStore()
	checkoutSvc := services.NewCheckoutService(cartSvc, orders, pay, currency.EUR)
	return cartSvc, checkoutSvc, orders
}

func TestCheckoutFlow(t *testing.T) {
	cartSvc, checkoutSvc, orders := newServices(t, &payment.SandboxProvider{})
	sid := "test-session"

	// Seeded serum is 21.00; two of them cross every threshold.
	if err := cartSvc.Add(sid, "serum-rose-30", nil, 2); err != nil {
		t.Fatal(err)
	}
	cv, err := cartSvc.View(sid, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 {
		t.Fatalf("want 1 line, got %d", len(cv.Items))
	}
	bd := cv.Breakdown
	if !bd.Subtotal.Equal(decimal.RequireFromString("42.00")) {
		t.Fatalf("want subtotal 42.00, got %s", bd.Subtotal)
	}
	if !bd.Discount.Equal(decimal.RequireFromString("6.30")) {
		t.Fatalf("want discount 6.30, got %s", bd.Discount)
	}
	if !bd.Shipping.IsZero() {
		t.Fatalf("want free shipping, got %s", bd.Shipping)
	}
	if !bd.GiftEligible {
		t.Fatal("42.00 must earn the gift")
	}
	if bd.LoyaltyPoints != 10 {
		t.Fatalf("want 10 beauty points, got %d", bd.LoyaltyPoints)
	}

	oid, err := checkoutSvc.Place(context.Background(), sid, services.Contact{Name: "Tester", Email: "t@e.com"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if oid == "" {
		t.Fatal("no order id")
	}

	// The order holds the charged breakdown and a payment token.
	o, err := orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Breakdown.Total.Equal(decimal.RequireFromString("35.70")) {
		t.Fatalf("want total 35.70, got %s", o.Breakdown.Total)
	}
	if o.PaymentToken == "" {
		t.Fatal("order must carry the payment token")
	}

	// Successful checkout clears the cart.
	cv, err = cartSvc.View(sid, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart must be empty after checkout, got %d lines", len(cv.Items))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	_, checkoutSvc, _ := newServices(t, &payment.SandboxProvider{})
	_, err := checkoutSvc.Place(context.Background(), "nobody", services.Contact{Name: "X", Email: "x@e.com"}, "")
	if !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestPaymentFailureLeavesCartIntact(t *testing.T) {
	pay := &payment.SandboxProvider{Fail: func(decimal.Decimal) error {
		return errors.New("card declined")
	}}
	cartSvc, checkoutSvc, orders := newServices(t, pay)
	sid := "test-session"

	if err := cartSvc.Add(sid, "serum-rose-30", nil, 1); err != nil {
		t.Fatal(err)
	}
	_, err := checkoutSvc.Place(context.Background(), sid, services.Contact{Name: "Tester", Email: "t@e.com"}, "")
	if !errors.Is(err, payment.ErrTokenization) {
		t.Fatalf("want ErrTokenization, got %v", err)
	}

	// Cart untouched, nothing recorded: the user can retry.
	cv, err := cartSvc.View(sid, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 {
		t.Fatalf("cart must survive a payment failure, got %d lines", len(cv.Items))
	}
	if got := orders.ListBySession(sid); len(got) != 0 {
		t.Fatalf("no order must be recorded on failure, got %d", len(got))
	}
}

func TestAddVariantProduct(t *testing.T) {
	cartSvc, _, _ := newServices(t, &payment.SandboxProvider{})
	sid := "test-session"

	// Seeded lipstick defines a Shade dimension.
	if err := cartSvc.Add(sid, "lip-velvet", cart.SelectedVariant{"Shade": "Rouge"}, 1); err != nil {
		t.Fatal(err)
	}
	// Incomplete selection never reaches the cart.
	if err := cartSvc.Add(sid, "lip-velvet", nil, 1); err == nil {
		t.Fatal("missing shade selection must fail")
	}
	// A second shade is its own line.
	if err := cartSvc.Add(sid, "lip-velvet", cart.SelectedVariant{"Shade": "Nude"}, 1); err != nil {
		t.Fatal(err)
	}
	cv, err := cartSvc.View(sid, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 2 {
		t.Fatalf("want 2 lines, got %d", len(cv.Items))
	}
}

func TestCouponAtCheckout(t *testing.T) {
	cartSvc, checkoutSvc, orders := newServices(t, &payment.SandboxProvider{})
	sid := "test-session"

	// One serum: 21.00, below the automatic threshold.
	if err := cartSvc.Add(sid, "serum-rose-30", nil, 1); err != nil {
		t.Fatal(err)
	}
	oid, err := checkoutSvc.Place(context.Background(), sid, services.Contact{Name: "Tester", Email: "t@e.com"}, "ESSENZA10")
	if err != nil {
		t.Fatal(err)
	}
	o, err := orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Breakdown.CouponApplied {
		t.Fatal("coupon should apply below the automatic threshold")
	}
	// 21.00 - 2.10 + 6.00 shipping
	if !o.Breakdown.Total.Equal(decimal.RequireFromString("24.90")) {
		t.Fatalf("want total 24.90, got %s", o.Breakdown.Total)
	}
}
