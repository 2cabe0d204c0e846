package pricing_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"essenza/internal/cart"
	"essenza/internal/domain"
	"essenza/internal/pricing"
)

func rules(t *testing.T) pricing.Ruleset {
	t.Helper()
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

func product(id, price string) *domain.Product {
	return &domain.Product{
		ID:    id,
		Name:  id,
		Price: decimal.RequireFromString(price),
	}
}

func mustAdd(t *testing.T, c cart.Cart, p *domain.Product, qty int) cart.Cart {
	t.Helper()
	out, err := cart.Add(c, p, nil, qty)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func eq(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: want %s, got %s", label, want, got)
	}
}

func TestEmptyCart(t *testing.T) {
	bd, err := pricing.ComputeBreakdown(cart.Cart{}, rules(t))
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Subtotal, "0", "subtotal")
	eq(t, bd.Discount, "0", "discount")
	// No shipping charge with nothing to ship.
	eq(t, bd.Shipping, "0", "shipping")
	eq(t, bd.Total, "0", "total")
	if bd.GiftEligible {
		t.Fatal("empty cart must not be gift eligible")
	}
	if bd.LoyaltyPoints != 0 {
		t.Fatalf("want 0 points, got %d", bd.LoyaltyPoints)
	}
}

func TestAboveAllThresholds(t *testing.T) {
	// One item 20.00 x2: subtotal 40 -> 15% off, free shipping, gift.
	c := mustAdd(t, cart.Cart{}, product("p1", "20.00"), 2)
	bd, err := pricing.ComputeBreakdown(c, rules(t))
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Subtotal, "40.00", "subtotal")
	eq(t, bd.Discount, "6.00", "discount")
	eq(t, bd.Shipping, "0", "shipping")
	eq(t, bd.Total, "34.00", "total")
	if !bd.GiftEligible {
		t.Fatal("subtotal 40 must earn the gift")
	}
}

func TestBelowAllThresholds(t *testing.T) {
	c := mustAdd(t, cart.Cart{}, product("p1", "10.00"), 1)
	bd, err := pricing.ComputeBreakdown(c, rules(t))
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Subtotal, "10.00", "subtotal")
	eq(t, bd.Discount, "0", "discount")
	eq(t, bd.Shipping, "6.00", "shipping")
	eq(t, bd.Total, "16.00", "total")
	if bd.GiftEligible {
		t.Fatal("subtotal 10 must not earn the gift")
	}
}

func TestThresholdBoundaries(t *testing.T) {
	rs := rules(t)

	// Exactly 35.00: discount and free shipping are inclusive,
	// the gift threshold is strictly greater-than.
	c := mustAdd(t, cart.Cart{}, product("p1", "35.00"), 1)
	bd, err := pricing.ComputeBreakdown(c, rs)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Discount, "5.25", "discount at 35.00")
	eq(t, bd.Shipping, "0", "shipping at 35.00")
	if bd.GiftEligible {
		t.Fatal("subtotal exactly 35.00 must NOT earn the gift")
	}

	// One cent over the line flips the gift flag.
	c = mustAdd(t, cart.Cart{}, product("p2", "35.01"), 1)
	bd, err = pricing.ComputeBreakdown(c, rs)
	if err != nil {
		t.Fatal(err)
	}
	if !bd.GiftEligible {
		t.Fatal("subtotal 35.01 must earn the gift")
	}

	// One cent under keeps shipping and loses the discount.
	c = mustAdd(t, cart.Cart{}, product("p3", "34.99"), 1)
	bd, err = pricing.ComputeBreakdown(c, rs)
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Discount, "0", "discount at 34.99")
	eq(t, bd.Shipping, "6.00", "shipping at 34.99")
}

func TestShippingSaverItemWaivesShipping(t *testing.T) {
	p := product("saver", "5.00")
	p.ShippingSaver = true
	c := mustAdd(t, cart.Cart{}, p, 1)
	bd, err := pricing.ComputeBreakdown(c, rules(t))
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Shipping, "0", "shipping with saver item")
	eq(t, bd.Total, "5.00", "total")
}

func TestLoyaltyPoints(t *testing.T) {
	p1 := product("p1", "10.00")
	p1.BeautyPoints = 3
	p2 := product("p2", "4.00") // no points configured
	c := mustAdd(t, cart.Cart{}, p1, 2)
	c = mustAdd(t, c, p2, 5)
	bd, err := pricing.ComputeBreakdown(c, rules(t))
	if err != nil {
		t.Fatal(err)
	}
	if bd.LoyaltyPoints != 6 {
		t.Fatalf("want 6 points, got %d", bd.LoyaltyPoints)
	}
	// Points are informational; the total ignores them.
	eq(t, bd.Total, "34.00", "total")
}

func TestNoDriftAcrossManyLines(t *testing.T) {
	// 1000 fractional-price lines sum exactly, with zero float drift.
	c := cart.Cart{}
	for i := 0; i < 1000; i++ {
		c = mustAdd(t, c, product(fmt.Sprintf("p%d", i), "0.07"), 1)
	}
	bd, err := pricing.ComputeBreakdown(c, rules(t))
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Subtotal, "70.00", "subtotal of 1000 x 0.07")
}

func TestInvalidLineItem(t *testing.T) {
	c := cart.Cart{Items: []cart.LineItem{{ID: "ghost", Product: nil, Qty: 1}}}
	_, err := pricing.ComputeBreakdown(c, rules(t))
	if !errors.Is(err, pricing.ErrInvalidLineItem) {
		t.Fatalf("want ErrInvalidLineItem, got %v", err)
	}
}

func TestCouponDoesNotStack(t *testing.T) {
	rs := rules(t)

	// Above the automatic threshold the 15% beats the 10% coupon.
	c := mustAdd(t, cart.Cart{}, product("p1", "40.00"), 1)
	bd, err := pricing.ComputeBreakdownWithCoupon(c, rs, "ESSENZA10")
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Discount, "6.00", "larger automatic discount wins")
	if bd.CouponApplied {
		t.Fatal("coupon must not report applied when the automatic discount wins")
	}

	// Below the threshold only the coupon is in play.
	c = mustAdd(t, cart.Cart{}, product("p2", "20.00"), 1)
	bd, err = pricing.ComputeBreakdownWithCoupon(c, rs, "ESSENZA10")
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Discount, "2.00", "coupon discount below threshold")
	if !bd.CouponApplied {
		t.Fatal("coupon should report applied")
	}
	eq(t, bd.Total, "24.00", "total with coupon and shipping")
}

func TestUnknownCouponIgnored(t *testing.T) {
	c := mustAdd(t, cart.Cart{}, product("p1", "20.00"), 1)
	bd, err := pricing.ComputeBreakdownWithCoupon(c, rules(t), "NOPE")
	if err != nil {
		t.Fatal(err)
	}
	eq(t, bd.Discount, "0", "unknown coupon gives nothing")
	if bd.CouponApplied {
		t.Fatal("unknown coupon must not report applied")
	}
}
