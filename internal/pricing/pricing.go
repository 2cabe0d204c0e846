package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"essenza/internal/cart"
)

// ErrInvalidLineItem means the cart references a missing product. That
// is an integration bug upstream, so the engine fails fast instead of
// pricing the line at zero.
var ErrInvalidLineItem = errors.New("cart line references no product")

// Ruleset is the promotion configuration the engine runs against.
// Values come from config at startup; call sites never carry literals.
type Ruleset struct {
	FreeShippingThreshold decimal.Decimal // inclusive: subtotal >= waives shipping
	DiscountThreshold     decimal.Decimal // inclusive: subtotal >= earns DiscountPct
	DiscountPct           decimal.Decimal // e.g. 0.15
	FlatShippingCost      decimal.Decimal
	GiftThreshold         decimal.Decimal // strict: subtotal > grants the gift
	CouponCode            string
	CouponPct             decimal.Decimal
}

// Breakdown is the engine's output. Every presentation surface renders
// this; none recomputes any component on its own.
type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	GiftEligible  bool            `json:"gift_eligible"`
	LoyaltyPoints int             `json:"loyalty_points"`
	CouponApplied bool            `json:"coupon_applied"`
}

// ComputeBreakdown prices the cart under the ruleset with no coupon.
func ComputeBreakdown(c cart.Cart, rs Ruleset) (Breakdown, error) {
	return compute(c, rs, "")
}

// ComputeBreakdownWithCoupon prices the cart with a coupon code in
// play. An unknown code is simply ignored; the cart still prices.
//
// The automatic threshold discount and the coupon discount do not
// stack: the larger of the two applies and CouponApplied reports which
// one won.
func ComputeBreakdownWithCoupon(c cart.Cart, rs Ruleset, code string) (Breakdown, error) {
	return compute(c, rs, code)
}

func compute(c cart.Cart, rs Ruleset, coupon string) (Breakdown, error) {
	subtotal := decimal.Zero
	points := 0
	freeShippingItem := false

	for _, it := range c.Items {
		if it.Product == nil {
			return Breakdown{}, fmt.Errorf("line %s: %w", it.ID, ErrInvalidLineItem)
		}
		qty := decimal.NewFromInt(int64(it.Qty))
		subtotal = subtotal.Add(it.Product.Price.Mul(qty))
		points += it.Product.BeautyPoints * it.Qty
		if it.Product.ShippingSaver {
			freeShippingItem = true
		}
	}

	// Both discount mechanisms round to cents at the point each
	// monetary component is produced, never mid-sum.
	discount := decimal.Zero
	if subtotal.GreaterThanOrEqual(rs.DiscountThreshold) {
		discount = subtotal.Mul(rs.DiscountPct).Round(2)
	}
	couponApplied := false
	if coupon != "" && rs.CouponCode != "" && coupon == rs.CouponCode {
		couponDiscount := subtotal.Mul(rs.CouponPct).Round(2)
		if couponDiscount.GreaterThan(discount) {
			discount = couponDiscount
			couponApplied = true
		}
	}

	shipping := decimal.Zero
	if len(c.Items) > 0 && !freeShippingItem && subtotal.LessThan(rs.FreeShippingThreshold) {
		shipping = rs.FlatShippingCost
	}

	return Breakdown{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
		// Strictly greater than: 35.00 does not earn the gift, 35.01
		// does. Intentionally different from the other thresholds.
		GiftEligible:  subtotal.GreaterThan(rs.GiftThreshold),
		LoyaltyPoints: points,
		CouponApplied: couponApplied,
	}, nil
}
