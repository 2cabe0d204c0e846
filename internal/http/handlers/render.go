package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"essenza/internal/currency"
	"essenza/internal/pricing"
)

var hundred = decimal.NewFromInt(100)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// moneyMap formats a breakdown for templates. Every surface goes
// through here, so the same amount always renders the same way.
// A formatter error is an integration bug and propagates as one.
func moneyMap(bd pricing.Breakdown, code currency.Code) (fiber.Map, error) {
	out := fiber.Map{
		"GiftEligible":  bd.GiftEligible,
		"LoyaltyPoints": bd.LoyaltyPoints,
		"CouponApplied": bd.CouponApplied,
		"FreeShipping":  bd.Shipping.IsZero(),
	}
	for label, amount := range map[string]decimal.Decimal{
		"Subtotal": bd.Subtotal,
		"Discount": bd.Discount.Neg(), // discounts display as negative
		"Shipping": bd.Shipping,
		"Total":    bd.Total,
	} {
		s, err := currency.Format(amount, code)
		if err != nil {
			return nil, err
		}
		out[label] = s
	}
	return out, nil
}

// lineTotal formats price x qty for one cart line.
func lineTotal(price decimal.Decimal, qty int, code currency.Code) (string, error) {
	return currency.Format(price.Mul(decimal.NewFromInt(int64(qty))), code)
}
