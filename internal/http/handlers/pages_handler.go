package handlers

import (
	"github.com/gofiber/fiber/v2"

	"essenza/internal/currency"
	applog "essenza/internal/log"
	"essenza/internal/pricing"
)

// PagesHandler serves the static marketing surfaces: the current
// offers (rendered from the live ruleset, so the page can never
// disagree with the engine) and the embedded PDF catalog viewer.
type PagesHandler struct {
	Rules         pricing.Ruleset
	Cur           currency.Code
	CatalogPDFURL string
}

func (h *PagesHandler) Offers(c *fiber.Ctx) error {
	freeShip, err1 := currency.Format(h.Rules.FreeShippingThreshold, h.Cur)
	discountAt, err2 := currency.Format(h.Rules.DiscountThreshold, h.Cur)
	giftOver, err3 := currency.Format(h.Rules.GiftThreshold, h.Cur)
	for _, err := range []error{err1, err2, err3} {
		if err != nil {
			applog.Error(c, "offers.render", err, nil)
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load offers"})
		}
	}
	return render(c, "offers", fiber.Map{
		"FreeShippingFrom": freeShip,
		"DiscountFrom":     discountAt,
		"DiscountPct":      h.Rules.DiscountPct.Mul(hundred).IntPart(),
		"GiftOver":         giftOver,
		"CouponCode":       h.Rules.CouponCode,
		"CouponPct":        h.Rules.CouponPct.Mul(hundred).IntPart(),
	})
}

func (h *PagesHandler) Catalog(c *fiber.Ctx) error {
	return render(c, "catalog", fiber.Map{"PDFURL": h.CatalogPDFURL})
}
