package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"essenza/internal/cart"
	"essenza/internal/currency"
	applog "essenza/internal/log"
	"essenza/internal/services"
	"essenza/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
	Cur  currency.Code
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

type cartLineView struct {
	ID      string
	Name    string
	Brand   string
	Variant cart.SelectedVariant
	Qty     int
	Unit    string
	Total   string
}

// cartData builds the template payload for any surface showing the
// cart (sidebar, cart page, checkout). One engine, one formatter.
func cartData(cv services.CartView, code currency.Code) (fiber.Map, error) {
	lines := make([]cartLineView, 0, len(cv.Items))
	for _, it := range cv.Items {
		unit, err := currency.Format(it.Product.Price, code)
		if err != nil {
			return nil, err
		}
		total, err := lineTotal(it.Product.Price, it.Qty, code)
		if err != nil {
			return nil, err
		}
		lines = append(lines, cartLineView{
			ID: it.ID, Name: it.Product.Name, Brand: it.Product.Brand,
			Variant: it.Variant, Qty: it.Qty, Unit: unit, Total: total,
		})
	}
	totals, err := moneyMap(cv.Breakdown, code)
	if err != nil {
		return nil, err
	}
	return fiber.Map{"Lines": lines, "Totals": totals, "Count": len(lines)}, nil
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	coupon, ok := validate.Coupon(c.Query("coupon"))
	if !ok {
		coupon = ""
	}
	cv, err := h.Cart.View(sid, coupon)
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data, err := cartData(cv, h.Cur)
	if err != nil {
		applog.Error(c, "cart.render", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data["Coupon"] = coupon
	return render(c, "cart", data)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty, ok := validate.Qty(c.FormValue("qty", "1"))
	if !ok || qty < 1 {
		qty = 1
	}
	variant := variantSelection(c)
	if err := h.Cart.Add(sid, productID, variant, qty); err != nil {
		applog.Security(c, "cart.add.fail", map[string]any{"product": productID, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Could not add this item to your bag.")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lineID, ok := validate.LineID(c.FormValue("lineId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "lineId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing lineId")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "qty"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	}
	// qty < 1 removes the line; documented behaviour, not an error.
	h.Cart.UpdateQuantity(sid, lineID, qty)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lineID, ok := validate.LineID(c.FormValue("lineId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "lineId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing lineId")
	}
	h.Cart.Remove(sid, lineID)
	return c.Redirect("/cart")
}

// Summary serves the sidebar cart as JSON; it is the same breakdown
// the full pages render.
func (h *CartHandler) Summary(c *fiber.Ctx) error {
	sid := ensureSID(c)
	coupon, ok := validate.Coupon(c.Query("coupon"))
	if !ok {
		coupon = ""
	}
	cv, err := h.Cart.View(sid, coupon)
	if err != nil {
		applog.Error(c, "cart.summary", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not price cart"})
	}
	return c.JSON(fiber.Map{"items": len(cv.Items), "breakdown": cv.Breakdown})
}

// variantSelection collects variant_<Dimension> form fields, e.g.
// variant_Shade=Rouge -> {"Shade": "Rouge"}.
func variantSelection(c *fiber.Ctx) cart.SelectedVariant {
	var v cart.SelectedVariant
	c.Request().PostArgs().VisitAll(func(key, val []byte) {
		k := string(key)
		if !strings.HasPrefix(k, "variant_") {
			return
		}
		dim := strings.TrimPrefix(k, "variant_")
		if dim == "" || len(val) == 0 {
			return
		}
		if v == nil {
			v = cart.SelectedVariant{}
		}
		v[dim] = string(val)
	})
	return v
}
