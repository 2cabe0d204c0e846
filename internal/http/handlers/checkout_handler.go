package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"essenza/internal/currency"
	applog "essenza/internal/log"
	"essenza/internal/payment"
	"essenza/internal/repos"
	"essenza/internal/services"
	"essenza/internal/validate"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *repos.OrderStore
	Cur      currency.Code
}

func (h *CheckoutHandler) Page(c *fiber.Ctx) error {
	sid := ensureSID(c)
	coupon, ok := validate.Coupon(c.Query("coupon"))
	if !ok {
		coupon = ""
	}
	cv, err := h.Cart.View(sid, coupon)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data, err := cartData(cv, h.Cur)
	if err != nil {
		applog.Error(c, "checkout.render", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data["Coupon"] = coupon
	return render(c, "checkout", data)
}

func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be 1-40 characters")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid email")
	}
	coupon, ok := validate.Coupon(c.FormValue("coupon"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "coupon"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid coupon code")
	}

	orderID, err := h.Checkout.Place(c.Context(), sid, services.Contact{Name: name, Email: email}, coupon)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		if errors.Is(err, payment.ErrTokenization) {
			// Expected runtime condition: cart is untouched, show the
			// message and let the user retry.
			applog.Error(c, "checkout.payment.fail", err, map[string]any{"sid": sid})
			return h.retryPage(c, sid, coupon)
		}
		applog.Error(c, "checkout.place.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not place your order. Please try again."})
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Redirect("/order/" + orderID)
}

func (h *CheckoutHandler) retryPage(c *fiber.Ctx, sid, coupon string) error {
	cv, err := h.Cart.View(sid, coupon)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data, err := cartData(cv, h.Cur)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	data["Coupon"] = coupon
	data["Err"] = "Payment could not be processed. You have not been charged — please try again."
	return c.Status(fiber.StatusBadGateway).Render("checkout", data)
}

func (h *CheckoutHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, err := h.Orders.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	// Orders are session-scoped; another session's order reads as 404.
	if sid := c.Cookies("sid"); sid == "" || sid != o.SessionID {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	data, err := cartData(services.CartView{Items: o.Items, Breakdown: o.Breakdown}, h.Cur)
	if err != nil {
		applog.Error(c, "order.render", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the order"})
	}
	data["Order"] = o
	return render(c, "order", data)
}

// History lists the current session's orders.
func (h *CheckoutHandler) History(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orders := h.Orders.ListBySession(sid)

	type row struct {
		ID        string
		Customer  string
		Total     string
		CreatedAt string
	}
	rows := make([]row, 0, len(orders))
	for _, o := range orders {
		total, err := currency.Format(o.Breakdown.Total, h.Cur)
		if err != nil {
			applog.Error(c, "orders.render", err, nil)
			return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
		}
		rows = append(rows, row{ID: o.ID, Customer: o.Customer, Total: total, CreatedAt: o.CreatedAt.Format("2006-01-02 15:04")})
	}
	return render(c, "order_history", fiber.Map{"Orders": rows})
}
