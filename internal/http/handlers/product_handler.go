package handlers

import (
	"github.com/gofiber/fiber/v2"

	"essenza/internal/currency"
	applog "essenza/internal/log"
	"essenza/internal/services"
	"essenza/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stock   *services.StockService
	Cur     currency.Code
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	dims, err := p.VariantDimensions()
	if err != nil {
		applog.Error(c, "product.variants", err, map[string]any{"product": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load this item"})
	}
	price, err := currency.Format(p.Price, h.Cur)
	if err != nil {
		applog.Error(c, "product.price", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load this item"})
	}
	avail, _ := h.Stock.CheckAvailability(id)
	return render(c, "product", fiber.Map{"P": p, "Price": price, "Variants": dims, "Availability": avail})
}
