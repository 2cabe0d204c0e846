package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "essenza/internal/log"
	"essenza/internal/services"
	"essenza/internal/validate"
)

type BlogHandler struct {
	Catalog *services.CatalogService
}

func (h *BlogHandler) Index(c *fiber.Ctx) error {
	posts, err := h.Catalog.ListPosts(20)
	if err != nil {
		applog.Error(c, "blog.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the blog."})
	}
	return render(c, "blog", fiber.Map{"Posts": posts})
}

func (h *BlogHandler) Post(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Post not found"})
	}
	p, err := h.Catalog.GetPost(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Post not found"})
	}
	return render(c, "blog_post", fiber.Map{"Post": p})
}
