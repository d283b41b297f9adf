package handlers

import (
	applog "ecocart/internal/log"
	"ecocart/internal/repos"
	"ecocart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	Products *repos.ProductRepo
}

// Home renders the storefront with the full catalog, optionally narrowed
// by a search query and category picked from the shop filters.
func (h *ShopHandler) Home(c *fiber.Ctx) error {
	search := ""
	if q, ok := validate.Q(c.Query("q")); ok {
		search = q
	}
	category := c.Query("category")

	products, err := h.Products.Filter(search, category)
	if err != nil {
		applog.Error(c, "shop.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, err := h.Products.Categories()
	if err != nil {
		applog.Error(c, "shop.categories.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "home", fiber.Map{
		"Products":   products,
		"Categories": cats,
		"Search":     search,
		"Category":   category,
	})
}

func (h *ShopHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Products.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{
		"Product":        p,
		"Sustainability": p.Sustainability(),
	})
}
