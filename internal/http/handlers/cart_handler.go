package handlers

import (
	"errors"

	applog "ecocart/internal/log"
	"ecocart/internal/services"
	"ecocart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Add(sid, productID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return c.Status(500).SendString("could not add to cart")
	}
	return c.Redirect("/cart")
}

// Update applies a signed quantity delta; the line disappears when the
// quantity reaches zero.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	delta := validate.Qty(c.FormValue("delta"))
	if delta == 0 {
		return c.Redirect("/cart")
	}
	if err := h.Cart.UpdateQuantity(sid, productID, delta); err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"product": productID})
		return c.Status(500).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
		return c.Status(500).SendString("could not update cart")
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return c.Status(500).SendString("could not load cart")
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}
