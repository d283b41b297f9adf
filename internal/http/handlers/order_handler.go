package handlers

import (
	"errors"
	"strconv"

	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/services"
	"ecocart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Auth  *services.AuthService
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	contact := services.Contact{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Address: c.FormValue("address"),
	}
	if _, ok := validate.Email(contact.Email); contact.Email != "" && !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid email")
	}

	var user *domain.User
	if u, ok := c.Locals("user").(*domain.User); ok {
		user = u
	}

	o, err := h.Order.Place(sid, user, contact)
	if err != nil {
		var missing services.MissingFieldError
		if errors.As(err, &missing) {
			applog.Security(c, "order.place.fail", map[string]any{"field": missing.Field})
			return c.Status(fiber.StatusBadRequest).Render("checkout", fiber.Map{
				"Err":       "Please fill in all required fields",
				"CSRFToken": c.Cookies("csrf_"),
			})
		}
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please try again.")
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"subtotal": o.Subtotal.StringFixed(2),
	})

	return c.Redirect("/order/" + strconv.FormatInt(o.ID, 10))
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	o, items, err := h.Order.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	// Ownership check: placing session, matching customer email, or admin
	sid := c.Cookies("sid")
	var email, role string
	if u, okU := c.Locals("user").(*domain.User); okU {
		email = u.Email
		role = u.Role
	}
	owner := (sid != "" && sid == o.SessionID) || (email != "" && email == o.Email)
	if !owner && role != domain.RoleAdmin {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	return render(c, "order", fiber.Map{"Order": o, "Items": items, "Impact": o.Impact()})
}

// History lists orders for the current logged-in user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Orders not available"})
	}
	orders, err := h.Order.ForCustomer(u)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
