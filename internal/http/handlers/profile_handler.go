package handlers

import (
	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/services"
	"ecocart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Profile *services.ProfileService
	Order   *services.OrderService
}

// Show renders the profile page with the customer's details, notification
// preferences and order history.
func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	orders, err := h.Order.ForCustomer(u)
	if err != nil {
		applog.Error(c, "profile.orders.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load profile"})
	}
	return render(c, "profile", fiber.Map{
		"Profile":     u,
		"Preferences": u.Preferences(),
		"Orders":      orders,
		"EcoPoints":   u.EcoPoints,
	})
}

func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	if p := c.FormValue("phone"); p != "" {
		if _, ok := validate.Phone(p); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
			return c.Status(400).SendString("invalid phone")
		}
	}
	_, err := h.Profile.Save(u.Email, services.ProfileUpdate{
		Name:       c.FormValue("name"),
		Phone:      c.FormValue("phone"),
		Address:    c.FormValue("address"),
		City:       c.FormValue("city"),
		PostalCode: c.FormValue("postalCode"),
	})
	if err != nil {
		applog.Error(c, "profile.save.fail", err, map[string]any{"email": u.Email})
		return c.Status(500).SendString("could not save profile")
	}
	applog.Audit(c, "profile.save", map[string]any{"email": u.Email})
	return c.Redirect("/profile")
}

// SavePreferences stores the notification settings. Unchecked boxes simply
// do not post a value, so presence means enabled.
func (h *ProfileHandler) SavePreferences(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	freq, ok := validate.Frequency(c.FormValue("emailFrequency"))
	if !ok {
		freq = "monthly"
	}
	p := domain.Preferences{
		Newsletter:     c.FormValue("newsletter") != "",
		Promotional:    c.FormValue("promotional") != "",
		ProductUpdates: c.FormValue("productUpdates") != "",
		OrderUpdates:   c.FormValue("orderUpdates") != "",
		EcoTips:        c.FormValue("ecoTips") != "",
		EmailFrequency: freq,
	}
	if err := h.Profile.SavePreferences(u.Email, p); err != nil {
		applog.Error(c, "profile.preferences.fail", err, map[string]any{"email": u.Email})
		return c.Status(500).SendString("could not save preferences")
	}
	applog.Audit(c, "profile.preferences", map[string]any{"email": u.Email})
	return c.Redirect("/profile")
}
