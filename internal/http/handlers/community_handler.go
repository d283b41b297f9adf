package handlers

import (
	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CommunityHandler struct {
	Community *services.CommunityService
	Support   *services.SupportService
}

// List shows the approved community posts.
func (h *CommunityHandler) List(c *fiber.Ctx) error {
	posts, err := h.Community.Approved()
	if err != nil {
		applog.Error(c, "community.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load community posts"})
	}
	return render(c, "community", fiber.Map{"Posts": posts})
}

func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	title := c.FormValue("title")
	body := c.FormValue("body")
	if title == "" || body == "" {
		return c.Status(400).SendString("missing title or body")
	}
	p, err := h.Community.CreatePost(u.Name, title, body)
	if err != nil {
		applog.Error(c, "community.post.fail", err, nil)
		return c.Status(500).SendString("could not create post")
	}
	applog.Audit(c, "community.post", map[string]any{"post_id": p.ID})
	return c.Redirect("/community")
}

func (h *CommunityHandler) AddComment(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	postID := c.Params("id")
	body := c.FormValue("body")
	if postID == "" || body == "" {
		return c.Status(400).SendString("missing post or body")
	}
	if err := h.Community.AddComment(postID, u.Name, body); err != nil {
		applog.Error(c, "community.comment.fail", err, map[string]any{"post_id": postID})
		return c.Status(500).SendString("could not add comment")
	}
	return c.Redirect("/community")
}

// SupportForm renders the contact/support page.
func (h *CommunityHandler) SupportForm(c *fiber.Ctx) error {
	return render(c, "support", fiber.Map{})
}

func (h *CommunityHandler) OpenTicket(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if u, ok := c.Locals("user").(*domain.User); ok {
		name = u.Name
	}
	subject := c.FormValue("subject")
	message := c.FormValue("message")
	if subject == "" || message == "" {
		return c.Status(400).SendString("missing subject or message")
	}
	t, err := h.Support.OpenTicket(name, subject, message)
	if err != nil {
		applog.Error(c, "support.ticket.fail", err, nil)
		return c.Status(500).SendString("could not open ticket")
	}
	applog.Audit(c, "support.ticket", map[string]any{"ticket_id": t.ID})
	return render(c, "support", fiber.Map{"Ticket": t, "Sent": true})
}
