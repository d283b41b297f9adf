package handlers

import (
	"context"
	"time"

	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/repos"
	"ecocart/internal/services"
	"ecocart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminContentHandler covers the moderation surfaces: community posts,
// comments and support tickets.
type AdminContentHandler struct {
	Posts     *repos.PostRepo
	Tickets   *repos.TicketRepo
	Community *services.CommunityService
	Support   *services.SupportService
}

// GET /admin/posts
func (h *AdminContentHandler) PostsPage(c *fiber.Ctx) error {
	search := c.Query("search")
	status := c.Query("status")
	if status != "" && status != "all" && status != domain.PostPending && status != domain.PostApproved {
		status = "all"
	}
	posts, err := h.Posts.List(search, status)
	if err != nil {
		applog.Error(c, "admin.posts.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load posts"})
	}
	return render(c, "admin_posts", fiber.Map{"Posts": posts, "Search": search, "Status": status})
}

// POST /admin/posts/sync
func (h *AdminContentHandler) SyncPosts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()
	if err := h.Community.Sync(ctx); err != nil {
		return c.Status(502).SendString("sync failed; local posts unchanged")
	}
	applog.Audit(c, "admin.posts.sync", nil)
	return c.Redirect("/admin/posts")
}

// POST /admin/posts/:id/approve
func (h *AdminContentHandler) ApprovePost(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Posts.Approve(id); err != nil {
		applog.Error(c, "admin.posts.approve.fail", err, map[string]any{"post_id": id})
		return c.Status(400).SendString("could not approve post")
	}
	applog.Audit(c, "admin.posts.approve", map[string]any{"post_id": id})
	return c.Redirect("/admin/posts")
}

// POST /admin/posts/:id/delete
func (h *AdminContentHandler) DeletePost(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()
	if err := h.Community.DeletePost(ctx, id); err != nil {
		applog.Error(c, "admin.posts.delete.fail", err, map[string]any{"post_id": id})
		return c.Status(400).SendString("could not delete post")
	}
	applog.Audit(c, "admin.posts.delete", map[string]any{"post_id": id})
	return c.Redirect("/admin/posts")
}

// GET /admin/comments
func (h *AdminContentHandler) CommentsPage(c *fiber.Ctx) error {
	search := c.Query("search")
	comments, err := h.Posts.Comments(search)
	if err != nil {
		applog.Error(c, "admin.comments.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load comments"})
	}
	return render(c, "admin_comments", fiber.Map{"Comments": comments, "Search": search})
}

// POST /admin/comments/:id/delete
func (h *AdminContentHandler) DeleteComment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()
	if err := h.Community.DeleteComment(ctx, id); err != nil {
		applog.Error(c, "admin.comments.delete.fail", err, map[string]any{"comment_id": id})
		return c.Status(400).SendString("could not delete comment")
	}
	applog.Audit(c, "admin.comments.delete", map[string]any{"comment_id": id})
	return c.Redirect("/admin/comments")
}

// GET /admin/tickets
func (h *AdminContentHandler) TicketsPage(c *fiber.Ctx) error {
	search := c.Query("search")
	status := c.Query("status")
	if status != "" && status != "all" {
		if s, ok := validate.TicketStatus(status); ok {
			status = s
		} else {
			status = "all"
		}
	}
	tickets, err := h.Tickets.List(search, status)
	if err != nil {
		applog.Error(c, "admin.tickets.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load tickets"})
	}
	return render(c, "admin_tickets", fiber.Map{"Tickets": tickets, "Search": search, "Status": status})
}

// POST /admin/tickets/:id/respond
func (h *AdminContentHandler) RespondTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	message := c.FormValue("message")
	if id == "" || message == "" {
		return c.Status(400).SendString("missing id or message")
	}
	responder := "Support"
	if u, _ := c.Locals("user").(*domain.User); u != nil {
		responder = u.Name
	}
	if err := h.Support.Respond(id, responder, message); err != nil {
		applog.Error(c, "admin.tickets.respond.fail", err, map[string]any{"ticket_id": id})
		return c.Status(400).SendString("could not respond to ticket")
	}
	applog.Audit(c, "admin.tickets.respond", map[string]any{"ticket_id": id})
	return c.Redirect("/admin/tickets")
}

// POST /admin/tickets/:id/status
func (h *AdminContentHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status, ok := validate.TicketStatus(c.FormValue("status"))
	if id == "" || !ok {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Tickets.SetStatus(id, status); err != nil {
		applog.Error(c, "admin.tickets.status.fail", err, map[string]any{"ticket_id": id})
		return c.Status(400).SendString("could not update ticket")
	}
	applog.Audit(c, "admin.tickets.status", map[string]any{"ticket_id": id, "status": status})
	return c.Redirect("/admin/tickets")
}

// POST /admin/tickets/:id/delete
func (h *AdminContentHandler) DeleteTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Tickets.Delete(id); err != nil {
		applog.Error(c, "admin.tickets.delete.fail", err, map[string]any{"ticket_id": id})
		return c.Status(400).SendString("could not delete ticket")
	}
	applog.Audit(c, "admin.tickets.delete", map[string]any{"ticket_id": id})
	return c.Redirect("/admin/tickets")
}
