package handlers

import (
	"strconv"

	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/repos"
	"ecocart/internal/services"
	"ecocart/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	Analytics *services.AnalyticsService
	Products  *repos.ProductRepo
	Orders    *repos.OrderRepo
	Users     *repos.UserRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Analytics.Dashboard()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load dashboard"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": stats})
}

// ---------- Products ----------

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	search := c.Query("search")
	category := c.Query("category")
	products, err := h.Products.Filter(search, category)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, _ := h.Products.Categories()
	return render(c, "admin_products", fiber.Map{
		"Products":   products,
		"Categories": cats,
		"Search":     search,
		"Category":   category,
	})
}

func (h *AdminHandler) productFromForm(c *fiber.Ctx) (domain.Product, error) {
	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil || price.IsNegative() {
		return domain.Product{}, fiber.NewError(400, "invalid price")
	}
	carbon, _ := decimal.NewFromString(c.FormValue("carbonFootprint"))
	waste, _ := decimal.NewFromString(c.FormValue("wasteSaved"))
	water, _ := decimal.NewFromString(c.FormValue("waterSaved"))
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return domain.Product{}, fiber.NewError(400, "invalid name")
	}
	category := c.FormValue("category")
	if category == "" {
		return domain.Product{}, fiber.NewError(400, "missing category")
	}
	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil || stock < 0 {
		stock = 0
	}
	return domain.Product{
		Name:            name,
		Description:     c.FormValue("description"),
		Price:           price,
		Category:        category,
		Image:           c.FormValue("image"),
		Stock:           stock,
		CarbonFootprint: carbon,
		WasteSaved:      waste,
		WaterSaved:      water,
	}, nil
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, err := h.productFromForm(c)
	if err != nil {
		return err
	}
	id, err := h.Products.Create(p)
	if err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return c.Status(400).SendString("could not create product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	p, err := h.productFromForm(c)
	if err != nil {
		return err
	}
	if err := h.Products.Update(id, p); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Products.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// ---------- Orders ----------

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	search := c.Query("search")
	status := c.Query("status")
	date := c.Query("date")
	if status != "" && status != "all" {
		if s, ok := validate.OrderStatus(status); ok {
			status = s
		} else {
			status = "all"
		}
	}
	orders, err := h.Orders.Filter(search, status, date)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{
		"Orders": orders,
		"Search": search,
		"Status": status,
		"Date":   date,
	})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status, okStatus := validate.OrderStatus(c.FormValue("status"))
	if !okID || !okStatus {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// POST /admin/orders/:id/delete
func (h *AdminHandler) DeleteOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Orders.Delete(id); err != nil {
		applog.Error(c, "admin.orders.delete.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not delete order")
	}
	applog.Audit(c, "admin.orders.delete", map[string]any{"order_id": id})
	return c.Redirect("/admin/orders")
}

// GET /admin/orders/export
func (h *AdminHandler) ExportOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.Filter(c.Query("search"), c.Query("status"), c.Query("date"))
	if err != nil {
		applog.Error(c, "admin.orders.export.fail", err, nil)
		return c.Status(500).SendString("could not export orders")
	}
	csv := services.OrdersCSV(orders)
	applog.Audit(c, "admin.orders.export", map[string]any{"rows": len(orders)})
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.SendString(csv)
}

// ---------- Users ----------

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	search := c.Query("search")
	role := c.Query("role")
	if role != "" && role != "all" {
		if r, ok := validate.Role(role); ok {
			role = r
		} else {
			role = "all"
		}
	}
	users, err := h.Users.Filter(search, role)
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users, "Search": search, "Role": role})
}

// POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if u, _ := c.Locals("user").(*domain.User); u != nil && u.ID == id {
		return c.Status(400).SendString("cannot delete your own account")
	}
	if err := h.Users.Delete(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}
