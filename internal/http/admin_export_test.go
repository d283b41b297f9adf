package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"ecocart/internal/domain"
	"ecocart/internal/http/handlers"
	"ecocart/internal/repos"
	"ecocart/internal/services"
)

func TestAdminOrdersExportCSV(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	adminH := &handlers.AdminHandler{
		Analytics: services.NewAnalyticsService(orderRepo, userRepo, prodRepo),
		Products:  prodRepo,
		Orders:    orderRepo,
		Users:     userRepo,
	}

	err = orderRepo.Create(domain.Order{
		ID: 1717171717171, Date: "2026-08-20T10:00:00Z",
		Name: "Thandi M", Email: "thandi@example.com",
		Subtotal: decimal.NewFromInt(240), Status: domain.OrderPending,
		Carbon: "0.90", Waste: "2.80", Water: "70.00",
	}, []domain.OrderItem{
		{OrderID: 1717171717171, ProductID: 1, Name: "Bee's Wrap", Price: decimal.NewFromInt(150), Qty: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders/export", adminH.ExportOrders)

	_ = userRepo.BindSession("sid-admin", 1)
	req := httptest.NewRequest("GET", "/admin/orders/export", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %s", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if lines[0] != "Order ID,Date,Customer,Email,Total,Status" {
		t.Fatalf("bad header: %q", lines[0])
	}
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "1717171717171,2026-08-20T10:00:00Z,Thandi M,") {
		t.Fatalf("bad export body: %q", string(body))
	}
}

func TestAdminOrderDeleteMissingRedirects(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	adminH := &handlers.AdminHandler{
		Analytics: services.NewAnalyticsService(orderRepo, userRepo, prodRepo),
		Products:  prodRepo,
		Orders:    orderRepo,
		Users:     userRepo,
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Post("/orders/:id/delete", adminH.DeleteOrder)

	_ = userRepo.BindSession("sid-admin", 1)
	req := httptest.NewRequest("POST", "/admin/orders/424242/delete", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("delete of unknown order should still redirect, got %d", resp.StatusCode)
	}
}
