package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"ecocart/internal/domain"
	"ecocart/internal/repos"
	"ecocart/internal/services"
)

func TestDashboardAggregates(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)

	mk := func(id int64, status string, total int64, carbon, waste, water string) {
		err := orderRepo.Create(domain.Order{
			ID: id, Date: "2026-08-20T10:00:00Z", Name: "Thandi M", Email: "thandi@example.com",
			Subtotal: decimal.NewFromInt(total), Status: status,
			Carbon: carbon, Waste: waste, Water: water,
		}, []domain.OrderItem{
			{OrderID: id, ProductID: 1, Name: "Bee's Wrap", Price: decimal.NewFromInt(total), Qty: 2},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	mk(100, domain.OrderPending, 150, "0.50", "2.50", "50.00")
	mk(200, domain.OrderDelivered, 90, "0.40", "0.30", "20.00")
	mk(300, domain.OrderPending, 65, "0.30", "1.50", "15.00")

	svc := services.NewAnalyticsService(orderRepo, userRepo, prodRepo)
	st, err := svc.Dashboard()
	if err != nil {
		t.Fatal(err)
	}

	if st.Orders != 3 || st.PendingOrders != 2 {
		t.Fatalf("bad order counts: %+v", st)
	}
	if st.Revenue != "305.00" {
		t.Fatalf("want revenue 305.00, got %s", st.Revenue)
	}

	// impact totals sum the per-order columns
	if st.Impact.Carbon != "1.20" {
		t.Fatalf("want carbon 1.20, got %s", st.Impact.Carbon)
	}
	if st.Impact.Waste != "4.30" {
		t.Fatalf("want waste 4.30, got %s", st.Impact.Waste)
	}
	if st.Impact.Water != "85.00" {
		t.Fatalf("want water 85.00, got %s", st.Impact.Water)
	}

	// 3 orders over the 2 seeded users
	if st.AvgOrdersPerUser != "1.50" {
		t.Fatalf("want 1.50 avg orders per user, got %s", st.AvgOrdersPerUser)
	}
}

func TestDashboardNoUsersNoDivideByZero(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM users`); err != nil {
		t.Fatal(err)
	}

	svc := services.NewAnalyticsService(repos.NewOrderRepo(db), repos.NewUserRepo(db), repos.NewProductRepo(db))
	st, err := svc.Dashboard()
	if err != nil {
		t.Fatal(err)
	}
	if st.AvgOrdersPerUser != "0.00" {
		t.Fatalf("want 0.00 with no users, got %s", st.AvgOrdersPerUser)
	}
	if st.Impact.Carbon != "0.00" {
		t.Fatalf("want zero impact with no orders, got %s", st.Impact.Carbon)
	}
}
