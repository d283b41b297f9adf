package repos_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"ecocart/internal/domain"
	"ecocart/internal/repos"
)

func insertOrder(t *testing.T, orders *repos.OrderRepo, id int64, date, name, email, status string, total int64) {
	t.Helper()
	err := orders.Create(domain.Order{
		ID: id, Date: date, Name: name, Email: email,
		Subtotal: decimal.NewFromInt(total), Status: status,
		Carbon: "0.00", Waste: "0.00", Water: "0.00",
	}, []domain.OrderItem{
		{OrderID: id, ProductID: 1, Name: "Bee's Wrap", Price: decimal.NewFromInt(total), Qty: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestOrderFilterNewestFirst(t *testing.T) {
	orders := repos.NewOrderRepo(seededDB(t))
	insertOrder(t, orders, 100, "2026-08-01T08:00:00Z", "Thandi M", "thandi@example.com", domain.OrderPending, 150)
	insertOrder(t, orders, 200, "2026-08-15T08:00:00Z", "Sipho K", "sipho@example.com", domain.OrderShipped, 45)
	insertOrder(t, orders, 300, "2026-08-10T08:00:00Z", "Thandi M", "thandi@example.com", domain.OrderPending, 299)

	got, err := orders.Filter("", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != 200 || got[1].ID != 300 || got[2].ID != 100 {
		t.Fatalf("want date-desc order [200 300 100], got %+v", got)
	}

	// search matches id, name or email; status is exact
	got, err = orders.Filter("thandi", domain.OrderPending, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 pending thandi orders, got %d", len(got))
	}

	// date prefix narrows to a single day
	got, err = orders.Filter("", "", "2026-08-15")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 200 {
		t.Fatalf("want order 200 on 2026-08-15, got %+v", got)
	}
}

func TestOrderListForCustomerWeakJoin(t *testing.T) {
	orders := repos.NewOrderRepo(seededDB(t))
	insertOrder(t, orders, 100, "2026-08-01T08:00:00Z", "Thandi M", "old@example.com", domain.OrderPending, 150)
	insertOrder(t, orders, 200, "2026-08-02T08:00:00Z", "Someone Else", "thandi@example.com", domain.OrderPending, 45)
	insertOrder(t, orders, 300, "2026-08-03T08:00:00Z", "Unrelated", "other@example.com", domain.OrderPending, 65)

	got, err := orders.ListForCustomer("thandi@example.com", "Thandi M")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 matches by email or name, got %d", len(got))
	}
}

func TestOrderDeleteMissingIsNoop(t *testing.T) {
	orders := repos.NewOrderRepo(seededDB(t))
	insertOrder(t, orders, 100, "2026-08-01T08:00:00Z", "Thandi M", "thandi@example.com", domain.OrderPending, 150)

	if err := orders.Delete(404); err != nil {
		t.Fatalf("delete of unknown id should be a no-op, got %v", err)
	}
	n, err := orders.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("order count changed by no-op delete: %d", n)
	}
}

func TestOrderAnalytics(t *testing.T) {
	orders := repos.NewOrderRepo(seededDB(t))
	insertOrder(t, orders, 100, "2026-08-01T08:00:00Z", "Thandi M", "thandi@example.com", domain.OrderPending, 150)
	insertOrder(t, orders, 200, "2026-08-02T08:00:00Z", "Sipho K", "sipho@example.com", domain.OrderDelivered, 45)

	revenue, err := orders.TotalRevenue()
	if err != nil {
		t.Fatal(err)
	}
	if revenue.StringFixed(2) != "195.00" {
		t.Fatalf("want revenue 195.00, got %s", revenue.StringFixed(2))
	}

	pending, err := orders.CountByStatus(domain.OrderPending)
	if err != nil {
		t.Fatal(err)
	}
	if pending != 1 {
		t.Fatalf("want 1 pending order, got %d", pending)
	}

	top, err := orders.TopProducts(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Units != 2 {
		t.Fatalf("want Bee's Wrap with 2 units, got %+v", top)
	}
}
