package services_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ecocart/internal/domain"
	"ecocart/internal/services"
)

func TestOrdersCSVHeaderOnly(t *testing.T) {
	got := services.OrdersCSV(nil)
	if got != "Order ID,Date,Customer,Email,Total,Status\n" {
		t.Fatalf("unexpected empty export: %q", got)
	}
}

func TestOrdersCSVRows(t *testing.T) {
	orders := []domain.Order{
		{
			ID:       1717171717171,
			Date:     "2026-08-20T10:00:00Z",
			Name:     "Thandi M",
			Email:    "thandi@example.com",
			Subtotal: decimal.RequireFromString("240"),
			Status:   domain.OrderPending,
		},
	}
	got := services.OrdersCSV(orders)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header plus one row, got %d lines", len(lines))
	}
	want := "1717171717171,2026-08-20T10:00:00Z,Thandi M,thandi@example.com,240.00,pending"
	if lines[1] != want {
		t.Fatalf("want row %q, got %q", want, lines[1])
	}
	if strings.Contains(got, `"`) {
		t.Fatalf("export must not quote values: %q", got)
	}
}
