package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                 int64           `db:"id"`
	Name               string          `db:"name"`
	Description        string          `db:"description"`
	Price              decimal.Decimal `db:"price"`
	Category           string          `db:"category"`
	Image              string          `db:"image"`
	Stock              int             `db:"stock"`
	CarbonFootprint    decimal.Decimal `db:"carbon_footprint"` // kg CO2 per unit
	WasteSaved         decimal.Decimal `db:"waste_saved"`      // kg per unit
	WaterSaved         decimal.Decimal `db:"water_saved"`      // liters per unit
	SustainabilityJSON string          `db:"sustainability_json"`
	CreatedAt          string          `db:"created_at"`
}

// Sustainability decodes the stored highlight list. Corrupt or missing
// JSON yields an empty list, never an error.
func (p Product) Sustainability() []string {
	if p.SustainabilityJSON == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(p.SustainabilityJSON), &out); err != nil {
		return nil
	}
	return out
}

// CartLine is one cart entry. Price and the per-unit impact figures are
// snapshots taken when the line was created, so later catalog edits do not
// rewrite past accounting. HasImpact records whether the snapshot was
// available at add time; when false, impact falls back to a catalog lookup.
type CartLine struct {
	ProductID       int64           `db:"product_id"`
	Name            string          `db:"name"`
	Price           decimal.Decimal `db:"price"`
	Image           string          `db:"image"`
	Qty             int             `db:"qty"`
	CarbonFootprint decimal.Decimal `db:"carbon_footprint"`
	WasteSaved      decimal.Decimal `db:"waste_saved"`
	WaterSaved      decimal.Decimal `db:"water_saved"`
	HasImpact       bool            `db:"has_impact"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Impact is an order-level aggregate, formatted to two decimal places.
type Impact struct {
	Carbon string `json:"carbon"` // kg CO2
	Waste  string `json:"waste"`  // kg
	Water  string `json:"water"`  // liters
}

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderReturned   = "returned"
)

type Order struct {
	ID        int64           `db:"id"` // unix milliseconds at checkout
	SessionID string          `db:"session_id"`
	Date      string          `db:"date"`
	Name      string          `db:"customer_name"`
	Email     string          `db:"customer_email"`
	Phone     string          `db:"customer_phone"`
	Address   string          `db:"customer_address"`
	Subtotal  decimal.Decimal `db:"subtotal"`
	Status    string          `db:"status"`
	Carbon    string          `db:"impact_carbon"`
	Waste     string          `db:"impact_waste"`
	Water     string          `db:"impact_water"`
	UpdatedAt string          `db:"updated_at"`
}

func (o Order) Impact() Impact {
	return Impact{Carbon: o.Carbon, Waste: o.Waste, Water: o.Water}
}

type OrderItem struct {
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Qty       int             `db:"qty"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

const (
	PostPending  = "pending"
	PostApproved = "approved"
)

type Post struct {
	ID        string `db:"id"` // server-assigned, or "local-" prefixed
	Title     string `db:"title"`
	Author    string `db:"author"`
	Body      string `db:"body"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Comment struct {
	ID        string `db:"id"`
	PostID    string `db:"post_id"`
	PostTitle string `db:"post_title"`
	Author    string `db:"author"`
	Body      string `db:"body"`
	CreatedAt string `db:"created_at"`
}

const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketClosed     = "closed"
)

type SupportTicket struct {
	ID        string `db:"id"`
	User      string `db:"user_name"`
	Subject   string `db:"subject"`
	Message   string `db:"message"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type TicketResponse struct {
	TicketID string `db:"ticket_id"`
	By       string `db:"responder"`
	Message  string `db:"message"`
	At       string `db:"at"`
}
