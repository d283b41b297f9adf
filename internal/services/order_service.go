package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ecocart/internal/domain"
	applog "ecocart/internal/log"
	"ecocart/internal/repos"
)

const checkoutPoints = 5

var ErrEmptyCart = errors.New("cart is empty")

// MissingFieldError names the first contact field found blank at checkout.
type MissingFieldError struct{ Field string }

func (e MissingFieldError) Error() string { return fmt.Sprintf("missing required field %q", e.Field) }

// Contact is the checkout form payload.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func (c Contact) validate() error {
	for _, f := range []struct{ name, val string }{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
	} {
		if strings.TrimSpace(f.val) == "" {
			return MissingFieldError{Field: f.name}
		}
	}
	return nil
}

// PointsSyncer pushes an eco-point balance to the profile backend.
// Implementations may fail; Place treats that as non-fatal.
type PointsSyncer interface {
	PushPoints(email string, balance int) error
}

type OrderService struct {
	Cart   *CartService
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Syncer PointsSyncer // optional
}

func NewOrderService(cart *CartService, orders *repos.OrderRepo, users *repos.UserRepo, syncer PointsSyncer) *OrderService {
	return &OrderService{Cart: cart, Orders: orders, Users: users, Syncer: syncer}
}

// Place turns the session's cart into an order. The contact fields must all
// be present or the checkout aborts with the cart untouched. On success the
// cart is cleared and a signed-in customer earns checkout eco points; the
// remote balance push is best effort and never fails the order.
func (s *OrderService) Place(sessionID string, user *domain.User, c Contact) (domain.Order, error) {
	if err := c.validate(); err != nil {
		return domain.Order{}, err
	}

	view, err := s.Cart.View(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(view.Lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	now := time.Now()
	o := domain.Order{
		ID:        now.UnixMilli(),
		SessionID: sessionID,
		Date:      now.UTC().Format(time.RFC3339),
		Name:      strings.TrimSpace(c.Name),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
		Address:   strings.TrimSpace(c.Address),
		Subtotal:  view.Subtotal,
		Status:    domain.OrderPending,
		Carbon:    view.Impact.Carbon,
		Waste:     view.Impact.Waste,
		Water:     view.Impact.Water,
	}
	items := make([]domain.OrderItem, 0, len(view.Lines))
	for _, l := range view.Lines {
		items = append(items, domain.OrderItem{
			OrderID:   o.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Qty:       l.Qty,
		})
	}

	if err := s.Orders.Create(o, items); err != nil {
		return domain.Order{}, err
	}
	if err := s.Cart.Clear(sessionID); err != nil {
		return domain.Order{}, err
	}

	if user != nil {
		s.awardPoints(user, o.ID)
	}
	return o, nil
}

func (s *OrderService) awardPoints(user *domain.User, orderID int64) {
	balance, err := s.Users.AddEcoPoints(user.ID, checkoutPoints)
	if err != nil {
		applog.Error(nil, "eco_points_award", err, map[string]any{
			"user": user.Email, "order": orderID,
		})
		return
	}
	user.EcoPoints = balance
	if s.Syncer == nil {
		return
	}
	if err := s.Syncer.PushPoints(user.Email, balance); err != nil {
		applog.Error(nil, "eco_points_sync", err, map[string]any{
			"user": user.Email,
		})
	}
}

// ForCustomer lists the signed-in customer's past orders, matching either
// the email or the name recorded on the order.
func (s *OrderService) ForCustomer(user *domain.User) ([]domain.Order, error) {
	return s.Orders.ListForCustomer(user.Email, user.Name)
}

func (s *OrderService) Get(id int64) (domain.Order, []domain.OrderItem, error) {
	return s.Orders.Get(id)
}
