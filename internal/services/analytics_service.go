package services

import (
	"ecocart/internal/domain"
	"ecocart/internal/repos"

	"github.com/shopspring/decimal"
)

const lowStockThreshold = 10

// DashboardStats backs the admin landing page.
type DashboardStats struct {
	Orders           int
	PendingOrders    int
	Users            int
	Revenue          string
	LowStock         int
	TopProducts      []repos.ProductSales
	Impact           domain.Impact // environmental totals across all orders
	AvgOrdersPerUser string
}

type AnalyticsService struct {
	Orders   *repos.OrderRepo
	Users    *repos.UserRepo
	Products *repos.ProductRepo
}

func NewAnalyticsService(orders *repos.OrderRepo, users *repos.UserRepo, products *repos.ProductRepo) *AnalyticsService {
	return &AnalyticsService{Orders: orders, Users: users, Products: products}
}

func (s *AnalyticsService) Dashboard() (DashboardStats, error) {
	var st DashboardStats
	var err error

	if st.Orders, err = s.Orders.Count(); err != nil {
		return st, err
	}
	if st.PendingOrders, err = s.Orders.CountByStatus(domain.OrderPending); err != nil {
		return st, err
	}
	if st.Users, err = s.Users.Count(); err != nil {
		return st, err
	}
	revenue, err := s.Orders.TotalRevenue()
	if err != nil {
		return st, err
	}
	st.Revenue = revenue.StringFixed(2)
	if st.LowStock, err = s.Products.CountLowStock(lowStockThreshold); err != nil {
		return st, err
	}
	if st.TopProducts, err = s.Orders.TopProducts(5); err != nil {
		return st, err
	}
	if st.Impact, err = s.Orders.TotalImpact(); err != nil {
		return st, err
	}
	st.AvgOrdersPerUser = "0.00"
	if st.Users > 0 {
		st.AvgOrdersPerUser = decimal.NewFromInt(int64(st.Orders)).
			DivRound(decimal.NewFromInt(int64(st.Users)), 2).StringFixed(2)
	}
	return st, nil
}
