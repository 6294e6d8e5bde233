package reports

import (
	"time"

	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Service snapshots the state owner and applies the pure rollup functions.
type Service struct {
	store *store.Store
}

// NewService constructs a reports Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) state() store.State {
	return s.store.Current()
}

// InventoryValuation reports the current catalog valuation.
func (s *Service) InventoryValuation() float64 {
	return InventoryValuation(s.state())
}

// LowStock reports products eligible for reorder.
func (s *Service) LowStock() []store.Product {
	return LowStock(s.state())
}

// DailySales reports the order total for one local calendar day.
func (s *Service) DailySales(day time.Time) float64 {
	return DailySales(s.state(), day)
}

// SevenDayTrend reports the rolling week ending today.
func (s *Service) SevenDayTrend() []DayTotal {
	return SevenDayTrend(s.state(), time.Now())
}

// SalesByCategory reports revenue per current product category.
func (s *Service) SalesByCategory() []CategoryTotal {
	return SalesByCategory(s.state())
}

// TopProducts reports the best sellers by units sold.
func (s *Service) TopProducts(limit int) []ProductSales {
	return TopProducts(s.state(), limit)
}
