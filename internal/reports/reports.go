// Package reports computes read-side rollups from the current engine state.
// Nothing here stores state; every figure is recomputed from a snapshot of
// the collections on each call.
package reports

import (
	"math"
	"sort"
	"time"

	"github.com/meridian-pos/meridian-pos/internal/store"
)

// DefaultTopProducts bounds the product ranking when no limit is given.
const DefaultTopProducts = 8

const lowStockThreshold = 10

// DayTotal is one bucket of the seven day trend.
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// CategoryTotal is a revenue rollup per product category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ProductSales ranks a product by units sold.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Revenue   float64 `json:"revenue"`
}

// InventoryValuation sums price times stock over the whole catalog.
func InventoryValuation(s store.State) float64 {
	var total float64
	for _, p := range s.Products {
		total += p.Price * float64(p.Stock)
	}
	return round2(total)
}

// LowStock lists products at or below the threshold, in catalog order.
func LowStock(s store.State) []store.Product {
	out := []store.Product{}
	for _, p := range s.Products {
		if p.Stock <= lowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// DailySales sums order totals committed on the given local calendar day.
func DailySales(s store.State, day time.Time) float64 {
	var total float64
	for _, o := range s.Orders {
		if sameDay(o.CreatedAt, day) {
			total += o.Total
		}
	}
	return round2(total)
}

// SevenDayTrend buckets order totals for the 7 calendar days ending on now,
// oldest first. Days without orders report zero.
func SevenDayTrend(s store.State, now time.Time) []DayTotal {
	out := make([]DayTotal, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		out = append(out, DayTotal{Date: day.Format("2006-01-02"), Total: DailySales(s, day)})
	}
	return out
}

// SalesByCategory groups every order line by its product's current category
// and sums line extensions, sorted descending by total. Lines whose product
// no longer resolves fall under an empty category.
func SalesByCategory(s store.State) []CategoryTotal {
	categories := make(map[string]string, len(s.Products))
	for _, p := range s.Products {
		categories[p.ID] = p.Category
	}

	totals := make(map[string]float64)
	for _, o := range s.Orders {
		for _, line := range o.Items {
			cat := categories[line.ProductID]
			totals[cat] += float64(line.Qty) * line.UnitPrice
		}
	}

	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: round2(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopProducts ranks products by units sold across the ledger, descending,
// truncated to limit (DefaultTopProducts when limit is not positive).
func TopProducts(s store.State, limit int) []ProductSales {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	byProduct := make(map[string]*ProductSales)
	order := []string{}
	for _, o := range s.Orders {
		for _, line := range o.Items {
			entry, ok := byProduct[line.ProductID]
			if !ok {
				entry = &ProductSales{ProductID: line.ProductID, Name: line.Name}
				byProduct[line.ProductID] = entry
				order = append(order, line.ProductID)
			}
			entry.Qty += line.Qty
			entry.Revenue += float64(line.Qty) * line.UnitPrice
		}
	}

	out := make([]ProductSales, 0, len(order))
	for _, id := range order {
		entry := *byProduct[id]
		entry.Revenue = round2(entry.Revenue)
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Qty != out[j].Qty {
			return out[i].Qty > out[j].Qty
		}
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sameDay(a, b time.Time) bool {
	a, b = a.Local(), b.Local()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
