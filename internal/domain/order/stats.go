package order

import "github.com/example/afrimarket/internal/domain/product"

// Stats is the figure block shown on seller and platform dashboards.
type Stats struct {
	TotalSales           int            `json:"total_sales"`
	OrderCount           int            `json:"order_count"`
	AverageOrderValue    float64        `json:"average_order_value"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	UserCount            *int           `json:"user_count,omitempty"`
	ActiveSellers        *int           `json:"active_sellers,omitempty"`
}

// Summarize computes sales figures over orders and counts products per
// category.
func Summarize(orders []Order, products []product.Product) Stats {
	stats := Stats{
		OrderCount:           len(orders),
		CategoryDistribution: make(map[string]int),
	}
	for _, o := range orders {
		stats.TotalSales += o.Total
	}
	if stats.OrderCount > 0 {
		stats.AverageOrderValue = float64(stats.TotalSales) / float64(stats.OrderCount)
	}
	for _, p := range products {
		stats.CategoryDistribution[p.Category]++
	}
	return stats
}

// WithPlatform adds the superadmin-only counters.
func (s Stats) WithPlatform(userCount, activeSellers int) Stats {
	s.UserCount = &userCount
	s.ActiveSellers = &activeSellers
	return s
}
