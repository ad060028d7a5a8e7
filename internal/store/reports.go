package store

import (
	"fmt"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

const lowStockThreshold = 10

// Dashboard gathers the landing-page aggregates: batches expiring within
// 30 days, records below the low-stock threshold and the 5 most recent
// sales.
func (s *Store) Dashboard() (domain.Dashboard, error) {
	var d domain.Dashboard
	threshold := s.now().UTC().AddDate(0, 0, 30).Format(dateLayout)

	d.ExpiringSoon = []domain.Medicine{}
	err := s.db.Select(&d.ExpiringSoon,
		`SELECT `+medicineColumns+` FROM medicines
		  WHERE expiry_date <= ? ORDER BY expiry_date`, threshold)
	if err != nil {
		return d, fmt.Errorf("expiring medicines: %w", err)
	}
	for i := range d.ExpiringSoon {
		decorateMedicine(&d.ExpiringSoon[i])
	}

	d.LowStock = []domain.Medicine{}
	err = s.db.Select(&d.LowStock,
		`SELECT `+medicineColumns+` FROM medicines
		  WHERE quantity < ? ORDER BY quantity, name COLLATE NOCASE`, lowStockThreshold)
	if err != nil {
		return d, fmt.Errorf("low stock: %w", err)
	}
	for i := range d.LowStock {
		decorateMedicine(&d.LowStock[i])
	}

	d.RecentSales = []domain.Sale{}
	err = s.db.Select(&d.RecentSales,
		`SELECT s.id, s.invoice_number, s.customer_id, c.name AS customer_name,
		        s.date, s.total_amount, s.discount, s.payment_method
		   FROM sales s
		   LEFT JOIN customers c ON c.id = s.customer_id
		  ORDER BY s.date DESC, s.id DESC
		  LIMIT 5`)
	if err != nil {
		return d, fmt.Errorf("recent sales: %w", err)
	}
	return d, nil
}

// SalesReport computes the daily (last 7 days), monthly, top-10-medicine
// and daily-profit aggregates.
func (s *Store) SalesReport() (domain.SalesReport, error) {
	var r domain.SalesReport

	r.Daily = []domain.DailyTotal{}
	err := s.db.Select(&r.Daily,
		`SELECT date(date) AS day, SUM(total_amount) AS total
		   FROM sales GROUP BY day ORDER BY day DESC LIMIT 7`)
	if err != nil {
		return r, fmt.Errorf("daily sales: %w", err)
	}

	r.Monthly = []domain.MonthlyTotal{}
	err = s.db.Select(&r.Monthly,
		`SELECT strftime('%Y-%m', date) AS month, SUM(total_amount) AS total
		   FROM sales GROUP BY month ORDER BY month DESC`)
	if err != nil {
		return r, fmt.Errorf("monthly sales: %w", err)
	}

	r.TopMedicines = []domain.TopMedicine{}
	err = s.db.Select(&r.TopMedicines,
		`SELECT COALESCE(m.name, 'Unknown') AS name,
		        SUM(si.quantity) AS total_quantity,
		        SUM(si.line_total) AS total_sales
		   FROM sale_items si
		   LEFT JOIN medicines m ON m.id = si.medicine_id
		  GROUP BY name ORDER BY total_quantity DESC LIMIT 10`)
	if err != nil {
		return r, fmt.Errorf("top medicines: %w", err)
	}

	r.DailyProfit = []domain.DailyProfit{}
	err = s.db.Select(&r.DailyProfit,
		`SELECT date(s.date) AS day,
		        SUM((si.price - m.cost_price) * si.quantity) AS profit
		   FROM sale_items si
		   JOIN medicines m ON m.id = si.medicine_id
		   JOIN sales s ON s.id = si.sale_id
		  GROUP BY day ORDER BY day DESC LIMIT 7`)
	if err != nil {
		return r, fmt.Errorf("daily profit: %w", err)
	}
	return r, nil
}
