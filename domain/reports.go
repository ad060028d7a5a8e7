package domain

type DailyTotal struct {
	Day   string  `db:"day" json:"day"`
	Total float64 `db:"total" json:"total"`
}

type MonthlyTotal struct {
	Month string  `db:"month" json:"month"`
	Total float64 `db:"total" json:"total"`
}

type TopMedicine struct {
	Name          string  `db:"name" json:"name"`
	TotalQuantity int64   `db:"total_quantity" json:"total_quantity"`
	TotalSales    float64 `db:"total_sales" json:"total_sales"`
}

type DailyProfit struct {
	Day    string  `db:"day" json:"day"`
	Profit float64 `db:"profit" json:"profit"`
}

type SalesReport struct {
	Daily        []DailyTotal   `json:"daily"`
	Monthly      []MonthlyTotal `json:"monthly"`
	TopMedicines []TopMedicine  `json:"top_medicines"`
	DailyProfit  []DailyProfit  `json:"daily_profit"`
}

// Dashboard is the landing-page payload: batches expiring within 30
// days, low-stock records and the 5 most recent sales.
type Dashboard struct {
	ExpiringSoon []Medicine `json:"expiring_soon"`
	LowStock     []Medicine `json:"low_stock"`
	RecentSales  []Sale     `json:"recent_sales"`
}
