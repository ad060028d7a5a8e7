package domain

type Sale struct {
	ID            int64   `db:"id" json:"id"`
	InvoiceNumber string  `db:"invoice_number" json:"invoice_number"`
	CustomerID    *int64  `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName  *string `db:"customer_name" json:"customer_name,omitempty"`
	Date          string  `db:"date" json:"date"`
	TotalAmount   float64 `db:"total_amount" json:"total_amount"`
	Discount      float64 `db:"discount" json:"discount"`
	PaymentMethod string  `db:"payment_method" json:"payment_method"`
}

// SaleItem is one line of a sale. Quantity is always the total count of
// smallest-sale units; for strip-packaged entries Strips and LooseUnits
// record the breakdown that was sold. Price is the unit price charged at
// sale time, independent of the medicine's current price.
type SaleItem struct {
	ID         int64   `db:"id" json:"id"`
	SaleID     int64   `db:"sale_id" json:"sale_id"`
	MedicineID int64   `db:"medicine_id" json:"medicine_id"`
	Quantity   int64   `db:"quantity" json:"quantity"`
	Strips     int64   `db:"strips" json:"strips,omitempty"`
	LooseUnits int64   `db:"loose_units" json:"loose_units,omitempty"`
	Price      float64 `db:"price" json:"price"`
	LineTotal  float64 `db:"line_total" json:"line_total"`

	MedicineName string `db:"medicine_name" json:"medicine_name,omitempty"`
	BatchNumber  string `db:"batch_number" json:"batch_number,omitempty"`
}

// SaleDetail is a sale with its resolved customer and line items, the
// shape the invoice views consume.
type SaleDetail struct {
	Sale
	CustomerPhone *string    `db:"customer_phone" json:"customer_phone,omitempty"`
	Items         []SaleItem `json:"items"`
}

// CartEntry is one submitted line of a new sale. Either Quantity is set
// directly, or Strips/LooseUnits are set for a strip-packaged medicine.
type CartEntry struct {
	MedicineID int64   `json:"medicine_id"`
	Quantity   int64   `json:"quantity"`
	Strips     int64   `json:"strips"`
	LooseUnits int64   `json:"loose_units"`
	UnitPrice  float64 `json:"unit_price"`
}

// Cart is a submitted sale before it is recorded. A nil CustomerID means
// a walk-in sale.
type Cart struct {
	CustomerID    *int64      `json:"customer_id"`
	PaymentMethod string      `json:"payment_method"`
	Discount      float64     `json:"discount"`
	Items         []CartEntry `json:"items"`
}
