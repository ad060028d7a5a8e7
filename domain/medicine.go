package domain

// Medicine is one inventory line, identified by a unique batch number.
// The General flag partitions the same table into pharmacy inventory
// and general-store goods.
type Medicine struct {
	ID            int64    `db:"id" json:"id"`
	Name          string   `db:"name" json:"name"`
	BatchNumber   string   `db:"batch_number" json:"batch_number"`
	Company       string   `db:"company" json:"company"`
	Quantity      int64    `db:"quantity" json:"quantity"`
	Price         float64  `db:"price" json:"price"`
	StripPrice    *float64 `db:"strip_price" json:"strip_price,omitempty"`
	UnitsPerStrip int64    `db:"units_per_strip" json:"units_per_strip,omitempty"`
	CostPrice     float64  `db:"cost_price" json:"cost_price"`
	Supplier      string   `db:"supplier" json:"supplier"`
	MfgDate       string   `db:"mfg_date" json:"mfg_date,omitempty"`
	ExpiryDate    string   `db:"expiry_date" json:"expiry_date"`
	DateAdded     string   `db:"date_added" json:"date_added,omitempty"`
	General       bool     `db:"general" json:"general"`

	// Packaging is the derived strip/unit display string, set for
	// strip-packaged records only.
	Packaging string `db:"-" json:"packaging,omitempty"`
}
