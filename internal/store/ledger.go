package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

// pricedLine is a cart entry after stock validation and pricing.
type pricedLine struct {
	medicineID int64
	units      int64
	strips     int64
	looseUnits int64
	unitPrice  decimal.Decimal
	lineTotal  decimal.Decimal
}

func validateCartEntry(row int, e domain.CartEntry) error {
	if e.MedicineID <= 0 {
		return &ValidationError{Row: row, Field: "medicine_id", Msg: "is required"}
	}
	if e.Quantity < 0 || e.Strips < 0 || e.LooseUnits < 0 {
		return &ValidationError{Row: row, Field: "quantity", Msg: "must be positive"}
	}
	if e.Quantity == 0 && e.Strips == 0 && e.LooseUnits == 0 {
		return &ValidationError{Row: row, Field: "quantity", Msg: "must be positive"}
	}
	if e.Quantity > 0 && (e.Strips > 0 || e.LooseUnits > 0) {
		return &ValidationError{Row: row, Field: "quantity", Msg: "cannot combine a direct quantity with a strip breakdown"}
	}
	if e.UnitPrice < 0 {
		return &ValidationError{Row: row, Field: "unit_price", Msg: "must not be negative"}
	}
	return nil
}

// RecordSale turns a cart into a persisted, stock-adjusting sale as one
// atomic unit: every entry is re-validated against current stock and
// expiry inside the transaction, and any failure rolls the whole sale
// back. On success the generated invoice number is returned.
func (s *Store) RecordSale(cart domain.Cart) (string, error) {
	if len(cart.Items) == 0 {
		return "", ErrEmptyCart
	}
	if cart.Discount < 0 {
		return "", &ValidationError{Field: "discount", Msg: "must not be negative"}
	}
	for i, entry := range cart.Items {
		if err := validateCartEntry(i+1, entry); err != nil {
			return "", err
		}
	}

	var invoiceNumber string
	err := s.withTx(func(tx *sqlx.Tx) error {
		now := s.now().UTC()
		today := now.Format(dateLayout)

		subtotal := decimal.Zero
		lines := make([]pricedLine, 0, len(cart.Items))
		for i, entry := range cart.Items {
			var med domain.Medicine
			err := tx.Get(&med, `SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, entry.MedicineID)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("row %d: medicine %d: %w", i+1, entry.MedicineID, ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("load medicine %d: %w", entry.MedicineID, err)
			}
			if med.ExpiryDate < today {
				return fmt.Errorf("%s (batch %s): %w", med.Name, med.BatchNumber, ErrExpired)
			}

			line, err := priceLine(i+1, entry, med)
			if err != nil {
				return err
			}
			subtotal = subtotal.Add(line.lineTotal)
			lines = append(lines, line)
		}

		total := subtotal.Sub(decimal.NewFromFloat(cart.Discount))
		if total.IsNegative() {
			return ErrNegativeTotal
		}

		inv, err := s.nextInvoiceNumber(tx, now)
		if err != nil {
			return err
		}

		res, err := tx.Exec(
			`INSERT INTO sales (invoice_number, customer_id, date, total_amount, discount, payment_method)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			inv, cart.CustomerID, now.Format(dateTimeLayout),
			total.InexactFloat64(), cart.Discount, cart.PaymentMethod)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		saleID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := tx.Exec(
				`INSERT INTO sale_items (sale_id, medicine_id, quantity, strips, loose_units, price, line_total)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				saleID, line.medicineID, line.units, line.strips, line.looseUnits,
				line.unitPrice.InexactFloat64(), line.lineTotal.InexactFloat64()); err != nil {
				return fmt.Errorf("insert sale item: %w", err)
			}

			// Conditional decrement: the WHERE guard, not the earlier
			// read, is what prevents the quantity from going negative
			// under concurrent sales.
			res, err := tx.Exec(
				`UPDATE medicines SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
				line.units, line.medicineID, line.units)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("medicine %d: %w", line.medicineID, ErrInsufficientStock)
			}
		}

		invoiceNumber = inv
		return nil
	})
	return invoiceNumber, err
}

// priceLine computes the units to deduct and the charged line total for
// one cart entry. Strip-based entries are priced per strip when the
// record carries a strip price, falling back to units-per-strip times the
// submitted unit price.
func priceLine(row int, e domain.CartEntry, med domain.Medicine) (pricedLine, error) {
	unitPrice := decimal.NewFromFloat(e.UnitPrice)

	if e.Quantity > 0 {
		return pricedLine{
			medicineID: med.ID,
			units:      e.Quantity,
			unitPrice:  unitPrice,
			lineTotal:  unitPrice.Mul(decimal.NewFromInt(e.Quantity)),
		}, nil
	}

	if med.UnitsPerStrip <= 0 {
		return pricedLine{}, &ValidationError{Row: row, Field: "strips", Msg: "not a strip-packaged medicine"}
	}
	units := e.Strips*med.UnitsPerStrip + e.LooseUnits

	stripPrice := unitPrice.Mul(decimal.NewFromInt(med.UnitsPerStrip))
	if med.StripPrice != nil {
		stripPrice = decimal.NewFromFloat(*med.StripPrice)
	}
	lineTotal := stripPrice.Mul(decimal.NewFromInt(e.Strips)).
		Add(unitPrice.Mul(decimal.NewFromInt(e.LooseUnits)))

	return pricedLine{
		medicineID: med.ID,
		units:      units,
		strips:     e.Strips,
		looseUnits: e.LooseUnits,
		unitPrice:  unitPrice,
		lineTotal:  lineTotal,
	}, nil
}

// nextInvoiceNumber generates a unique invoice identifier inside the sale
// transaction, per the configured policy.
func (s *Store) nextInvoiceNumber(tx *sqlx.Tx, now time.Time) (string, error) {
	if s.policy == PolicySequential {
		var max sql.NullInt64
		err := tx.Get(&max,
			`SELECT MAX(CAST(invoice_number AS INTEGER)) FROM sales WHERE invoice_number GLOB '[0-9]*'`)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("next invoice number: %w", err)
		}
		n := int64(1001)
		if max.Valid && max.Int64+1 > n {
			n = max.Int64 + 1
		}
		return strconv.FormatInt(n, 10), nil
	}

	// Timestamp policy: re-roll the random suffix until the candidate is
	// free, so a same-second collision cannot slip through.
	stamp := now.Format("20060102-150405")
	for {
		candidate := fmt.Sprintf("INV-%s-%04d", stamp, rand.Intn(10000))
		var exists bool
		if err := tx.Get(&exists,
			`SELECT EXISTS(SELECT 1 FROM sales WHERE invoice_number = ?)`, candidate); err != nil {
			return "", fmt.Errorf("check invoice number: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

// ListSales returns all sales newest first, with customer names resolved.
func (s *Store) ListSales() ([]domain.Sale, error) {
	sales := []domain.Sale{}
	err := s.db.Select(&sales,
		`SELECT s.id, s.invoice_number, s.customer_id, c.name AS customer_name,
		        s.date, s.total_amount, s.discount, s.payment_method
		   FROM sales s
		   LEFT JOIN customers c ON c.id = s.customer_id
		  ORDER BY s.date DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// GetSaleByInvoice loads a sale with its resolved customer and item
// details. Deleted medicines and detached customers are rendered
// defensively rather than failing the lookup.
func (s *Store) GetSaleByInvoice(invoiceNumber string) (domain.SaleDetail, error) {
	var detail domain.SaleDetail
	err := s.db.Get(&detail,
		`SELECT s.id, s.invoice_number, s.customer_id, c.name AS customer_name,
		        c.phone AS customer_phone, s.date, s.total_amount, s.discount, s.payment_method
		   FROM sales s
		   LEFT JOIN customers c ON c.id = s.customer_id
		  WHERE s.invoice_number = ?`, invoiceNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return detail, ErrNotFound
	}
	if err != nil {
		return detail, fmt.Errorf("get sale: %w", err)
	}

	detail.Items = []domain.SaleItem{}
	err = s.db.Select(&detail.Items,
		`SELECT si.id, si.sale_id, si.medicine_id, si.quantity, si.strips,
		        si.loose_units, si.price, si.line_total,
		        COALESCE(m.name, 'Unknown') AS medicine_name,
		        COALESCE(m.batch_number, '') AS batch_number
		   FROM sale_items si
		   LEFT JOIN medicines m ON m.id = si.medicine_id
		  WHERE si.sale_id = ?
		  ORDER BY si.id`, detail.ID)
	if err != nil {
		return detail, fmt.Errorf("load sale items: %w", err)
	}
	return detail, nil
}
