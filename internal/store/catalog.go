package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

const medicineColumns = `id, name, batch_number, company, quantity, price,
	strip_price, units_per_strip, cost_price, supplier, mfg_date,
	expiry_date, date_added, general`

// StripBreakdown renders a quantity of smallest units as a strip/unit
// display string. A divisor of zero or less is treated as 1.
func StripBreakdown(quantity, unitsPerStrip int64) string {
	if unitsPerStrip <= 0 {
		unitsPerStrip = 1
	}
	return fmt.Sprintf("%d strips & %d units", quantity/unitsPerStrip, quantity%unitsPerStrip)
}

func decorateMedicine(m *domain.Medicine) {
	if m.UnitsPerStrip > 0 {
		m.Packaging = StripBreakdown(m.Quantity, m.UnitsPerStrip)
	}
}

// ListMedicines returns one partition of the stock, ordered by name. A
// non-empty search term narrows the partition by case-insensitive
// substring over name, batch number or supplier.
func (s *Store) ListMedicines(general bool, search string) ([]domain.Medicine, error) {
	var (
		medicines []domain.Medicine
		err       error
	)
	search = strings.TrimSpace(search)
	if search == "" {
		err = s.db.Select(&medicines,
			`SELECT `+medicineColumns+` FROM medicines WHERE general = ? ORDER BY name COLLATE NOCASE`,
			general)
	} else {
		like := "%" + strings.ToLower(search) + "%"
		err = s.db.Select(&medicines,
			`SELECT `+medicineColumns+` FROM medicines
			 WHERE general = ?
			   AND (LOWER(name) LIKE ? OR LOWER(batch_number) LIKE ? OR LOWER(supplier) LIKE ?)
			 ORDER BY name COLLATE NOCASE`,
			general, like, like, like)
	}
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	for i := range medicines {
		decorateMedicine(&medicines[i])
	}
	return medicines, nil
}

// GetMedicine fetches a single stock record by id.
func (s *Store) GetMedicine(id int64) (domain.Medicine, error) {
	var m domain.Medicine
	err := s.db.Get(&m, `SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	if err != nil {
		return m, fmt.Errorf("get medicine: %w", err)
	}
	decorateMedicine(&m)
	return m, nil
}

func validateMedicine(m domain.Medicine) error {
	if strings.TrimSpace(m.Name) == "" {
		return &ValidationError{Field: "name", Msg: "is required"}
	}
	if strings.TrimSpace(m.BatchNumber) == "" {
		return &ValidationError{Field: "batch_number", Msg: "is required"}
	}
	if m.Quantity < 0 {
		return &ValidationError{Field: "quantity", Msg: "must not be negative"}
	}
	if m.Price < 0 {
		return &ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if m.CostPrice < 0 {
		return &ValidationError{Field: "cost_price", Msg: "must not be negative"}
	}
	if m.UnitsPerStrip < 0 {
		return &ValidationError{Field: "units_per_strip", Msg: "must be a positive integer"}
	}
	if m.StripPrice != nil {
		if *m.StripPrice < 0 {
			return &ValidationError{Field: "strip_price", Msg: "must not be negative"}
		}
		if m.UnitsPerStrip == 0 {
			return &ValidationError{Field: "units_per_strip", Msg: "must be a positive integer for strip packaging"}
		}
	}
	if _, err := time.Parse(dateLayout, m.ExpiryDate); err != nil {
		return &ValidationError{Field: "expiry_date", Msg: "must be a valid YYYY-MM-DD date"}
	}
	if m.MfgDate != "" {
		if _, err := time.Parse(dateLayout, m.MfgDate); err != nil {
			return &ValidationError{Field: "mfg_date", Msg: "must be a valid YYYY-MM-DD date"}
		}
	}
	return nil
}

func batchTaken(tx *sqlx.Tx, batch string, excludeID int64) (bool, error) {
	var exists bool
	err := tx.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM medicines WHERE batch_number = ? AND id != ?)`,
		batch, excludeID)
	return exists, err
}

// AddMedicine validates and inserts a stock record, returning its id. A
// colliding batch number yields ErrDuplicateBatch and no insert.
func (s *Store) AddMedicine(m domain.Medicine) (int64, error) {
	if err := validateMedicine(m); err != nil {
		return 0, err
	}
	var id int64
	err := s.withTx(func(tx *sqlx.Tx) error {
		taken, err := batchTaken(tx, m.BatchNumber, 0)
		if err != nil {
			return fmt.Errorf("check batch number: %w", err)
		}
		if taken {
			return ErrDuplicateBatch
		}
		res, err := tx.Exec(
			`INSERT INTO medicines (name, batch_number, company, quantity, price,
			        strip_price, units_per_strip, cost_price, supplier,
			        mfg_date, expiry_date, date_added, general)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Name, m.BatchNumber, m.Company, m.Quantity, m.Price,
			m.StripPrice, m.UnitsPerStrip, m.CostPrice, m.Supplier,
			m.MfgDate, m.ExpiryDate, s.now().UTC().Format(dateTimeLayout), m.General)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateBatch
			}
			return fmt.Errorf("insert medicine: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// UpdateMedicine validates and overwrites a stock record's fields.
func (s *Store) UpdateMedicine(id int64, m domain.Medicine) error {
	if err := validateMedicine(m); err != nil {
		return err
	}
	return s.withTx(func(tx *sqlx.Tx) error {
		taken, err := batchTaken(tx, m.BatchNumber, id)
		if err != nil {
			return fmt.Errorf("check batch number: %w", err)
		}
		if taken {
			return ErrDuplicateBatch
		}
		res, err := tx.Exec(
			`UPDATE medicines
			    SET name = ?, batch_number = ?, company = ?, quantity = ?, price = ?,
			        strip_price = ?, units_per_strip = ?, cost_price = ?, supplier = ?,
			        mfg_date = ?, expiry_date = ?, general = ?
			  WHERE id = ?`,
			m.Name, m.BatchNumber, m.Company, m.Quantity, m.Price,
			m.StripPrice, m.UnitsPerStrip, m.CostPrice, m.Supplier,
			m.MfgDate, m.ExpiryDate, m.General, id)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateBatch
			}
			return fmt.Errorf("update medicine: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteMedicine hard-deletes a stock record. Sale items keep their
// non-owning medicine_id reference.
func (s *Store) DeleteMedicine(id int64) error {
	return s.withTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(`DELETE FROM medicines WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete medicine: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// SearchMedicinesForSale backs the POS autocomplete: up to 10 in-stock,
// unexpired matches by name or batch number. An empty query returns an
// empty result.
func (s *Store) SearchMedicinesForSale(query string) ([]domain.Medicine, error) {
	query = strings.TrimSpace(query)
	medicines := []domain.Medicine{}
	if query == "" {
		return medicines, nil
	}
	like := "%" + strings.ToLower(query) + "%"
	today := s.now().UTC().Format(dateLayout)
	err := s.db.Select(&medicines,
		`SELECT `+medicineColumns+` FROM medicines
		 WHERE (LOWER(name) LIKE ? OR LOWER(batch_number) LIKE ?)
		   AND quantity > 0
		   AND expiry_date > ?
		 ORDER BY name COLLATE NOCASE, batch_number
		 LIMIT 10`,
		like, like, today)
	if err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	for i := range medicines {
		decorateMedicine(&medicines[i])
	}
	return medicines, nil
}
