package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

const customerColumns = `id, name, phone, email, address, date_registered`

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers() ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := s.db.Select(&customers,
		`SELECT `+customerColumns+` FROM customers ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// GetCustomer fetches a customer and their purchase history, newest first.
func (s *Store) GetCustomer(id int64) (domain.CustomerDetail, error) {
	var detail domain.CustomerDetail
	err := s.db.Get(&detail.Customer,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return detail, ErrNotFound
	}
	if err != nil {
		return detail, fmt.Errorf("get customer: %w", err)
	}
	detail.Purchases = []domain.Sale{}
	err = s.db.Select(&detail.Purchases,
		`SELECT id, invoice_number, customer_id, date, total_amount, discount, payment_method
		   FROM sales WHERE customer_id = ? ORDER BY date DESC`, id)
	if err != nil {
		return detail, fmt.Errorf("load purchase history: %w", err)
	}
	return detail, nil
}

func validateCustomer(c domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Msg: "is required"}
	}
	return nil
}

// AddCustomer inserts a customer record, returning its id.
func (s *Store) AddCustomer(c domain.Customer) (int64, error) {
	if err := validateCustomer(c); err != nil {
		return 0, err
	}
	var id int64
	err := s.withTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO customers (name, phone, email, address, date_registered)
			 VALUES (?, ?, ?, ?, ?)`,
			c.Name, c.Phone, c.Email, c.Address, s.now().UTC().Format(dateTimeLayout))
		if err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// UpdateCustomer overwrites a customer's fields.
func (s *Store) UpdateCustomer(id int64, c domain.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	return s.withTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(
			`UPDATE customers SET name = ?, phone = ?, email = ?, address = ? WHERE id = ?`,
			c.Name, c.Phone, c.Email, c.Address, id)
		if err != nil {
			return fmt.Errorf("update customer: %w", err)
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

// DeleteCustomer removes a customer. Sales that referenced them become
// walk-in sales in the same transaction, so no dangling reference is left.
func (s *Store) DeleteCustomer(id int64) error {
	return s.withTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`UPDATE sales SET customer_id = NULL WHERE customer_id = ?`, id); err != nil {
			return fmt.Errorf("detach sales: %w", err)
		}
		res, err := tx.Exec(`DELETE FROM customers WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete customer: %w", err)
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

// SearchCustomers matches name or phone by case-insensitive substring,
// limited to 10 results ordered by name. An empty term returns an empty
// result.
func (s *Store) SearchCustomers(term string) ([]domain.Customer, error) {
	term = strings.TrimSpace(term)
	customers := []domain.Customer{}
	if term == "" {
		return customers, nil
	}
	like := "%" + strings.ToLower(term) + "%"
	err := s.db.Select(&customers,
		`SELECT `+customerColumns+` FROM customers
		 WHERE LOWER(name) LIKE ? OR LOWER(phone) LIKE ?
		 ORDER BY name COLLATE NOCASE
		 LIMIT 10`,
		like, like)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}
