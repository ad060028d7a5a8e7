package store

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
	"github.com/PrasadGhadge2211/PharmaApp/internal/migrations"
)

// Tests run against a fixed clock so expiry checks and invoice stamps
// are deterministic.
var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, policy InvoicePolicy) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	migrations.Run(db)

	s := New(db, policy)
	s.now = func() time.Time { return testNow }
	return s
}

func testMedicine(batch string) domain.Medicine {
	return domain.Medicine{
		Name:        "Paracetamol",
		BatchNumber: batch,
		Company:     "Acme Pharma",
		Quantity:    10,
		Price:       5.0,
		CostPrice:   3.0,
		Supplier:    "MediSupply",
		MfgDate:     "2025-06-01",
		ExpiryDate:  "2027-06-01",
	}
}

func seedMedicine(t *testing.T, s *Store, m domain.Medicine) int64 {
	t.Helper()
	id, err := s.AddMedicine(m)
	require.NoError(t, err)
	return id
}

func seedCustomer(t *testing.T, s *Store, name, phone string) int64 {
	t.Helper()
	id, err := s.AddCustomer(domain.Customer{Name: name, Phone: phone})
	require.NoError(t, err)
	return id
}
