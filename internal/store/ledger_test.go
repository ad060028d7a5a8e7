package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

func cartOf(entries ...domain.CartEntry) domain.Cart {
	return domain.Cart{PaymentMethod: "cash", Items: entries}
}

func TestRecordSaleBasic(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	inv, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 3, UnitPrice: 5.0}))
	require.NoError(t, err)
	require.NotEmpty(t, inv)

	med, err := s.GetMedicine(id)
	require.NoError(t, err)
	require.Equal(t, int64(7), med.Quantity)

	detail, err := s.GetSaleByInvoice(inv)
	require.NoError(t, err)
	require.InDelta(t, 15.0, detail.TotalAmount, 1e-9)
	require.Len(t, detail.Items, 1)
	require.InDelta(t, 15.0, detail.Items[0].LineTotal, 1e-9)
	require.Equal(t, "B1", detail.Items[0].BatchNumber)
	require.Nil(t, detail.CustomerName)
}

func TestRecordSaleDiscount(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	cart := cartOf(domain.CartEntry{MedicineID: id, Quantity: 3, UnitPrice: 5.0})
	cart.Discount = 2.0
	inv, err := s.RecordSale(cart)
	require.NoError(t, err)

	detail, err := s.GetSaleByInvoice(inv)
	require.NoError(t, err)
	require.InDelta(t, 13.0, detail.TotalAmount, 1e-9)
	require.InDelta(t, 2.0, detail.Discount, 1e-9)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 20, UnitPrice: 5.0}))
	require.ErrorIs(t, err, ErrInsufficientStock)

	med, err := s.GetMedicine(id)
	require.NoError(t, err)
	require.Equal(t, int64(10), med.Quantity)

	sales, err := s.ListSales()
	require.NoError(t, err)
	require.Empty(t, sales)
}

func TestRecordSaleExpired(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	m := testMedicine("OLD1")
	m.ExpiryDate = "2026-02-28"
	id := seedMedicine(t, s, m)

	_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
	require.ErrorIs(t, err, ErrExpired)

	med, err := s.GetMedicine(id)
	require.NoError(t, err)
	require.Equal(t, int64(10), med.Quantity)
}

func TestRecordSaleExpiringTodayStillSells(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	m := testMedicine("EDGE1")
	m.ExpiryDate = "2026-03-01"
	id := seedMedicine(t, s, m)

	_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
	require.NoError(t, err)
}

func TestRecordSaleNegativeTotal(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	cart := cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0})
	cart.Discount = 100.0
	_, err := s.RecordSale(cart)
	require.ErrorIs(t, err, ErrNegativeTotal)

	med, err := s.GetMedicine(id)
	require.NoError(t, err)
	require.Equal(t, int64(10), med.Quantity)

	sales, err := s.ListSales()
	require.NoError(t, err)
	require.Empty(t, sales)
}

func TestRecordSaleEmptyCart(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	_, err := s.RecordSale(domain.Cart{PaymentMethod: "cash"})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestRecordSaleRowValidation(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	cases := []struct {
		name  string
		entry domain.CartEntry
	}{
		{"negative quantity", domain.CartEntry{MedicineID: id, Quantity: -1, UnitPrice: 5.0}},
		{"zero quantity", domain.CartEntry{MedicineID: id, UnitPrice: 5.0}},
		{"missing medicine id", domain.CartEntry{Quantity: 1, UnitPrice: 5.0}},
		{"negative price", domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: -5.0}},
		{"mixed quantity and strips", domain.CartEntry{MedicineID: id, Quantity: 1, Strips: 1, UnitPrice: 5.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}, tc.entry))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, 2, verr.Row)
		})
	}

	// Nothing was persisted and no stock moved.
	med, err := s.GetMedicine(id)
	require.NoError(t, err)
	require.Equal(t, int64(10), med.Quantity)
}

func TestRecordSaleUnknownMedicine(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: 999, Quantity: 1, UnitPrice: 5.0}))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordSaleStripPackaging(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	m := testMedicine("STRIP1")
	m.Quantity = 25
	m.UnitsPerStrip = 10
	stripPrice := 45.0
	m.StripPrice = &stripPrice
	id := seedMedicine(t, s, m)

	inv, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Strips: 2, LooseUnits: 3, UnitPrice: 5.0}))
	require.NoError(t, err)

	med, err := s.GetMedicine(id)
	require.NoError(t, err)
	require.Equal(t, int64(2), med.Quantity)

	detail, err := s.GetSaleByInvoice(inv)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.Equal(t, int64(23), detail.Items[0].Quantity)
	require.Equal(t, int64(2), detail.Items[0].Strips)
	require.Equal(t, int64(3), detail.Items[0].LooseUnits)
	// 2 strips x 45.0 + 3 units x 5.0
	require.InDelta(t, 105.0, detail.Items[0].LineTotal, 1e-9)
	require.InDelta(t, 105.0, detail.TotalAmount, 1e-9)
}

func TestRecordSaleStripWithoutStripPrice(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	m := testMedicine("STRIP2")
	m.Quantity = 30
	m.UnitsPerStrip = 10
	id := seedMedicine(t, s, m)

	// Falls back to units-per-strip times the submitted unit price.
	inv, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Strips: 1, UnitPrice: 5.0}))
	require.NoError(t, err)

	detail, err := s.GetSaleByInvoice(inv)
	require.NoError(t, err)
	require.InDelta(t, 50.0, detail.TotalAmount, 1e-9)
}

func TestRecordSaleStripsOnNonStripMedicine(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Strips: 1, UnitPrice: 5.0}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestRecordSaleAllOrNothing(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	first := seedMedicine(t, s, testMedicine("B1"))
	second := seedMedicine(t, s, testMedicine("B2"))

	_, err := s.RecordSale(cartOf(
		domain.CartEntry{MedicineID: first, Quantity: 5, UnitPrice: 5.0},
		domain.CartEntry{MedicineID: second, Quantity: 20, UnitPrice: 5.0},
	))
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The first entry's decrement must have rolled back with the rest.
	for _, id := range []int64{first, second} {
		med, err := s.GetMedicine(id)
		require.NoError(t, err)
		require.Equal(t, int64(10), med.Quantity)
	}
	sales, err := s.ListSales()
	require.NoError(t, err)
	require.Empty(t, sales)
}

func TestInvoiceNumbersUniqueTimestampPolicy(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	m := testMedicine("B1")
	m.Quantity = 1000
	id := seedMedicine(t, s, m)

	// The clock is frozen, so every invoice shares the same stamp and
	// uniqueness rests entirely on the re-rolled suffix check.
	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		inv, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(inv, "INV-20260301-100000-"), "unexpected invoice format %q", inv)
		require.False(t, seen[inv], "duplicate invoice number %q", inv)
		seen[inv] = true
	}
}

func TestInvoiceNumbersSequentialPolicy(t *testing.T) {
	s := newTestStore(t, PolicySequential)
	id := seedMedicine(t, s, testMedicine("B1"))

	first, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
	require.NoError(t, err)
	require.Equal(t, "1001", first)

	second, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
	require.NoError(t, err)
	require.Equal(t, "1002", second)
}

func TestRecordSaleWithCustomer(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))
	custID := seedCustomer(t, s, "Asha Patel", "9000000001")

	cart := cartOf(domain.CartEntry{MedicineID: id, Quantity: 2, UnitPrice: 5.0})
	cart.CustomerID = &custID
	inv, err := s.RecordSale(cart)
	require.NoError(t, err)

	detail, err := s.GetSaleByInvoice(inv)
	require.NoError(t, err)
	require.NotNil(t, detail.CustomerName)
	require.Equal(t, "Asha Patel", *detail.CustomerName)
	require.NotNil(t, detail.CustomerPhone)
	require.Equal(t, "9000000001", *detail.CustomerPhone)
}

func TestGetSaleByInvoiceNotFound(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	_, err := s.GetSaleByInvoice("INV-NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetSaleAfterMedicineDeleted(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	id := seedMedicine(t, s, testMedicine("B1"))

	inv, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
	require.NoError(t, err)
	require.NoError(t, s.DeleteMedicine(id))

	detail, err := s.GetSaleByInvoice(inv)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.Equal(t, "Unknown", detail.Items[0].MedicineName)
}
