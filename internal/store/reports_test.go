package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

func TestDashboard(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)

	expiring := testMedicine("EXP1")
	expiring.ExpiryDate = "2026-03-15"
	seedMedicine(t, s, expiring)

	low := testMedicine("LOW1")
	low.Quantity = 3
	seedMedicine(t, s, low)

	healthy := testMedicine("OK1")
	healthy.Quantity = 50
	okID := seedMedicine(t, s, healthy)

	_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: okID, Quantity: 1, UnitPrice: 5.0}))
	require.NoError(t, err)

	d, err := s.Dashboard()
	require.NoError(t, err)

	require.Len(t, d.ExpiringSoon, 1)
	require.Equal(t, "EXP1", d.ExpiringSoon[0].BatchNumber)
	require.Len(t, d.LowStock, 1)
	require.Equal(t, "LOW1", d.LowStock[0].BatchNumber)
	require.Len(t, d.RecentSales, 1)
}

func TestDashboardRecentSalesCapped(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	m := testMedicine("B1")
	m.Quantity = 100
	id := seedMedicine(t, s, m)

	for i := 0; i < 7; i++ {
		_, err := s.RecordSale(cartOf(domain.CartEntry{MedicineID: id, Quantity: 1, UnitPrice: 5.0}))
		require.NoError(t, err)
	}

	d, err := s.Dashboard()
	require.NoError(t, err)
	require.Len(t, d.RecentSales, 5)
}

func TestSalesReport(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)

	para := testMedicine("B1")
	para.Quantity = 100
	paraID := seedMedicine(t, s, para)

	ibu := testMedicine("B2")
	ibu.Name = "Ibuprofen"
	ibu.Quantity = 100
	ibu.Price = 8.0
	ibu.CostPrice = 6.0
	ibuID := seedMedicine(t, s, ibu)

	_, err := s.RecordSale(cartOf(
		domain.CartEntry{MedicineID: paraID, Quantity: 4, UnitPrice: 5.0},
		domain.CartEntry{MedicineID: ibuID, Quantity: 2, UnitPrice: 8.0},
	))
	require.NoError(t, err)

	r, err := s.SalesReport()
	require.NoError(t, err)

	require.Len(t, r.Daily, 1)
	require.Equal(t, "2026-03-01", r.Daily[0].Day)
	require.InDelta(t, 36.0, r.Daily[0].Total, 1e-9)

	require.Len(t, r.Monthly, 1)
	require.Equal(t, "2026-03", r.Monthly[0].Month)
	require.InDelta(t, 36.0, r.Monthly[0].Total, 1e-9)

	require.Len(t, r.TopMedicines, 2)
	require.Equal(t, "Paracetamol", r.TopMedicines[0].Name)
	require.Equal(t, int64(4), r.TopMedicines[0].TotalQuantity)
	require.InDelta(t, 20.0, r.TopMedicines[0].TotalSales, 1e-9)

	// Profit: 4 x (5.0 - 3.0) + 2 x (8.0 - 6.0).
	require.Len(t, r.DailyProfit, 1)
	require.InDelta(t, 12.0, r.DailyProfit[0].Profit, 1e-9)
}

func TestSalesReportEmpty(t *testing.T) {
	s := newTestStore(t, PolicyTimestamp)
	r, err := s.SalesReport()
	require.NoError(t, err)
	require.Empty(t, r.Daily)
	require.Empty(t, r.Monthly)
	require.Empty(t, r.TopMedicines)
	require.Empty(t, r.DailyProfit)
}
