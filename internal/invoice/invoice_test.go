package invoice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

func sampleDocument() Document {
	name := "Asha Patel"
	phone := "9000000001"
	return Document{
		Shop: Shop{Name: "PharmaApp Medical Store", Address: "12 Main Road", Phone: "020-1234567"},
		Sale: domain.SaleDetail{
			Sale: domain.Sale{
				InvoiceNumber: "INV-20260301-100000-0042",
				CustomerName:  &name,
				Date:          "2026-03-01 10:00:00",
				TotalAmount:   13.0,
				Discount:      2.0,
				PaymentMethod: "cash",
			},
			CustomerPhone: &phone,
			Items: []domain.SaleItem{
				{MedicineName: "Paracetamol", BatchNumber: "B1", Quantity: 3, Price: 5.0, LineTotal: 15.0},
			},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	pdf, err := Render(sampleDocument())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "output is not a PDF")
	require.Greater(t, len(pdf), 500)
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := sampleDocument()
	first, err := Render(doc)
	require.NoError(t, err)
	second, err := Render(doc)
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, second), "identical input produced different PDF bytes")
}

func TestRenderWalkIn(t *testing.T) {
	doc := sampleDocument()
	doc.Sale.CustomerName = nil
	doc.Sale.CustomerPhone = nil
	_, err := Render(doc)
	require.NoError(t, err)
}

func TestPackagingLabel(t *testing.T) {
	cases := []struct {
		item domain.SaleItem
		want string
	}{
		{domain.SaleItem{Quantity: 3}, "3 units"},
		{domain.SaleItem{Quantity: 23, Strips: 2, LooseUnits: 3}, "2 strips & 3 units"},
		{domain.SaleItem{Quantity: 20, Strips: 2}, "2 strips & 0 units"},
	}
	for _, tc := range cases {
		if got := packagingLabel(tc.item); got != tc.want {
			t.Errorf("packagingLabel(%+v) = %q, want %q", tc.item, got, tc.want)
		}
	}
}
