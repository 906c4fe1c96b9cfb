package models

import "testing"

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name string
		due  string
		paid string
		want PaymentStatus
	}{
		{"nothing paid", "100", "0", PaymentUnpaid},
		{"partly paid", "100", "40", PaymentPartial},
		{"one cent short", "100", "99.99", PaymentPartial},
		{"exactly paid", "100", "100", PaymentPaid},
		{"overpaid", "100", "150", PaymentPaid},
		{"nothing due", "0", "0", PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivePaymentStatus(dec(tt.due), dec(tt.paid)); got != tt.want {
				t.Errorf("DerivePaymentStatus(%s, %s) = %s, want %s", tt.due, tt.paid, got, tt.want)
			}
		})
	}
}

func TestPayment_ToView(t *testing.T) {
	p := Payment{ID: 3, OrderID: 9, DueAmount: dec("200"), PaidAmount: dec("50")}
	v := p.ToView()

	if v.Status != PaymentPartial {
		t.Errorf("Status = %s, want partial", v.Status)
	}
	if !v.Outstanding.Equal(dec("150")) {
		t.Errorf("Outstanding = %s, want 150", v.Outstanding)
	}
	if !v.PaidPercent.Equal(dec("25")) {
		t.Errorf("PaidPercent = %s, want 25", v.PaidPercent)
	}
}
