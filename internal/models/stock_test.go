package models

import "testing"

func TestStockLot_Availability(t *testing.T) {
	tests := []struct {
		name        string
		total, sold string
		available   string
		percent     string
	}{
		{"untouched lot", "40", "0", "40", "0"},
		{"quarter sold", "40", "10", "30", "25"},
		{"sold out", "40", "40", "0", "100"},
		{"empty lot", "0", "0", "0", "0"},
		{"third sold", "3", "1", "2", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lot := StockLot{TotalQuantity: dec(tt.total), SoldQuantity: dec(tt.sold)}
			a := lot.Availability()
			if !a.Available.Equal(dec(tt.available)) {
				t.Errorf("Available = %s, want %s", a.Available, tt.available)
			}
			if !a.Available.Equal(lot.TotalQuantity.Sub(lot.SoldQuantity)) {
				t.Errorf("Available %s is not total - sold", a.Available)
			}
			if !a.SoldPercent.Equal(dec(tt.percent)) {
				t.Errorf("SoldPercent = %s, want %s", a.SoldPercent, tt.percent)
			}
		})
	}
}

func TestStockLot_CanFulfil(t *testing.T) {
	lot := StockLot{TotalQuantity: dec("10"), SoldQuantity: dec("7")}

	if !lot.CanFulfil(dec("3")) {
		t.Error("CanFulfil(3) = false, want true for the exact remainder")
	}
	if lot.CanFulfil(dec("3.001")) {
		t.Error("CanFulfil(3.001) = true, want false")
	}
}

func TestPercent_ZeroWhole(t *testing.T) {
	if got := Percent(dec("5"), dec("0")); !got.IsZero() {
		t.Errorf("Percent(5, 0) = %s, want 0", got)
	}
	if got := Fraction(dec("1"), dec("4")); !got.Equal(dec("0.25")) {
		t.Errorf("Fraction(1, 4) = %s, want 0.25", got)
	}
}
