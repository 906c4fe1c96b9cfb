package redis

import (
	"testing"
	"time"

	"transport_manager/internal/models"
)

func TestSummaryKey(t *testing.T) {
	fuel := models.OwnerFuelDelivery
	out := models.Outflow
	id := uint(4)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		gen    int64
		filter models.LedgerFilter
		want   string
	}{
		{"empty", 0, models.LedgerFilter{}, "ledger:summary:0"},
		{"kind", 3, models.LedgerFilter{OwnerKind: &fuel}, "ledger:summary:3:kind=fuel-delivery"},
		{"all", 1, models.LedgerFilter{Direction: &out, OwnerKind: &fuel, OwnerID: &id, From: &from},
			"ledger:summary:1:dir=outflow:kind=fuel-delivery:owner=4:from=2024-01-01T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summaryKey(tt.gen, tt.filter); got != tt.want {
				t.Errorf("summaryKey = %q, want %q", got, tt.want)
			}
		})
	}
}
