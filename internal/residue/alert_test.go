package residue_test

import (
	"testing"

	"github.com/wastetrack/wastetrack/internal/residue"
)

func TestEvaluateAlert(t *testing.T) {
	tests := []struct {
		name             string
		quantity         float64
		threshold        float64
		previousActive   bool
		wantActive       bool
		wantTransitioned bool
	}{
		{
			name:     "below threshold",
			quantity: 50, threshold: 100,
			wantActive: false, wantTransitioned: false,
		},
		{
			name:     "exactly at threshold is an alert",
			quantity: 100, threshold: 100,
			wantActive: true, wantTransitioned: true,
		},
		{
			name:     "over threshold",
			quantity: 150, threshold: 100,
			wantActive: true, wantTransitioned: true,
		},
		{
			name:     "already active stays active without transition",
			quantity: 150, threshold: 100, previousActive: true,
			wantActive: true, wantTransitioned: false,
		},
		{
			name:     "active falls below threshold",
			quantity: 50, threshold: 100, previousActive: true,
			wantActive: false, wantTransitioned: false,
		},
		{
			name:     "zero threshold always alerts",
			quantity: 0, threshold: 0,
			wantActive: true, wantTransitioned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, transitioned := residue.EvaluateAlert(tt.quantity, tt.threshold, tt.previousActive)
			if active != tt.wantActive {
				t.Errorf("expected active=%v, got %v", tt.wantActive, active)
			}
			if transitioned != tt.wantTransitioned {
				t.Errorf("expected transitioned=%v, got %v", tt.wantTransitioned, transitioned)
			}
		})
	}
}
