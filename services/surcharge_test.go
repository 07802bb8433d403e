package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(f float64) *float64 { return &f }

func TestApplicableHours(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		min   float64
		max   *float64
		want  float64
	}{
		{"below floor", 6, 8, nil, 0},
		{"exactly at floor", 8, 8, nil, 0},
		{"above open-ended floor", 10, 8, nil, 2},
		{"within capped band", 9, 8, fptr(10), 1},
		{"exactly at ceiling", 10, 8, fptr(10), 2},
		{"beyond ceiling is capped", 14, 8, fptr(10), 2},
		{"zero hours", 0, 0, nil, 0},
		{"floor at zero", 3, 0, nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplicableHours(tt.total, tt.min, tt.max)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			if tt.max != nil {
				assert.LessOrEqual(t, got, *tt.max-tt.min)
			}
		})
	}
}

func TestRegularHours(t *testing.T) {
	assert.InDelta(t, 5.0, RegularHours(5), 1e-9)
	assert.InDelta(t, 8.0, RegularHours(8), 1e-9)
	assert.InDelta(t, 8.0, RegularHours(12.5), 1e-9)
	assert.InDelta(t, 0.0, RegularHours(0), 1e-9)
}
