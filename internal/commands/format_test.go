package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0m 00s"},
		{59, "0m 59s"},
		{612, "10m 12s"},
		{2832, "47m 12s"},
		{3600, "1h 00m"},
		{3780, "1h 03m"},
		{7325, "2h 02m"},
		{-5, "0m 00s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.seconds), "formatDuration(%d)", tt.seconds)
	}
}

func TestFormatMiles(t *testing.T) {
	assert.Equal(t, "3.11 mi", formatMiles(3.107))
	assert.Equal(t, "0.00 mi", formatMiles(0))
}
