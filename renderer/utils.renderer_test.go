package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := map[float64]string{
		0:      "0:00.0",
		2.5:    "0:02.5",
		65.43:  "1:05.4",
		600.99: "10:00.9",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatElapsed(in), "%v", in)
	}
}

func TestFormatTempoRange(t *testing.T) {
	assert.Equal(t, "120", formatTempoRange(120, 120))
	assert.Equal(t, "120 - 180.5", formatTempoRange(120, 180.5))
}
