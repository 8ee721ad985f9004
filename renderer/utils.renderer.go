package renderer

import (
	"fmt"
	"math"
	"strconv"
)

// formatElapsed renders seconds as m:ss.d with tenths truncated.
func formatElapsed(t float64) string {
	return fmt.Sprintf("%d:%02d.%d", int(t/60), int(math.Mod(t, 60)), int(math.Mod(t*10, 10)))
}

func formatBPM(bpm float64) string {
	return strconv.FormatFloat(bpm, 'f', -1, 64)
}

func formatTempoRange(lo, hi float64) string {
	if lo == hi {
		return formatBPM(lo)
	}
	return fmt.Sprintf("%s - %s", formatBPM(lo), formatBPM(hi))
}
