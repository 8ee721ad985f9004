package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTimeline(t *testing.T, tempos ...Tempo) *Timeline {
	t.Helper()
	tl, err := NewTimeline(tempos)
	require.NoError(t, err)
	return tl
}

func TestTimelineSingleTempo(t *testing.T) {
	tl := mustTimeline(t, Tempo{Beat: 0, BPM: 120})

	assert := assert.New(t)
	assert.InDelta(2.0, tl.Time(4), 1e-9)
	assert.InDelta(0.0, tl.Time(0), 1e-9)
	assert.InDelta(4.0, tl.Beat(2), 1e-9)
}

func TestTimelineTempoChange(t *testing.T) {
	tl := mustTimeline(t, Tempo{Beat: 0, BPM: 120}, Tempo{Beat: 8, BPM: 240})

	assert := assert.New(t)
	assert.InDelta(4.0, tl.Time(8), 1e-9)
	assert.InDelta(5.0, tl.Time(12), 1e-9)
	assert.InDelta(12.0, tl.Beat(5), 1e-9)
	assert.InDelta(8.0, tl.Beat(4), 1e-9)
}

func TestTimelineFirstTempoAfterZero(t *testing.T) {
	// the first tempo also governs the lead-in before its own beat
	tl := mustTimeline(t, Tempo{Beat: 2, BPM: 60}, Tempo{Beat: 4, BPM: 120})

	assert := assert.New(t)
	assert.InDelta(1.0, tl.Time(1), 1e-9)
	assert.InDelta(4.0, tl.Time(4), 1e-9)
	assert.InDelta(4.5, tl.Time(5), 1e-9)
	assert.InDelta(5.0, tl.Beat(4.5), 1e-9)
}

func TestTimelineAfter(t *testing.T) {
	tl := mustTimeline(t, Tempo{Beat: 0, BPM: 120}, Tempo{Beat: 8, BPM: 240})

	// beat 6 is at 3s; +5s is 8s, which is 4s into the 240 bpm segment
	assert.InDelta(t, 24.0, tl.After(6, 5), 1e-9)
}

func TestNewTimelineRejectsBadTempos(t *testing.T) {
	tests := []struct {
		name   string
		tempos []Tempo
		want   error
	}{
		{"empty", nil, ErrNoTempo},
		{"zero bpm", []Tempo{{Beat: 0, BPM: 0}}, ErrInvalidTempo},
		{"negative bpm", []Tempo{{Beat: 0, BPM: -10}}, ErrInvalidTempo},
		{"unsorted", []Tempo{{Beat: 4, BPM: 120}, {Beat: 2, BPM: 100}}, ErrUnsortedTempo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeline(tt.tempos)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// tempoMap builds a sorted tempo list with a change every 8 beats.
func tempoMap(bpms []float64) []Tempo {
	tempos := make([]Tempo, len(bpms))
	for i, bpm := range bpms {
		tempos[i] = Tempo{Beat: float64(i * 8), BPM: bpm}
	}
	return tempos
}

func TestProperty_TimelineRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("beat survives a trip through time", prop.ForAll(
		func(bpms []float64, beat float64) bool {
			tl, err := NewTimeline(tempoMap(bpms))
			if err != nil {
				return false
			}
			got := tl.Beat(tl.Time(beat))
			return math.Abs(got-beat) <= 1e-6*math.Max(1, beat)
		},
		gen.SliceOfN(5, gen.Float64Range(30, 400)),
		gen.Float64Range(0, 200),
	))

	properties.TestingRun(t)
}

func TestProperty_TimelineMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("later beats are strictly later in time", prop.ForAll(
		func(bpms []float64, b1, delta float64) bool {
			tl, err := NewTimeline(tempoMap(bpms))
			if err != nil {
				return false
			}
			return tl.Time(b1) < tl.Time(b1+delta)
		},
		gen.SliceOfN(5, gen.Float64Range(30, 400)),
		gen.Float64Range(0, 100),
		gen.Float64Range(0.01, 50),
	))

	properties.Property("later times are later beats", prop.ForAll(
		func(bpms []float64, s1, delta float64) bool {
			tl, err := NewTimeline(tempoMap(bpms))
			if err != nil {
				return false
			}
			return tl.Beat(s1) <= tl.Beat(s1+delta)
		},
		gen.SliceOfN(5, gen.Float64Range(30, 400)),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 50),
	))

	properties.TestingRun(t)
}
