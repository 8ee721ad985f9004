package chart

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComboBeforeSingleNote(t *testing.T) {
	ix := mustIndex(t, Tempo{Beat: 0, BPM: 120}, Single{Beat: 4, Lane: 3})

	assert := assert.New(t)
	assert.Equal(1, ix.ComboBefore(5))
	assert.Equal(0, ix.ComboBefore(4))
	assert.Equal(1, ix.TotalCombo())
}

func TestComboSkipsHiddenConnections(t *testing.T) {
	ix := mustIndex(t,
		Tempo{Beat: 0, BPM: 120},
		Slide{Connections: []Connection{
			{Lane: 0, Beat: 0},
			{Lane: 0, Beat: 2, Hidden: true},
			{Lane: 3, Beat: 4},
		}},
	)

	assert := assert.New(t)
	assert.Equal(2, ix.TotalCombo())
	assert.Equal(1, ix.ComboBefore(3))
}

func TestComboCountsDirectionalsAndInteriorConnections(t *testing.T) {
	ix := mustIndex(t,
		Tempo{Beat: 0, BPM: 120},
		Directional{Beat: 1, Lane: 0, Direction: Right, Width: 3},
		Slide{Connections: []Connection{{Lane: 1, Beat: 2}, {Lane: 2, Beat: 3}, {Lane: 3, Beat: 4}}, Long: true},
	)

	assert.Equal(t, 4, ix.TotalCombo())
}

func TestSkillWindows(t *testing.T) {
	ix := mustIndex(t,
		Tempo{Beat: 0, BPM: 120},
		Single{Beat: 4, Lane: 3, Skill: true},
		Single{Beat: 6, Lane: 2, Skill: true},
	)
	tl := mustTimeline(t, ix.Tempos...)

	windows := ix.SkillWindows(tl)
	require.Len(t, windows, 2)

	assert := assert.New(t)
	assert.Equal(1, windows[0].Number)
	assert.Equal(4.0, windows[0].Trigger)
	// 120 bpm is two beats a second
	assert.InDeltaSlice([]float64{14, 18, 20}, windows[0].Ends[:], 1e-9)
	assert.Equal(2, windows[1].Number)

	bands := windows[0].Bands()
	assert.Equal(Band{Start: 4, End: 14}, bands[0])
	assert.Equal(Band{Start: 18, End: 20}, bands[2])
}

func TestFeverWindowNeedsAllCues(t *testing.T) {
	ix := mustIndex(t, Tempo{Beat: 0, BPM: 120}, Command{Beat: 8, Data: FeverReady})

	_, ok := ix.FeverWindow()
	assert.False(t, ok)
}

func TestFeverWindow(t *testing.T) {
	ix := mustIndex(t,
		Tempo{Beat: 0, BPM: 120},
		Command{Beat: 8, Data: FeverReady},
		Command{Beat: 10, Data: "bgm_other.wav"},
		Command{Beat: 12, Data: FeverStart},
		Command{Beat: 40, Data: FeverEnd},
	)

	w, ok := ix.FeverWindow()
	require.True(t, ok)
	assert.Equal(t, FeverWindow{Ready: 8, Start: 12, End: 40}, w)
	assert.Equal(t, [2]Band{{Start: 8, End: 12}, {Start: 12, End: 40}}, w.Bands())
}

func TestFeverWindowKeepsCueOrder(t *testing.T) {
	tests := []struct {
		name  string
		cues  []Note
		want  FeverWindow
		found bool
	}{
		{
			name: "stray ready after end",
			cues: []Note{
				Command{Beat: 8, Data: FeverReady},
				Command{Beat: 12, Data: FeverStart},
				Command{Beat: 40, Data: FeverEnd},
				Command{Beat: 50, Data: FeverReady},
			},
			want:  FeverWindow{Ready: 8, Start: 12, End: 40},
			found: true,
		},
		{
			name: "cues listed out of beat order",
			cues: []Note{
				Command{Beat: 40, Data: FeverEnd},
				Command{Beat: 12, Data: FeverStart},
				Command{Beat: 8, Data: FeverReady},
			},
			want:  FeverWindow{Ready: 8, Start: 12, End: 40},
			found: true,
		},
		{
			name: "repeated ready uses the nearest one",
			cues: []Note{
				Command{Beat: 4, Data: FeverReady},
				Command{Beat: 10, Data: FeverReady},
				Command{Beat: 12, Data: FeverStart},
				Command{Beat: 40, Data: FeverEnd},
			},
			want:  FeverWindow{Ready: 10, Start: 12, End: 40},
			found: true,
		},
		{
			name: "end before start",
			cues: []Note{
				Command{Beat: 8, Data: FeverReady},
				Command{Beat: 12, Data: FeverStart},
				Command{Beat: 10, Data: FeverEnd},
			},
		},
		{
			name: "ready after start",
			cues: []Note{
				Command{Beat: 14, Data: FeverReady},
				Command{Beat: 12, Data: FeverStart},
				Command{Beat: 40, Data: FeverEnd},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := mustIndex(t, append([]Note{Tempo{Beat: 0, BPM: 120}}, tt.cues...)...)

			w, ok := ix.FeverWindow()
			require.Equal(t, tt.found, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, w)
			for _, b := range w.Bands() {
				assert.LessOrEqual(t, b.Start, b.End)
			}
		})
	}
}

func TestTempoRange(t *testing.T) {
	ix := mustIndex(t, Tempo{Beat: 0, BPM: 150}, Tempo{Beat: 4, BPM: 90}, Tempo{Beat: 8, BPM: 200})

	lo, hi := ix.TempoRange()
	assert.Equal(t, 90.0, lo)
	assert.Equal(t, 200.0, hi)
}

func TestProperty_ComboMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("combo never decreases and ends at the total", prop.ForAll(
		func(beats []float64, hidden []bool) bool {
			notes := []Note{Tempo{Beat: 0, BPM: 120}}
			var connections []Connection
			var last float64
			for i, b := range beats {
				notes = append(notes, Single{Beat: b, Lane: i % Lanes})
				last += b / 4
				connections = append(connections, Connection{Lane: 1, Beat: last, Hidden: hidden[i]})
			}
			notes = append(notes, Slide{Connections: connections})

			ix, err := NewIndex(Chart{Notes: notes})
			if err != nil {
				return false
			}
			prev := 0
			for b := 0.0; b <= ix.MaxBeat()+1; b += 0.25 {
				combo := ix.ComboBefore(b)
				if combo < prev {
					return false
				}
				prev = combo
			}
			return prev == ix.TotalCombo()
		},
		gen.SliceOfN(12, gen.Float64Range(0, 32)),
		gen.SliceOfN(12, gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestProperty_SkillWindowOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("trigger < +5s < +7s < +8s", prop.ForAll(
		func(bpms []float64, beat float64) bool {
			notes := []Note{}
			for _, tempo := range tempoMap(bpms) {
				notes = append(notes, tempo)
			}
			notes = append(notes, Single{Beat: beat, Lane: 3, Skill: true})

			ix, err := NewIndex(Chart{Notes: notes})
			if err != nil {
				return false
			}
			tl, err := NewTimeline(ix.Tempos)
			if err != nil {
				return false
			}
			for _, w := range ix.SkillWindows(tl) {
				if !(w.Trigger < w.Ends[0] && w.Ends[0] < w.Ends[1] && w.Ends[1] < w.Ends[2]) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.Float64Range(30, 400)),
		gen.Float64Range(0, 64),
	))

	properties.TestingRun(t)
}
