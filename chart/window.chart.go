package chart

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

const (
	FeverReady = "cmd_fever_ready.wav"
	FeverStart = "cmd_fever_start.wav"
	FeverEnd   = "cmd_fever_end.wav"
)

// SkillOffsets are the seconds after a skill trigger at which its bands end.
var SkillOffsets = [3]float64{5, 7, 8}

// Band is a half-open beat range [Start, End).
type Band struct {
	Start float64
	End   float64
}

// ComboBefore counts hits strictly before beat: every single and directional
// note plus every visible slide connection.
func (ix *Index) ComboBefore(beat float64) int {
	var combo int
	for _, p := range ix.hits {
		if p.Beat < beat {
			combo++
		}
	}
	for _, s := range ix.Slides {
		for _, c := range s.Connections {
			if !c.Hidden && c.Beat < beat {
				combo++
			}
		}
	}
	return combo
}

func (ix *Index) TotalCombo() int {
	return ix.ComboBefore(math.Inf(1))
}

// SkillWindow is the effect window of the Nth skill note (1-based).
type SkillWindow struct {
	Number  int
	Trigger float64
	// Ends holds the beats at +5s, +7s and +8s.
	Ends [3]float64
}

// Bands returns [trigger,+5s), [+5s,+7s) and [+7s,+8s).
func (w SkillWindow) Bands() [3]Band {
	return [3]Band{
		{Start: w.Trigger, End: w.Ends[0]},
		{Start: w.Ends[0], End: w.Ends[1]},
		{Start: w.Ends[1], End: w.Ends[2]},
	}
}

// SkillWindows computes one window per skill note. Windows may overlap.
func (ix *Index) SkillWindows(tl *Timeline) []SkillWindow {
	notes := ix.SkillNotes()
	windows := make([]SkillWindow, 0, len(notes))
	for i, n := range notes {
		var start = tl.Time(n.Beat)
		w := SkillWindow{Number: i + 1, Trigger: n.Beat}
		for j, offset := range SkillOffsets {
			w.Ends[j] = tl.Beat(start + offset)
		}
		windows = append(windows, w)
	}
	return windows
}

type FeverWindow struct {
	Ready float64
	Start float64
	End   float64
}

// Bands returns [ready,start) and [start,end).
func (w FeverWindow) Bands() [2]Band {
	return [2]Band{
		{Start: w.Ready, End: w.Start},
		{Start: w.Start, End: w.End},
	}
}

// FeverWindow reports the fever window when ready, start and end cues can be
// found in that beat order. The earliest start with a ready cue at or before
// it and an end cue at or after it is used, paired with the nearest such cues.
func (ix *Index) FeverWindow() (FeverWindow, bool) {
	var readies, starts, ends []float64
	for _, c := range ix.Commands {
		switch c.Data {
		case FeverReady:
			readies = append(readies, c.Beat)
		case FeverStart:
			starts = append(starts, c.Beat)
		case FeverEnd:
			ends = append(ends, c.Beat)
		}
	}
	sort.Float64s(readies)
	sort.Float64s(starts)
	sort.Float64s(ends)

	for _, start := range starts {
		// last ready at or before start
		r := sort.Search(len(readies), func(i int) bool { return readies[i] > start })
		// first end at or after start
		e := sort.SearchFloat64s(ends, start)
		if r > 0 && e < len(ends) {
			return FeverWindow{Ready: readies[r-1], Start: start, End: ends[e]}, true
		}
	}
	return FeverWindow{}, false
}

// TempoRange returns the lowest and highest bpm of the chart.
func (ix *Index) TempoRange() (float64, float64) {
	bpms := make([]float64, len(ix.Tempos))
	for i, t := range ix.Tempos {
		bpms[i] = t.BPM
	}
	return bounds(bpms)
}

func bounds[T constraints.Ordered](values []T) (lo, hi T) {
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}
