package chart

import (
	"fmt"
	"math"
)

// Timeline converts between beats and elapsed seconds under a tempo that is
// constant between consecutive tempo notes. Elapsed time is measured from
// beat 0 using the first tempo for anything before the first tempo note.
type Timeline struct {
	tempos []Tempo
}

// NewTimeline expects tempos sorted by beat, as produced by NewIndex.
func NewTimeline(tempos []Tempo) (*Timeline, error) {
	if len(tempos) == 0 {
		return nil, ErrNoTempo
	}
	for i, t := range tempos {
		if !(t.BPM > 0) || math.IsInf(t.BPM, 0) {
			return nil, fmt.Errorf("tempo %d: %w (got %v)", i, ErrInvalidTempo, t.BPM)
		}
		if i > 0 && t.Beat < tempos[i-1].Beat {
			return nil, fmt.Errorf("tempo %d: %w", i, ErrUnsortedTempo)
		}
	}
	return &Timeline{tempos: tempos}, nil
}

func beatSeconds(beats, bpm float64) float64 {
	return beats * 60 / bpm
}

// Time returns the seconds elapsed between beat 0 and beat.
func (t *Timeline) Time(beat float64) float64 {
	var elapsed float64
	var currentBeat float64
	var currentBpm = t.tempos[0].BPM

	for _, tempo := range t.tempos {
		if tempo.Beat > beat {
			break
		}
		elapsed += beatSeconds(tempo.Beat-currentBeat, currentBpm)
		currentBpm = tempo.BPM
		currentBeat = tempo.Beat
	}

	return elapsed + beatSeconds(beat-currentBeat, currentBpm)
}

// Beat returns the beat reached after seconds have elapsed since beat 0.
func (t *Timeline) Beat(seconds float64) float64 {
	var elapsed float64
	var currentBeat float64
	var currentBpm = t.tempos[0].BPM

	for _, tempo := range t.tempos {
		var segment = beatSeconds(tempo.Beat-currentBeat, currentBpm)
		if elapsed+segment > seconds {
			break
		}
		elapsed += segment
		currentBpm = tempo.BPM
		currentBeat = tempo.Beat
	}

	return currentBeat + (seconds-elapsed)*currentBpm/60
}

// After returns the beat reached offset seconds after beat.
func (t *Timeline) After(beat, offset float64) float64 {
	return t.Beat(t.Time(beat) + offset)
}
