package chart

import (
	"math"
	"sort"
)

// Point is a lane-located hit: a single, a directional note, or a slide
// connection. Lane is fractional for slide connections.
type Point struct {
	Lane  float64
	Beat  float64
	Skill bool
	Flick bool
}

// BeatGroup is every point sharing one exact beat, in chart order.
type BeatGroup struct {
	Beat   float64
	Points []Point
}

// Index is a chart split by note type. Relative chart order is preserved
// inside each list.
type Index struct {
	Tempos       []Tempo
	Singles      []Single
	Directionals []Directional
	Slides       []Slide
	Commands     []Command

	// hits is Singles and Directionals interleaved in chart order.
	hits    []Point
	maxBeat float64
}

// NewIndex classifies and validates a chart in one pass. The first broken
// invariant is returned as a *ValidationError.
func NewIndex(c Chart) (*Index, error) {
	ix := &Index{}
	for i, n := range c.Notes {
		if err := ix.add(n); err != nil {
			var t NoteType
			if n != nil {
				t = n.Type()
			}
			return nil, &ValidationError{Index: i, Type: t, Err: err}
		}
	}
	if len(ix.Tempos) == 0 {
		return nil, &ValidationError{Index: -1, Type: TypeTempo, Err: ErrNoTempo}
	}
	return ix, nil
}

func validBeat(beat float64) bool {
	return beat >= 0 && beat <= BeatLimit
}

func validLane(lane float64) bool {
	return lane >= 0 && lane <= Lanes-1
}

func (ix *Index) see(beat float64) {
	if beat > ix.maxBeat {
		ix.maxBeat = beat
	}
}

func (ix *Index) add(n Note) error {
	switch n := n.(type) {
	case Tempo:
		if !validBeat(n.Beat) {
			return ErrInvalidBeat
		}
		if !(n.BPM > 0) || math.IsInf(n.BPM, 0) {
			return ErrInvalidTempo
		}
		if last := len(ix.Tempos) - 1; last >= 0 && n.Beat < ix.Tempos[last].Beat {
			return ErrUnsortedTempo
		}
		ix.Tempos = append(ix.Tempos, n)
		ix.see(n.Beat)

	case Command:
		if !validBeat(n.Beat) {
			return ErrInvalidBeat
		}
		ix.Commands = append(ix.Commands, n)
		ix.see(n.Beat)

	case Single:
		if !validBeat(n.Beat) {
			return ErrInvalidBeat
		}
		if !validLane(float64(n.Lane)) {
			return ErrLaneOutOfRange
		}
		ix.Singles = append(ix.Singles, n)
		ix.hits = append(ix.hits, Point{Lane: float64(n.Lane), Beat: n.Beat, Skill: n.Skill, Flick: n.Flick})
		ix.see(n.Beat)

	case Directional:
		if !validBeat(n.Beat) {
			return ErrInvalidBeat
		}
		if !validLane(float64(n.Lane)) {
			return ErrLaneOutOfRange
		}
		if n.Width < 1 {
			return ErrInvalidWidth
		}
		ix.Directionals = append(ix.Directionals, n)
		ix.hits = append(ix.hits, Point{Lane: float64(n.Lane), Beat: n.Beat})
		ix.see(n.Beat)

	case Slide:
		if len(n.Connections) == 0 {
			return ErrEmptySlide
		}
		for i, c := range n.Connections {
			if !validBeat(c.Beat) {
				return ErrInvalidBeat
			}
			if !validLane(c.Lane) {
				return ErrLaneOutOfRange
			}
			if i > 0 && c.Beat < n.Connections[i-1].Beat {
				return ErrUnsortedSlide
			}
		}
		ix.Slides = append(ix.Slides, n)
		ix.see(n.Tail().Beat)

	default:
		return ErrUnknownNote
	}
	return nil
}

// MaxBeat is the latest beat any note reaches.
func (ix *Index) MaxBeat() float64 {
	return ix.maxBeat
}

func connectionPoint(c Connection) Point {
	return Point{Lane: c.Lane, Beat: c.Beat, Skill: c.Skill, Flick: c.Flick}
}

// Endpoints returns the head and tail of every slide, slide by slide.
func (ix *Index) Endpoints() []Point {
	points := make([]Point, 0, len(ix.Slides)*2)
	for _, s := range ix.Slides {
		points = append(points, connectionPoint(s.Head()), connectionPoint(s.Tail()))
	}
	return points
}

func sortByBeat(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Beat < points[j].Beat
	})
}

// SkillNotes returns skill singles and skill slide endpoints ordered by beat.
// Ties keep singles before endpoints and chart order within each.
func (ix *Index) SkillNotes() []Point {
	var points []Point
	for _, s := range ix.Singles {
		if s.Skill {
			points = append(points, Point{Lane: float64(s.Lane), Beat: s.Beat, Skill: true, Flick: s.Flick})
		}
	}
	for _, p := range ix.Endpoints() {
		if p.Skill {
			points = append(points, p)
		}
	}
	sortByBeat(points)
	return points
}

// GroupsByBeat groups hits and slide endpoints that share an exact beat,
// ordered by beat.
func (ix *Index) GroupsByBeat() []BeatGroup {
	points := make([]Point, 0, len(ix.hits)+len(ix.Slides)*2)
	points = append(points, ix.hits...)
	points = append(points, ix.Endpoints()...)
	sortByBeat(points)

	var groups []BeatGroup
	for _, p := range points {
		if last := len(groups) - 1; last >= 0 && groups[last].Beat == p.Beat {
			groups[last].Points = append(groups[last].Points, p)
			continue
		}
		groups = append(groups, BeatGroup{Beat: p.Beat, Points: []Point{p}})
	}
	return groups
}
