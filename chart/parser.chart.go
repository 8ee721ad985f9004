package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

func (c *Chart) UnmarshalJSON(data []byte) error {
	var raws []rawNote
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	notes := make([]Note, 0, len(raws))
	for i, raw := range raws {
		n, err := raw.toNote()
		if err != nil {
			return fmt.Errorf("note %d (%s): %w", i, raw.Type, err)
		}
		notes = append(notes, n)
	}
	c.Notes = notes
	return nil
}

func (c Chart) MarshalJSON() ([]byte, error) {
	raws := make([]rawNote, 0, len(c.Notes))
	for i, n := range c.Notes {
		raw, err := fromNote(n)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

// Parse decodes a chart from its JSON array form.
func Parse(r io.Reader) (Chart, error) {
	var c Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Chart{}, fmt.Errorf("parse chart: %w", err)
	}
	return c, nil
}

func ParseFile(path string) (Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return Chart{}, err
	}
	defer f.Close()

	return Parse(f)
}

func (raw rawNote) toNote() (Note, error) {
	switch raw.Type {
	case TypeTempo:
		if raw.Beat == nil || raw.BPM == nil {
			return nil, fmt.Errorf("missing beat or bpm")
		}
		return Tempo{Beat: *raw.Beat, BPM: *raw.BPM}, nil

	case TypeCommand:
		if raw.Beat == nil {
			return nil, fmt.Errorf("missing beat")
		}
		return Command{Beat: *raw.Beat, Data: raw.Data}, nil

	case TypeSingle:
		if raw.Beat == nil || raw.Lane == nil {
			return nil, fmt.Errorf("missing beat or lane")
		}
		lane, err := wholeLane(*raw.Lane)
		if err != nil {
			return nil, err
		}
		return Single{Beat: *raw.Beat, Lane: lane, Skill: raw.Skill, Flick: raw.Flick, Charge: raw.Charge}, nil

	case TypeDirectional:
		if raw.Beat == nil || raw.Lane == nil {
			return nil, fmt.Errorf("missing beat or lane")
		}
		lane, err := wholeLane(*raw.Lane)
		if err != nil {
			return nil, err
		}
		if raw.Direction != Left && raw.Direction != Right {
			return nil, fmt.Errorf("unknown direction %q", raw.Direction)
		}
		width := 1
		if raw.Width != nil {
			width = *raw.Width
		}
		return Directional{Beat: *raw.Beat, Lane: lane, Direction: raw.Direction, Width: width}, nil

	case TypeSlide, TypeLong:
		connections := make([]Connection, len(raw.Connections))
		for i, rc := range raw.Connections {
			connections[i] = Connection(rc)
		}
		return Slide{Connections: connections, Long: raw.Type == TypeLong}, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownNote, raw.Type)
}

func fromNote(n Note) (rawNote, error) {
	switch n := n.(type) {
	case Tempo:
		return rawNote{Type: TypeTempo, Beat: &n.Beat, BPM: &n.BPM}, nil
	case Command:
		return rawNote{Type: TypeCommand, Beat: &n.Beat, Data: n.Data}, nil
	case Single:
		lane := float64(n.Lane)
		return rawNote{Type: TypeSingle, Beat: &n.Beat, Lane: &lane, Skill: n.Skill, Flick: n.Flick, Charge: n.Charge}, nil
	case Directional:
		lane := float64(n.Lane)
		return rawNote{Type: TypeDirectional, Beat: &n.Beat, Lane: &lane, Direction: n.Direction, Width: &n.Width}, nil
	case Slide:
		connections := make([]rawConnection, len(n.Connections))
		for i, c := range n.Connections {
			connections[i] = rawConnection(c)
		}
		return rawNote{Type: n.Type(), Connections: connections}, nil
	}
	return rawNote{}, fmt.Errorf("%w %T", ErrUnknownNote, n)
}

func wholeLane(lane float64) (int, error) {
	if lane != math.Trunc(lane) || math.IsInf(lane, 0) || math.IsNaN(lane) {
		return 0, fmt.Errorf("%w: %v is not a whole lane", ErrLaneOutOfRange, lane)
	}
	return int(lane), nil
}
