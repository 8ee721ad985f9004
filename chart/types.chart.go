package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lanes is the number of playable lanes on the track.
const Lanes = 7

// BeatLimit is the latest beat a note may sit on. It bounds the rendered
// canvas to a few hundred megabytes.
const BeatLimit = 2048

type NoteType string

const (
	TypeTempo       NoteType = "BPM"
	TypeCommand     NoteType = "System"
	TypeSingle      NoteType = "Single"
	TypeDirectional NoteType = "Directional"
	TypeSlide       NoteType = "Slide"
	TypeLong        NoteType = "Long"
)

type Direction string

const (
	Left  Direction = "Left"
	Right Direction = "Right"
)

// Note is one entry of a chart. The set of implementations is closed:
// Tempo, Command, Single, Directional and Slide.
type Note interface {
	Type() NoteType
	note()
}

type Tempo struct {
	Beat float64
	BPM  float64
}

// Command is a system marker such as a fever cue.
type Command struct {
	Beat float64
	Data string
}

type Single struct {
	Beat   float64
	Lane   int
	Skill  bool
	Flick  bool
	Charge bool
}

type Directional struct {
	Beat      float64
	Lane      int
	Direction Direction
	Width     int
}

// Slide is a ribbon through its connections. Long marks hold notes of
// official charts, which share the slide layout.
type Slide struct {
	Connections []Connection
	Long        bool
}

type Connection struct {
	Lane   float64
	Beat   float64
	Hidden bool
	Flick  bool
	Charge bool
	Skill  bool
}

func (Tempo) Type() NoteType       { return TypeTempo }
func (Command) Type() NoteType     { return TypeCommand }
func (Single) Type() NoteType      { return TypeSingle }
func (Directional) Type() NoteType { return TypeDirectional }

func (s Slide) Type() NoteType {
	if s.Long {
		return TypeLong
	}
	return TypeSlide
}

func (Tempo) note()       {}
func (Command) note()     {}
func (Single) note()      {}
func (Directional) note() {}
func (Slide) note()       {}

// Head returns the first connection. The slide must not be empty.
func (s Slide) Head() Connection { return s.Connections[0] }

// Tail returns the last connection. The slide must not be empty.
func (s Slide) Tail() Connection { return s.Connections[len(s.Connections)-1] }

// Chart is an ordered list of notes, as delivered by the chart service.
type Chart struct {
	Notes []Note
}

type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
	Expert
	Special
)

var difficultyNames = []string{"Easy", "Normal", "Hard", "Expert", "Special"}

func (d Difficulty) String() string {
	if d < Easy || d > Special {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Slug is the lower-case name used in chart URLs.
func (d Difficulty) Slug() string {
	return strings.ToLower(d.String())
}

// ParseDifficulty accepts a difficulty name in any case or its numeric value.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(Easy) || n > int(Special) {
			return 0, fmt.Errorf("difficulty %d out of range", n)
		}
		return Difficulty(n), nil
	}
	for i, name := range difficultyNames {
		if strings.EqualFold(name, s) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// UnmarshalText lets JSON strings and YAML scalars name a difficulty.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON accepts the difficulty as a number or a name.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		return d.UnmarshalText([]byte(strconv.Itoa(n)))
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// ChartMeta is what the meta panel shows about a chart. Empty strings and
// zero values are treated as absent.
type ChartMeta struct {
	ID            int         `json:"id" yaml:"id"`
	Title         string      `json:"title" yaml:"title"`
	Level         int         `json:"level" yaml:"level"`
	Difficulty    *Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Release       time.Time   `json:"release" yaml:"release"`
	Official      bool        `json:"official" yaml:"official"`
	Artist        string      `json:"artist,omitempty" yaml:"artist,omitempty"`
	ChartDesigner string      `json:"chartDesigner,omitempty" yaml:"chart_designer,omitempty"`
	Lyricist      string      `json:"lyricist,omitempty" yaml:"lyricist,omitempty"`
	Composer      string      `json:"composer,omitempty" yaml:"composer,omitempty"`
	Arranger      string      `json:"arranger,omitempty" yaml:"arranger,omitempty"`
	TotalNotes    int         `json:"totalNotes,omitempty" yaml:"total_notes,omitempty"`
}

// DifficultyOr returns the meta difficulty, or def when it is absent.
func (m ChartMeta) DifficultyOr(def Difficulty) Difficulty {
	if m.Difficulty == nil {
		return def
	}
	return *m.Difficulty
}
