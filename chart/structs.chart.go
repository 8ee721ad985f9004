package chart

// rawNote is the wire shape of one chart entry. Fields are a union over all
// note types; the type tag decides which ones are meaningful.
type rawNote struct {
	Type        NoteType        `json:"type"`
	Beat        *float64        `json:"beat,omitempty"`
	BPM         *float64        `json:"bpm,omitempty"`
	Data        string          `json:"data,omitempty"`
	Lane        *float64        `json:"lane,omitempty"`
	Skill       bool            `json:"skill,omitempty"`
	Flick       bool            `json:"flick,omitempty"`
	Charge      bool            `json:"charge,omitempty"`
	Direction   Direction       `json:"direction,omitempty"`
	Width       *int            `json:"width,omitempty"`
	Connections []rawConnection `json:"connections,omitempty"`
}

type rawConnection struct {
	Lane   float64 `json:"lane"`
	Beat   float64 `json:"beat"`
	Hidden bool    `json:"hidden,omitempty"`
	Flick  bool    `json:"flick,omitempty"`
	Charge bool    `json:"charge,omitempty"`
	Skill  bool    `json:"skill,omitempty"`
}
