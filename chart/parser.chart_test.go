package chart

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = `[
	{"type": "BPM", "bpm": 120, "beat": 0},
	{"type": "System", "data": "cmd_fever_ready.wav", "beat": 8},
	{"type": "Single", "lane": 3, "beat": 4, "skill": true},
	{"type": "Single", "lane": 1, "beat": 4.25, "flick": true},
	{"type": "Directional", "lane": 5, "beat": 5, "direction": "Left", "width": 2},
	{"type": "Slide", "connections": [
		{"lane": 0, "beat": 6},
		{"lane": 1.5, "beat": 7, "hidden": true},
		{"lane": 3, "beat": 8, "flick": true}
	]},
	{"type": "Long", "connections": [{"lane": 6, "beat": 9}, {"lane": 6, "beat": 10}]}
]`

func TestParseEveryNoteType(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleChart))
	require.NoError(t, err)
	require.Len(t, c.Notes, 7)

	assert := assert.New(t)
	assert.Equal(Tempo{Beat: 0, BPM: 120}, c.Notes[0])
	assert.Equal(Command{Beat: 8, Data: FeverReady}, c.Notes[1])
	assert.Equal(Single{Beat: 4, Lane: 3, Skill: true}, c.Notes[2])
	assert.Equal(Single{Beat: 4.25, Lane: 1, Flick: true}, c.Notes[3])
	assert.Equal(Directional{Beat: 5, Lane: 5, Direction: Left, Width: 2}, c.Notes[4])

	slide, ok := c.Notes[5].(Slide)
	require.True(t, ok)
	assert.False(slide.Long)
	assert.Equal(Connection{Lane: 1.5, Beat: 7, Hidden: true}, slide.Connections[1])
	assert.True(slide.Tail().Flick)

	long, ok := c.Notes[6].(Slide)
	require.True(t, ok)
	assert.True(long.Long)
	assert.Equal(TypeLong, long.Type())
}

func TestParseRejectsUnknownType(t *testing.T) {
	_, err := Parse(strings.NewReader(`[{"type": "Mine", "beat": 1}]`))
	assert.True(t, errors.Is(err, ErrUnknownNote))
}

func TestParseRejectsFractionalSingleLane(t *testing.T) {
	_, err := Parse(strings.NewReader(`[{"type": "Single", "lane": 2.5, "beat": 1}]`))
	assert.True(t, errors.Is(err, ErrLaneOutOfRange))
}

func TestParseRejectsMissingFields(t *testing.T) {
	for _, doc := range []string{
		`[{"type": "BPM", "beat": 0}]`,
		`[{"type": "Single", "beat": 0}]`,
		`[{"type": "Directional", "lane": 1, "beat": 0}]`,
	} {
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestDirectionalWidthDefaultsToOne(t *testing.T) {
	c, err := Parse(strings.NewReader(`[{"type": "Directional", "lane": 1, "beat": 0, "direction": "Right"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Notes[0].(Directional).Width)
}

func TestChartEncodesBackToWireForm(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleChart))
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var again Chart
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, c, again)
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"expert", Expert},
		{"Special", Special},
		{"0", Easy},
		{" 2 ", Hard},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDifficulty("9")
	assert.Error(t, err)
	_, err = ParseDifficulty("insane")
	assert.Error(t, err)
	assert.Equal(t, "expert", Expert.Slug())
}

func TestChartMetaDecodesDifficultyByName(t *testing.T) {
	var m ChartMeta
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "difficulty": "hard"}`), &m))
	assert.Equal(t, Hard, m.DifficultyOr(Expert))

	m = ChartMeta{}
	require.NoError(t, json.Unmarshal([]byte(`{"difficulty": 4}`), &m))
	assert.Equal(t, Special, m.DifficultyOr(Expert))

	assert.Error(t, json.Unmarshal([]byte(`{"difficulty": "insane"}`), &m))
}
