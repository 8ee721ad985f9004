package renderer

import (
	"image"
	"testing"

	"chartrender/chart"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
)

func TestLocatorNote(t *testing.T) {
	loc := Locator{Height: 796}

	x, y := loc.Note(0, 0, Offset{})
	assert.Equal(t, 58.0, x)
	assert.Equal(t, 783.0, y)

	x, y = loc.Note(6, 1, Offset{})
	assert.Equal(t, 142.0, x)
	assert.Equal(t, 687.0, y)

	x, y = loc.Note(0, 0, flickTopOffset)
	assert.Equal(t, 58.0, x)
	assert.Equal(t, 773.0, y, "positive offsets move up")
}

func TestLocatorNoteWithSizeCentresImage(t *testing.T) {
	loc := Locator{Height: 796}
	img := image.NewRGBA(image.Rect(0, 0, 22, 12))

	x, y := loc.NoteWithSize(0, 0, img, Offset{})
	assert.Equal(t, 47, x)
	assert.Equal(t, 777, y)
}

func TestLocatorSlideQuad(t *testing.T) {
	loc := Locator{Height: 796}
	quad := loc.SlideQuad(chart.Connection{Lane: 0, Beat: 0}, chart.Connection{Lane: 2, Beat: 1})

	assert.Equal(t, [4]gg.Point{
		{X: 50, Y: 782},
		{X: 78, Y: 686},
		{X: 92, Y: 686},
		{X: 64, Y: 782},
	}, quad)
}

func TestLocatorBandAndComment(t *testing.T) {
	loc := Locator{Height: 796}

	x, y, w, h := loc.Band(chart.Band{Start: 0, End: 1})
	assert.Equal(t, []float64{50, 686, 98, 96}, []float64{x, y, w, h})

	x, y = loc.Comment(0, Offset{X: -5})
	assert.Equal(t, 45.0, x)
	assert.Equal(t, 781.0, y)
}

func TestFlipYTruncates(t *testing.T) {
	assert.Equal(t, 89.0, flipY(100, 10.5, 0))
	assert.Equal(t, 80.0, flipY(100, 10, 10))
}
