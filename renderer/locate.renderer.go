package renderer

import (
	"image"
	"math"

	"chartrender/chart"

	"github.com/fogleman/gg"
)

// Locator maps musical coordinates to pixels on a canvas of the given
// height. Beats grow upward; pixel rows grow downward.
type Locator struct {
	Height float64
}

// flipY converts a bottom-up y to a top-down row. objectHeight lifts the
// result by that many pixels.
func flipY(height, y, objectHeight float64) float64 {
	return math.Trunc(height - y - objectHeight)
}

// Note returns the centre of a note at lane and beat.
func (l Locator) Note(lane, beat float64, off Offset) (float64, float64) {
	x := math.Trunc(trackExtraW+dividerW+laneW*lane+laneW/2) + off.X
	y := flipY(l.Height, barExtraH-dividerH+beatH*beat, off.Y)
	return x, y
}

// NoteWithSize returns the top-left corner for drawing img centred on a note.
func (l Locator) NoteWithSize(lane, beat float64, img image.Image, off Offset) (int, int) {
	x, y := l.Note(lane, beat, off)
	b := img.Bounds()
	return int(x) - b.Dx()/2, int(y) - b.Dy()/2
}

// SlideQuad returns the ribbon corners between two consecutive connections.
// Each end keeps its own lane, so a lane change gives a slanted quad.
func (l Locator) SlideQuad(start, end chart.Connection) [4]gg.Point {
	x1 := math.Trunc(trackExtraW + laneW*start.Lane)
	x2 := math.Trunc(trackExtraW + laneW*end.Lane)
	y1 := flipY(l.Height, barExtraH+beatH*start.Beat, 0)
	y2 := flipY(l.Height, barExtraH+beatH*end.Beat, 0)
	return [4]gg.Point{
		{X: x1, Y: y1},
		{X: x2, Y: y2},
		{X: x2 + laneW, Y: y2},
		{X: x1 + laneW, Y: y1},
	}
}

// Comment returns the anchor of annotation text for beat, at the right edge
// of the annotation column.
func (l Locator) Comment(beat float64, off Offset) (float64, float64) {
	return trackExtraW + off.X, flipY(l.Height, barExtraH+dividerH+beatH*beat+off.Y, 0)
}

// Band returns the track rectangle covering a beat range as x, y, w, h.
func (l Locator) Band(b chart.Band) (float64, float64, float64, float64) {
	yStart := flipY(l.Height, barExtraH+beatH*b.Start, 0)
	yEnd := flipY(l.Height, barExtraH+beatH*b.End, 0)
	top, bottom := math.Min(yStart, yEnd), math.Max(yStart, yEnd)
	return trackExtraW, top, trackW, bottom - top
}
