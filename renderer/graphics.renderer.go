package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"chartrender/chart"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

func (j *job) newLayer() *gg.Context {
	return gg.NewContext(j.dc.Width(), j.dc.Height())
}

// compositeLayer blends layer over the canvas, scaled by alpha.
func (j *job) compositeLayer(layer *gg.Context, alpha float64) {
	dst := j.dc.Image().(draw.Image)
	src := layer.Image()
	if alpha >= 1 {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

// drawPixelLine strokes a one pixel line through pixel centres, so integer
// coordinates cover whole pixels.
func drawPixelLine(dc *gg.Context, x1, y1, x2, y2, width float64) {
	dc.SetLineWidth(width)
	dc.DrawLine(x1+0.5, y1+0.5, x2+0.5, y2+0.5)
	dc.Stroke()
}

func (j *job) useFont(src FontSource, size float64) error {
	face, err := j.faces.face(src, size)
	if err != nil {
		return err
	}
	j.dc.SetFontFace(face)
	return nil
}

// drawComment writes right-aligned annotation text on its baseline.
func (j *job) drawComment(s string, beat float64, off Offset) {
	x, y := j.loc.Comment(beat, off)
	j.dc.DrawStringAnchored(s, x, y, 1, 0)
}

func (j *job) commentTempoChanges() error {
	size := j.theme.FontSizes.Tempo
	if err := j.useFont(j.assets.FontMedium, size); err != nil {
		return err
	}
	setColor(j.dc, j.theme.Tempo)
	off := Offset{X: math.Floor(-size / 4), Y: math.Floor(-size / 2)}

	for _, t := range j.ix.Tempos {
		j.drawComment(formatBPM(t.BPM)+" >", t.Beat, off)
	}
	return nil
}

// commentBars writes elapsed time, combo so far and bar number at the
// start of every bar.
func (j *job) commentBars() error {
	if err := j.useFont(j.assets.FontSmall, j.theme.FontSizes.Bar); err != nil {
		return err
	}
	setColor(j.dc, j.theme.Time)

	for bar := 0; bar < j.lastBeat/beatsPerBar; bar++ {
		beat := float64(bar * beatsPerBar)
		lines := []string{
			formatElapsed(j.tl.Time(beat)),
			strconv.Itoa(j.ix.ComboBefore(beat)),
			fmt.Sprintf("[%d]", bar),
		}
		for i, s := range lines {
			j.drawComment(s, beat, Offset{X: -5, Y: float64(barExtraH * (i + 1))})
		}
	}
	return nil
}

func (j *job) drawBand(dc *gg.Context, b chart.Band, fill, outline Color) {
	x, y, w, h := j.loc.Band(b)
	dc.DrawRectangle(x, y, w, h)
	setColor(dc, fill)
	dc.FillPreserve()
	setColor(dc, outline)
	dc.SetLineWidth(1)
	dc.Stroke()
}

// drawSkillWindows paints every window straight onto the canvas, so
// overlapping windows stack.
func (j *job) drawSkillWindows() error {
	if err := j.useFont(j.assets.FontMedium, j.theme.FontSizes.SkillFever); err != nil {
		return err
	}

	for _, w := range j.ix.SkillWindows(j.tl) {
		for _, b := range w.Bands() {
			j.drawBand(j.dc, b, j.theme.SkillFill, j.theme.SkillOutline)
		}

		setColor(j.dc, j.theme.Skill)
		j.drawComment(fmt.Sprintf("#%d", w.Number), w.Trigger, Offset{X: -5})
		for i, end := range w.Ends {
			j.drawComment(fmt.Sprintf("#%d +%gs", w.Number, chart.SkillOffsets[i]), end, Offset{X: -5})
		}
	}
	return nil
}

func (j *job) drawFeverWindow() error {
	w, ok := j.ix.FeverWindow()
	if !ok {
		return nil
	}

	layer := j.newLayer()
	for _, b := range w.Bands() {
		j.drawBand(layer, b, j.theme.FeverFill, j.theme.FeverOutline)
	}
	j.compositeLayer(layer, 1)

	if err := j.useFont(j.assets.FontMedium, j.theme.FontSizes.SkillFever); err != nil {
		return err
	}
	setColor(j.dc, j.theme.Fever)
	j.drawComment("Ready", w.Ready, Offset{X: -5})
	j.drawComment("Start", w.Start, Offset{X: -5})
	j.drawComment("End", w.End, Offset{X: -5})
	return nil
}

func (j *job) drawDividers() error {
	layer := j.newLayer()
	w, h := float64(j.dc.Width()), float64(j.dc.Height())

	setColor(layer, j.theme.DividerLane)
	for lane := 0; lane <= chart.Lanes; lane++ {
		x := float64(trackExtraW + lane*laneW)
		drawPixelLine(layer, x, 0, x, h, dividerW)
	}

	setColor(layer, j.theme.DividerBeat)
	for beat := 0; beat <= j.lastBeat; beat++ {
		y := float64(barExtraH + beat*beatH)
		drawPixelLine(layer, trackExtraW, y, w-trackOutlineW-dividerW, y, dividerH)
	}

	setColor(layer, j.theme.DividerBar)
	for bar := 0; bar <= j.lastBeat/beatsPerBar; bar++ {
		y := float64(barExtraH + bar*barH)
		drawPixelLine(layer, trackExtraW-trackOutlineW, y, w, y, dividerH)
	}

	j.compositeLayer(layer, 1)
	return nil
}

// drawSimultaneousLines links consecutive notes that share a beat.
func (j *job) drawSimultaneousLines() error {
	layer := j.newLayer()
	setColor(layer, j.theme.Simultaneous)
	off := Offset{Y: simultaneousLineW}

	for _, g := range j.ix.GroupsByBeat() {
		for i := 1; i < len(g.Points); i++ {
			a, b := g.Points[i-1], g.Points[i]
			x1, y1 := j.loc.Note(a.Lane, a.Beat, off)
			x2, y2 := j.loc.Note(b.Lane, b.Beat, off)
			drawPixelLine(layer, x1, y1, x2, y2, simultaneousLineW)
		}
	}

	j.compositeLayer(layer, 1)
	return nil
}

func (j *job) drawGlyph(g glyph, lane, beat float64, off Offset) {
	img := j.assets.glyph(g)
	x, y := j.loc.NoteWithSize(lane, beat, img, off)
	j.dc.DrawImage(img, x, y)
}

// drawTapNote draws a note body and, for flicks, the arrow above it.
func (j *job) drawTapNote(g glyph, lane, beat float64, flick bool) {
	j.drawGlyph(g, lane, beat, Offset{})
	if flick {
		j.drawGlyph(glyphFlickTop, lane, beat, flickTopOffset)
	}
}

// offBeat notes fall off the eighth-note grid.
func offBeat(beat float64) bool {
	return math.Mod(beat, 0.5) != 0
}

func (j *job) drawSingles() error {
	for _, s := range j.ix.Singles {
		var g glyph
		switch {
		case s.Flick:
			g = glyphFlick
		case s.Skill:
			g = glyphSkill
		case offBeat(s.Beat):
			g = glyphNormalOffBeat
		default:
			g = glyphNormal
		}
		j.drawTapNote(g, float64(s.Lane), s.Beat, s.Flick)
	}
	return nil
}

// drawDirectionals repeats the body across the note's width, then puts the
// arrow past its far end.
func (j *job) drawDirectionals() error {
	for _, d := range j.ix.Directionals {
		body, top, factor := glyphFlickRight, glyphFlickRightTop, 1.0
		if d.Direction == chart.Left {
			body, top, factor = glyphFlickLeft, glyphFlickLeftTop, -1.0
		}

		lane := float64(d.Lane)
		for w := 0; w < d.Width; w++ {
			j.drawGlyph(body, lane, d.Beat, Offset{X: float64(w*laneW) * factor})
		}
		j.drawGlyph(top, lane, d.Beat, Offset{
			X: (float64(d.Width*laneW) + directionalTopOffset.X) * factor,
			Y: directionalTopOffset.Y,
		})
	}
	return nil
}

// drawSlides paints ribbons opaque on one layer and blends the layer once,
// so overlapping ribbons keep the slide alpha.
func (j *job) drawSlides() error {
	layer := j.newLayer()
	setColor(layer, j.theme.Slide.Opaque())

	for _, s := range j.ix.Slides {
		for i := 1; i < len(s.Connections); i++ {
			quad := j.loc.SlideQuad(s.Connections[i-1], s.Connections[i])
			layer.MoveTo(quad[0].X, quad[0].Y)
			for _, p := range quad[1:] {
				layer.LineTo(p.X, p.Y)
			}
			layer.ClosePath()
			layer.Fill()
		}
	}

	j.compositeLayer(layer, j.theme.Slide.A)
	return nil
}

func (j *job) drawSlideConnections() error {
	for _, s := range j.ix.Slides {
		last := len(s.Connections) - 1
		for i, c := range s.Connections {
			var g glyph
			switch {
			case c.Hidden:
				continue
			case c.Flick:
				g = glyphFlick
			case c.Skill:
				g = glyphSkill
			case i == 0 || i == last:
				g = glyphLong
			default:
				g = glyphSlideJoint
			}
			j.drawTapNote(g, c.Lane, c.Beat, c.Flick)
		}
	}
	return nil
}
