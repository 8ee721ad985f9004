package renderer

import (
	"bytes"
	"image"

	"github.com/fogleman/gg"
)

var (
	colorNoteNormal  = Color{0.25, 0.55, 1, 1}
	colorNoteOffBeat = Color{0.55, 0.3, 0.85, 1}
	colorNoteSkill   = Color{1, 0.8, 0.1, 1}
	colorNoteLong    = Color{0.3, 0.9, 0.45, 1}
	colorNoteFlick   = Color{1, 0.35, 0.55, 1}
	colorNoteLeft    = Color{0.7, 0.3, 1, 1}
	colorNoteRight   = Color{1, 0.55, 0.1, 1}
)

func setColor(dc *gg.Context, c Color) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func getLighterShade(c Color) Color {
	var d = 0.5
	return Color{c.R + (1-c.R)*d, c.G + (1-c.G)*d, c.B + (1-c.B)*d, c.A}
}

// builtin note bodies are drawn wide and flat, like the track's top view
func drawNoteBody(c Color) image.Image {
	const w, h = 120, 40
	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(4, 4, w-8, h-8, 14)
	setColor(dc, c)
	dc.FillPreserve()
	dc.SetRGBA(1, 1, 1, 1)
	dc.SetLineWidth(4)
	dc.Stroke()

	dc.DrawRoundedRectangle(18, 15, w-36, 10, 5)
	setColor(dc, getLighterShade(c))
	dc.Fill()
	return dc.Image()
}

func drawSlideJoint() image.Image {
	const w, h = 120, 40
	dc := gg.NewContext(w, h)
	dc.DrawEllipse(w/2, h/2, 30, 12)
	setColor(dc, getLighterShade(colorNoteLong))
	dc.FillPreserve()
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.SetLineWidth(3)
	dc.Stroke()
	return dc.Image()
}

// drawArrow points up for dx == 0, else left (-1) or right (1).
func drawArrow(c Color, dx float64) image.Image {
	const w, h = 120, 80
	dc := gg.NewContext(w, h)
	if dx == 0 {
		dc.MoveTo(w/2, 6)
		dc.LineTo(w-14, h-8)
		dc.LineTo(14, h-8)
	} else {
		tip, base := 8.0, w-8.0
		if dx > 0 {
			tip, base = base, tip
		}
		dc.MoveTo(tip, h/2)
		dc.LineTo(base, 8)
		dc.LineTo(base, h-8)
	}
	dc.ClosePath()
	setColor(dc, c)
	dc.FillPreserve()
	dc.SetRGBA(1, 1, 1, 1)
	dc.SetLineWidth(4)
	dc.Stroke()
	return dc.Image()
}

func builtinGlyph(g glyph) image.Image {
	switch g {
	case glyphNormalOffBeat:
		return drawNoteBody(colorNoteOffBeat)
	case glyphSkill:
		return drawNoteBody(colorNoteSkill)
	case glyphLong:
		return drawNoteBody(colorNoteLong)
	case glyphSlideJoint:
		return drawSlideJoint()
	case glyphFlick:
		return drawNoteBody(colorNoteFlick)
	case glyphFlickTop:
		return drawArrow(colorNoteFlick, 0)
	case glyphFlickLeft:
		return drawNoteBody(colorNoteLeft)
	case glyphFlickRight:
		return drawNoteBody(colorNoteRight)
	case glyphFlickLeftTop:
		return drawArrow(colorNoteLeft, -1)
	case glyphFlickRightTop:
		return drawArrow(colorNoteRight, 1)
	}
	return drawNoteBody(colorNoteNormal)
}

func builtinBackground() image.Image {
	const w, h = 512, 1024
	dc := gg.NewContext(w, h)
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, Color{0.12, 0.1, 0.3, 1}.NRGBA())
	grad.AddColorStop(0.5, Color{0.35, 0.15, 0.4, 1}.NRGBA())
	grad.AddColorStop(1, Color{0.05, 0.05, 0.1, 1}.NRGBA())
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	return dc.Image()
}

// builtinJacket is PNG encoded, the same form fetched jackets arrive in.
func builtinJacket() ([]byte, error) {
	dc := gg.NewContext(jacketW, jacketH)
	dc.SetRGB(0.3, 0.3, 0.33)
	dc.Clear()
	dc.DrawCircle(jacketW/2, jacketH/2, jacketW/4)
	dc.SetRGBA(1, 1, 1, 0.3)
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
