package renderer

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strconv"

	"chartrender/chart"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// segmentTrack cuts the tall track into 16-beat strips, bottom strip first,
// and lays them out left to right. Strips overlap by the bar margins.
func (j *job) segmentTrack() error {
	src := j.dc.Image()
	h := float64(j.dc.Height())
	count := int(math.Ceil(float64(j.lastBeat) / beatsPerSegment))

	tiled := gg.NewContext(canvasW*count, segmentH+barExtraH*2)
	dst := tiled.Image().(draw.Image)
	for i := 0; i < count; i++ {
		top := int(flipY(h, float64((i+1)*segmentH+barExtraH*2), 0))
		bottom := int(flipY(h, float64(i*segmentH), 0))
		r := image.Rect(i*canvasW, 0, (i+1)*canvasW, bottom-top)
		draw.Draw(dst, r, src, image.Pt(0, top), draw.Over)
	}

	j.dc = tiled
	return nil
}

// composeBackground puts the strips on the darkened top half of the
// background, leaving room below for the jacket and meta panel, and fills
// that room with the difficulty colour.
func (j *job) composeBackground() error {
	track := j.dc.Image()
	tw, th := j.dc.Width(), j.dc.Height()
	w := tw + 2*margin
	h := th + 2*margin + 2*jacketMargin + jacketH

	bg := j.assets.Background.Bounds()
	upper := image.Rect(bg.Min.X, bg.Min.Y, bg.Max.X, bg.Min.Y+bg.Dy()/2)

	dc := gg.NewContextForRGBA(scaleImage(j.assets.Background, upper, w, h))
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	setColor(dc, j.theme.TrackBackground)
	dc.Fill()

	dc.DrawImage(track, margin, margin)

	footer := float64(th + 2*margin)
	dc.DrawRectangle(0, footer, float64(w), float64(h)-footer)
	setColor(dc, j.theme.difficultyColor(j.meta.DifficultyOr(chart.Expert)))
	dc.Fill()

	j.dc = dc
	j.loc = Locator{Height: float64(h)}
	return nil
}

func (j *job) pasteJacket() error {
	if len(j.jacket) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(j.jacket))
	if err != nil {
		return fmt.Errorf("decode jacket: %w", err)
	}

	thumb := scaleImage(img, img.Bounds(), jacketW, jacketH)
	j.dc.DrawImage(thumb, jacketMargin, j.dc.Height()-jacketMargin-jacketH)
	return nil
}

type metaRow struct {
	key   string
	value string
	line  float64
}

// metaRows lists the left column: artist, then chart designer for fan-made
// charts or lyricist, composer and arranger for official ones.
func metaRows(m chart.ChartMeta) []metaRow {
	candidates := []metaRow{{"Artist", m.Artist, 1}}
	if m.Official {
		candidates = append(candidates,
			metaRow{"Lyricist", m.Lyricist, 2},
			metaRow{"Composer", m.Composer, 3},
			metaRow{"Arranger", m.Arranger, 4},
		)
	} else {
		candidates = append(candidates, metaRow{"Chart Designer", m.ChartDesigner, 2})
	}

	var rows []metaRow
	for _, r := range candidates {
		if r.value != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

func levelLine(m chart.ChartMeta) string {
	if m.Official {
		return fmt.Sprintf("[%s] %d", m.DifficultyOr(chart.Expert), m.Level)
	}
	return fmt.Sprintf("[Fan-Made] %d", m.Level)
}

func (j *job) drawMeta() error {
	dc := j.dc
	sizes := j.theme.FontSizes
	setColor(dc, j.theme.MetaText)

	top := float64(dc.Height() - jacketMargin - jacketH)
	spacing := sizes.Meta * 1.4
	keyCol1 := float64(jacketW + 2*jacketMargin)
	keyCol2 := keyCol1 + float64(dc.Width()/2)

	if err := j.useFont(j.assets.FontLarge, sizes.MetaTitle); err != nil {
		return err
	}
	dc.DrawStringAnchored(fmt.Sprintf("[%d] %s", j.meta.ID, j.meta.Title), keyCol1, top-spacing*0.2, 0, 1)

	if err := j.useFont(j.assets.FontLarge, sizes.Meta); err != nil {
		return err
	}
	keyW1, _ := dc.MeasureString("Chart Designer ")
	keyW2, _ := dc.MeasureString("Notes     ")

	for _, r := range metaRows(j.meta) {
		y := top + spacing*r.line
		dc.DrawStringAnchored(r.key, keyCol1, y, 0, 1)
		dc.DrawStringAnchored(r.value, keyCol1+keyW1, y, 0, 1)
	}

	totalNotes := j.meta.TotalNotes
	if totalNotes <= 0 {
		totalNotes = j.ix.TotalCombo()
	}
	right := []metaRow{
		{"Level", levelLine(j.meta), 0},
		{"BPM", formatTempoRange(j.ix.TempoRange()), 1},
		{"Notes", strconv.Itoa(totalNotes), 2},
	}
	for _, r := range right {
		y := top + spacing*r.line
		dc.DrawStringAnchored(r.key, keyCol2, y, 0, 1)
		dc.DrawStringAnchored(r.value, keyCol2+keyW2, y, 0, 1)
	}
	return nil
}

func (j *job) drawWatermark() error {
	if j.theme.Watermark == "" {
		return nil
	}
	if err := j.useFont(j.assets.FontMedium, j.theme.FontSizes.Watermark); err != nil {
		return err
	}
	setColor(j.dc, j.theme.MetaText)
	j.dc.DrawStringAnchored(j.theme.Watermark, float64(j.dc.Width()-margin), float64(j.dc.Height()-margin), 1, 0)
	return nil
}
