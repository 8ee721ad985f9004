package renderer

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"time"

	"chartrender/chart"

	"github.com/fogleman/gg"
)

// Renderer turns charts into PNG overviews. It holds only read-only state,
// so one Renderer may serve concurrent Render calls.
type Renderer struct {
	theme  *Theme
	assets *Assets
	logger *slog.Logger
}

func New(theme *Theme, assets *Assets, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{theme: theme, assets: assets, logger: logger}
}

// job is the state of a single render.
type job struct {
	theme  *Theme
	assets *Assets
	meta   chart.ChartMeta
	jacket []byte

	ix       *chart.Index
	tl       *chart.Timeline
	lastBeat int

	dc    *gg.Context
	loc   Locator
	faces faceCache
}

type stage struct {
	name string
	fn   func(*job) error
}

var stages = []stage{
	{"canvas", (*job).newCanvas},
	{"tempo comments", (*job).commentTempoChanges},
	{"bar comments", (*job).commentBars},
	{"skill windows", (*job).drawSkillWindows},
	{"fever window", (*job).drawFeverWindow},
	{"dividers", (*job).drawDividers},
	{"simultaneous lines", (*job).drawSimultaneousLines},
	{"singles", (*job).drawSingles},
	{"directionals", (*job).drawDirectionals},
	{"slides", (*job).drawSlides},
	{"slide connections", (*job).drawSlideConnections},
	{"segments", (*job).segmentTrack},
	{"background", (*job).composeBackground},
	{"jacket", (*job).pasteJacket},
	{"meta", (*job).drawMeta},
	{"watermark", (*job).drawWatermark},
}

// lastBeat rounds up past the final note to a whole bar, leaving at least
// one empty beat.
func lastBeat(maxBeat float64) int {
	return int(math.Ceil(maxBeat/beatsPerBar+1)) * beatsPerBar
}

func (j *job) newCanvas() error {
	h := beatH*j.lastBeat + barExtraH*2
	j.dc = gg.NewContext(canvasW, h)
	j.loc = Locator{Height: float64(h)}
	return nil
}

// Render draws c with its meta panel and jacket. A nil jacket leaves the
// jacket slot empty; bytes that fail to decode are an error.
func (r *Renderer) Render(c chart.Chart, meta chart.ChartMeta, jacket []byte) (*Result, error) {
	start := time.Now()

	ix, err := chart.NewIndex(c)
	if err != nil {
		return nil, fmt.Errorf("render: index: %w", err)
	}
	tl, err := chart.NewTimeline(ix.Tempos)
	if err != nil {
		return nil, fmt.Errorf("render: timeline: %w", err)
	}

	j := &job{
		theme:    r.theme,
		assets:   r.assets,
		meta:     meta,
		jacket:   jacket,
		ix:       ix,
		tl:       tl,
		lastBeat: lastBeat(ix.MaxBeat()),
		faces:    faceCache{},
	}
	defer j.faces.close()

	for _, s := range stages {
		t := time.Now()
		if err := s.fn(j); err != nil {
			return nil, fmt.Errorf("render: %s: %w", s.name, err)
		}
		r.logger.Debug("stage done", "stage", s.name, "took", time.Since(t))
	}

	img, ok := j.dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("render: unexpected canvas type %T", j.dc.Image())
	}
	r.logger.Info("chart rendered",
		"id", meta.ID,
		"beats", j.lastBeat,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"took", time.Since(start),
	)
	return &Result{img: img}, nil
}

// Result is a finished render.
type Result struct {
	img *image.RGBA
}

func (r *Result) Image() *image.RGBA {
	return r.img
}

func (r *Result) WritePNG(w io.Writer) error {
	return gg.NewContextForRGBA(r.img).EncodePNG(w)
}

func (r *Result) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Result) Save(path string) error {
	return gg.SavePNG(path, r.img)
}
