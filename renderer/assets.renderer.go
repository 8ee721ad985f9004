package renderer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"
)

type glyph int

const (
	glyphNormal glyph = iota
	glyphNormalOffBeat
	glyphSkill
	glyphLong
	glyphSlideJoint
	glyphFlick
	glyphFlickTop
	glyphFlickLeft
	glyphFlickRight
	glyphFlickLeftTop
	glyphFlickRightTop
	glyphCount
)

var glyphFiles = [glyphCount]string{
	glyphNormal:        "note_normal_3.png",
	glyphNormalOffBeat: "note_normal_16_3.png",
	glyphSkill:         "note_skill_3.png",
	glyphLong:          "note_long_3.png",
	glyphSlideJoint:    "note_slide_among.png",
	glyphFlick:         "note_flick_3.png",
	glyphFlickTop:      "note_flick_top.png",
	glyphFlickLeft:     "note_flick_l_3.png",
	glyphFlickRight:    "note_flick_r_3.png",
	glyphFlickLeftTop:  "note_flick_top_l.png",
	glyphFlickRightTop: "note_flick_top_r.png",
}

const (
	backgroundFile    = "liveBG_normal.png"
	defaultJacketFile = "default_jacket.png"
)

// accents sit on top of a note body and keep their aspect ratio.
func (g glyph) accent() bool {
	return g == glyphFlickTop || g == glyphFlickLeftTop || g == glyphFlickRightTop
}

// AssetPaths points at asset files. Empty entries use the built-in assets.
type AssetPaths struct {
	// Dir holds the note glyphs, background and default jacket under their
	// conventional file names.
	Dir        string `yaml:"dir"`
	FontSmall  string `yaml:"font_small"`
	FontMedium string `yaml:"font_medium"`
	FontLarge  string `yaml:"font_large"`
}

// Assets are the read-only images and fonts a render draws with. Glyphs
// are stored already scaled to their lane width.
type Assets struct {
	glyphs        [glyphCount]image.Image
	Background    image.Image
	DefaultJacket []byte

	FontSmall  FontSource
	FontMedium FontSource
	FontLarge  FontSource
}

// LoadAssets reads assets from paths, using built-ins where a path is empty.
func LoadAssets(paths AssetPaths) (*Assets, error) {
	a, err := DefaultAssets()
	if err != nil {
		return nil, err
	}

	if paths.Dir != "" {
		for g, name := range glyphFiles {
			img, err := openImage(filepath.Join(paths.Dir, name))
			if err != nil {
				return nil, err
			}
			a.setGlyph(glyph(g), img)
		}
		if a.Background, err = openImage(filepath.Join(paths.Dir, backgroundFile)); err != nil {
			return nil, err
		}
		jacket, err := os.ReadFile(filepath.Join(paths.Dir, defaultJacketFile))
		switch {
		case err == nil:
			a.DefaultJacket = jacket
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	fonts := []struct {
		path string
		dst  *FontSource
	}{
		{paths.FontSmall, &a.FontSmall},
		{paths.FontMedium, &a.FontMedium},
		{paths.FontLarge, &a.FontLarge},
	}
	for _, f := range fonts {
		if f.path == "" {
			continue
		}
		if *f.dst, err = LoadFont(f.path); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// DefaultAssets paints every glyph procedurally and uses the Go fonts.
func DefaultAssets() (*Assets, error) {
	bold, err := ParseFont(gobold.TTF)
	if err != nil {
		return nil, err
	}
	regular, err := ParseFont(goregular.TTF)
	if err != nil {
		return nil, err
	}

	a := &Assets{
		Background: builtinBackground(),
		FontSmall:  bold,
		FontMedium: bold,
		FontLarge:  regular,
	}
	for g := glyph(0); g < glyphCount; g++ {
		a.setGlyph(g, builtinGlyph(g))
	}
	if a.DefaultJacket, err = builtinJacket(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Assets) setGlyph(g glyph, src image.Image) {
	if g.accent() {
		a.glyphs[g] = resizeToWidth(src, laneW, false)
		return
	}
	a.glyphs[g] = resizeToWidth(src, noteResizeW, true)
}

func (a *Assets) glyph(g glyph) image.Image {
	return a.glyphs[g]
}

func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// resizeToWidth scales src to width keeping its aspect ratio. With back
// projection the height is stretched to undo the track's perspective.
func resizeToWidth(src image.Image, width int, backProjection bool) *image.RGBA {
	b := src.Bounds()
	height := int(float64(b.Dy()) * float64(width) / float64(b.Dx()))
	if backProjection {
		height = int(float64(height) * backProjectionFactor)
	}
	return scaleImage(src, b, width, height)
}

func scaleImage(src image.Image, from image.Rectangle, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, from, draw.Src, nil)
	return dst
}
