package renderer

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontSource makes faces of one font at any size. Parsed fonts are safe to
// share between renders; the faces they make are not.
type FontSource interface {
	NewFace(size float64) (font.Face, error)
}

type trueTypeFont struct {
	f *truetype.Font
}

func (t trueTypeFont) NewFace(size float64) (font.Face, error) {
	return truetype.NewFace(t.f, &truetype.Options{Size: size}), nil
}

type openTypeFont struct {
	f *opentype.Font
}

func (o openTypeFont) NewFace(size float64) (font.Face, error) {
	return opentype.NewFace(o.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// ParseFont reads TrueType data with freetype and falls back to the
// OpenType parser for CFF fonts and collections.
func ParseFont(data []byte) (FontSource, error) {
	if tt, err := truetype.Parse(data); err == nil {
		return trueTypeFont{f: tt}, nil
	}

	ot, err := opentype.Parse(data)
	if err == nil {
		return openTypeFont{f: ot}, nil
	}

	collection, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, fmt.Errorf("unsupported font: %w", err)
	}
	if collection.NumFonts() == 0 {
		return nil, fmt.Errorf("font collection is empty")
	}
	ot, err = collection.Font(0)
	if err != nil {
		return nil, err
	}
	return openTypeFont{f: ot}, nil
}

func LoadFont(path string) (FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return f, nil
}

type faceKey struct {
	src  FontSource
	size float64
}

// faceCache belongs to a single render.
type faceCache map[faceKey]font.Face

func (c faceCache) face(src FontSource, size float64) (font.Face, error) {
	key := faceKey{src: src, size: size}
	if f, ok := c[key]; ok {
		return f, nil
	}
	f, err := src.NewFace(size)
	if err != nil {
		return nil, err
	}
	c[key] = f
	return f, nil
}

func (c faceCache) close() {
	for k, f := range c {
		f.Close()
		delete(c, k)
	}
}
