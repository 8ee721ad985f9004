package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestDefaultAssetsScaleGlyphs(t *testing.T) {
	a, err := DefaultAssets()
	require.NoError(t, err)

	for g := glyph(0); g < glyphCount; g++ {
		img := a.glyph(g)
		require.NotNil(t, img)
		if g.accent() {
			assert.Equal(t, laneW, img.Bounds().Dx(), glyphFiles[g])
		} else {
			assert.Equal(t, noteResizeW, img.Bounds().Dx(), glyphFiles[g])
		}
	}
	assert.NotEmpty(t, a.DefaultJacket)
}

func TestResizeToWidthBackProjection(t *testing.T) {
	src := gg.NewContext(120, 40).Image()

	assert.Equal(t, 7, resizeToWidth(src, 22, false).Bounds().Dy())
	assert.Equal(t, 12, resizeToWidth(src, 22, true).Bounds().Dy())
}

func writeAssetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	img := gg.NewContext(60, 20)
	img.SetRGB(1, 0, 0)
	img.Clear()
	for _, name := range glyphFiles {
		require.NoError(t, img.SavePNG(filepath.Join(dir, name)))
	}
	require.NoError(t, img.SavePNG(filepath.Join(dir, backgroundFile)))
	return dir
}

func TestLoadAssetsFromDir(t *testing.T) {
	dir := writeAssetDir(t)
	fontPath := filepath.Join(dir, "mono.ttf")
	require.NoError(t, os.WriteFile(fontPath, gomono.TTF, 0o644))

	a, err := LoadAssets(AssetPaths{Dir: dir, FontLarge: fontPath})
	require.NoError(t, err)

	assert.Equal(t, 60, a.Background.Bounds().Dx())
	assert.Equal(t, noteResizeW, a.glyph(glyphNormal).Bounds().Dx())
	assert.NotEmpty(t, a.DefaultJacket, "missing jacket keeps the built-in one")

	face, err := a.FontLarge.NewFace(12)
	require.NoError(t, err)
	defer face.Close()
}

func TestLoadAssetsMissingGlyph(t *testing.T) {
	dir := writeAssetDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, glyphFiles[glyphSkill])))

	_, err := LoadAssets(AssetPaths{Dir: dir})
	assert.Error(t, err)
}

func TestParseFontRejectsGarbage(t *testing.T) {
	_, err := ParseFont([]byte("definitely not a font"))
	assert.Error(t, err)
}

func TestFaceCacheReusesFaces(t *testing.T) {
	a, err := DefaultAssets()
	require.NoError(t, err)

	cache := faceCache{}
	f1, err := cache.face(a.FontSmall, 12)
	require.NoError(t, err)
	f2, err := cache.face(a.FontSmall, 12)
	require.NoError(t, err)
	f3, err := cache.face(a.FontSmall, 14)
	require.NoError(t, err)

	assert.Same(t, f1, f2)
	assert.Len(t, cache, 2)
	assert.NotNil(t, f3)
	cache.close()
	assert.Empty(t, cache)
}
