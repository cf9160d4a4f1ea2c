package heightio

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ob6160/dropbydrop/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func ramp(size int) *terrain.Grid {
	g := terrain.NewGrid(size)
	for i := range g.Heights {
		g.Heights[i] = float64(i) / float64(len(g.Heights)-1)
	}
	return g
}

func TestPNG16RoundTrip(t *testing.T) {
	g := ramp(8)
	var buf bytes.Buffer
	require.NoError(t, WritePNG16(&buf, g))

	back, err := ReadPNG(&buf)
	require.NoError(t, err)
	require.Equal(t, 8, back.Size)
	assert.Equal(t, g.Uint16(), back.Uint16())
}

func TestPNG8Clamps(t *testing.T) {
	g := terrain.NewGrid(2)
	g.Heights = []float64{-1, 0.5, 1, 3}
	var buf bytes.Buffer
	require.NoError(t, WritePNG8(&buf, g))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	gray := img.(*image.Gray)
	assert.Equal(t, []uint8{0, 128, 255, 255}, gray.Pix)
}

func TestTIFF16Decodes(t *testing.T) {
	g := ramp(5)
	var buf bytes.Buffer
	require.NoError(t, WriteTIFF16(&buf, g))

	img, err := tiff.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), img.Bounds())
	c := color.Gray16Model.Convert(img.At(4, 4)).(color.Gray16)
	assert.Equal(t, uint16(65535), c.Y)
}

func TestRaw16(t *testing.T) {
	g := ramp(3)
	var buf bytes.Buffer
	require.NoError(t, WriteRaw16(&buf, g))
	require.Equal(t, 9*2, buf.Len())

	values := make([]uint16, 9)
	require.NoError(t, binary.Read(&buf, binary.LittleEndian, values))
	assert.Equal(t, g.Uint16(), values)
}

func TestReadPNGNotSquare(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 3))))
	_, err := ReadPNG(&buf)
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestSaveByExtension(t *testing.T) {
	dir := t.TempDir()
	g := ramp(4)
	for _, name := range []string{"a.png", "a.tif", "a.TIFF", "a.r16"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			require.NoError(t, Save(p, g))
			info, err := os.Stat(p)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
	assert.ErrorIs(t, Save(filepath.Join(dir, "a.bmp"), g), ErrUnknownFormat)
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"/tmp/maps/alps.png":                      "alps.png",
		"https://example.com/maps/alps.png?x=1":   "alps.png",
		"s3::https://s3.amazonaws.com/b/alps.png": "alps.png",
		"https://example.com/":                    "heightmap.png",
	}
	for src, want := range cases {
		assert.Equal(t, want, fileName(src), src)
	}
}

func TestFetchLocalFile(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "input.png")
	g := ramp(6)
	require.NoError(t, Save(src, g))

	dst, err := Fetch(context.Background(), src, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "input.png", filepath.Base(dst))

	back, err := Load(dst)
	require.NoError(t, err)
	assert.Equal(t, g.Uint16(), back.Uint16())
}
