package heightio

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ob6160/dropbydrop/terrain"
	"golang.org/x/image/tiff"
)

func gray16(grid *terrain.Grid) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, grid.Size, grid.Size))
	values := grid.Uint16()
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			img.SetGray16(x, y, color.Gray16{Y: values[grid.Index(x, y)]})
		}
	}
	return img
}

// WritePNG8 writes an 8-bit preview, one byte per cell.
func WritePNG8(w io.Writer, grid *terrain.Grid) error {
	img := image.NewGray(image.Rect(0, 0, grid.Size, grid.Size))
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			v := math.Round(grid.At(x, y) * math.MaxUint8)
			img.SetGray(x, y, color.Gray{Y: uint8(math.Max(0, math.Min(math.MaxUint8, v)))})
		}
	}
	return png.Encode(w, img)
}

func WritePNG16(w io.Writer, grid *terrain.Grid) error {
	return png.Encode(w, gray16(grid))
}

func WriteTIFF16(w io.Writer, grid *terrain.Grid) error {
	return tiff.Encode(w, gray16(grid), &tiff.Options{Compression: tiff.Deflate})
}

// WriteRaw16 writes the row-major little-endian uint16 layout most engines import as .r16.
func WriteRaw16(w io.Writer, grid *terrain.Grid) error {
	return binary.Write(w, binary.LittleEndian, grid.Uint16())
}

type writeFunc func(io.Writer, *terrain.Grid) error

func formatFor(path string) (writeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return WritePNG16, nil
	case ".tif", ".tiff":
		return WriteTIFF16, nil
	case ".r16", ".raw":
		return WriteRaw16, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Save picks the encoding from the file extension.
func Save(path string, grid *terrain.Grid) error {
	write, err := formatFor(path)
	if err != nil {
		return err
	}
	return writeFile(path, grid, write)
}

func SavePreview(path string, grid *terrain.Grid) error {
	return writeFile(path, grid, WritePNG8)
}

func writeFile(path string, grid *terrain.Grid, write writeFunc) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heightio: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = write(f, grid); err != nil {
		return fmt.Errorf("heightio: write %s: %w", path, err)
	}
	return nil
}

// CheckFormat reports whether Save knows how to encode path.
func CheckFormat(path string) error {
	_, err := formatFor(path)
	return err
}
