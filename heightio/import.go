package heightio

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	get "github.com/hashicorp/go-getter"
	"github.com/ob6160/dropbydrop/terrain"
)

// ReadPNG decodes a square image into a grid with heights in [0, 1].
func ReadPNG(r io.Reader) (*terrain.Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("heightio: decode: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}
	grid := terrain.NewGrid(b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			grid.Set(x, y, float64(c.Y)/math.MaxUint16)
		}
	}
	return grid, nil
}

func Load(path string) (*terrain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heightio: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPNG(f)
}

func fileName(src string) string {
	// Strip forced getters ("s3::", "git::") and subdirectories ("//").
	if i := strings.LastIndex(src, "::"); i >= 0 {
		src = src[i+2:]
	}
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		src = u.Path
	}
	name := path.Base(filepath.ToSlash(src))
	if name == "." || name == "/" || name == "" {
		return "heightmap.png"
	}
	return name
}

// Fetch downloads src to a file inside dir and returns its path.
// Any go-getter source works: local paths, http(s), s3, gcs, git.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, fileName(src))
	client := &get.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: get.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("heightio: fetch %s: %w", src, err)
	}
	return dst, nil
}
