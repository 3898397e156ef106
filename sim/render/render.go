// Package render draws a spin grid for inspection: a PNG image with an
// optional title band, or a text block for the console.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/inference-sim/ising-sim/sim"
)

var (
	// UpColor and DownColor are the two ends of the viridis colormap.
	UpColor   = color.RGBA{253, 231, 37, 255}
	DownColor = color.RGBA{68, 1, 84, 255}

	background = color.RGBA{255, 255, 255, 255}
	textColor  = color.RGBA{0, 0, 0, 255}
)

const titleHeight = 20

// Image draws spins with each cell as a cellSize×cellSize square, [x][y]
// mapped to row x and column y. A non-empty title is drawn in a band above the grid.
func Image(spins [][]sim.Spin, cellSize int, title string) *image.RGBA {
	if cellSize < 1 {
		cellSize = 1
	}
	n := len(spins)
	top := 0
	if title != "" {
		top = titleHeight
	}
	width := n * cellSize
	if title != "" {
		width = max(width, font.MeasureString(basicfont.Face7x13, title).Ceil()+8)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, top+n*cellSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	for x, row := range spins {
		for y, s := range row {
			c := DownColor
			if s == sim.Up {
				c = UpColor
			}
			cell := image.Rect(y*cellSize, top+x*cellSize, (y+1)*cellSize, top+(x+1)*cellSize)
			draw.Draw(img, cell, &image.Uniform{c}, image.Point{}, draw.Src)
		}
	}

	if title != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(textColor),
			Face: basicfont.Face7x13,
			Dot:  fixed.Point26_6{X: fixed.I(4), Y: fixed.I(titleHeight - 5)},
		}
		d.DrawString(title)
	}
	return img
}

// WritePNG encodes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Text renders spins one row per line, '#' for Up and '.' for Down.
func Text(spins [][]sim.Spin) string {
	var b strings.Builder
	for _, row := range spins {
		for _, s := range row {
			if s == sim.Up {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
