// Package scoreviz renders a coarse-search score grid to a grayscale JPEG
// heatmap: each grid is normalized into an image.Gray16 and then encoded.
package scoreviz

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
)

// Grid is one orientation's coarse score grid over a translationX x
// translationY plane.
type Grid struct {
	Scores []float64
	Width  int
	Height int
}

// ExtractImage normalizes g's scores to [0,65535] and renders them as a
// 16-bit grayscale image, brightest where the score is lowest (best),
// matching the coarse kernels' smaller-is-better convention.
func (g Grid) ExtractImage() (image.Image, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("scoreviz: invalid grid dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Scores) != g.Width*g.Height {
		return nil, fmt.Errorf("scoreviz: len(scores)=%d, want %d", len(g.Scores), g.Width*g.Height)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range g.Scores {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			s := g.Scores[y*g.Width+x]
			// Invert: the best (lowest) score renders brightest.
			normalized := 1 - (s-lo)/span
			v := uint16(math.Max(0, math.Min(65535, normalized*65535)))
			img.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	return img, nil
}

// SaveGrid renders g and writes it to path as a JPEG.
func SaveGrid(path string, g Grid) error {
	img, err := g.ExtractImage()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("scoreviz: creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scoreviz: creating file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("scoreviz: encoding jpeg: %w", err)
	}
	return nil
}

// SaveOrientationSequence writes one heatmap per orientation for a coarse
// score array laid out orientation-major with width*height entries per
// orientation, named score_%03d.jpg under outputDir.
func SaveOrientationSequence(outputDir string, scores []float64, orientationNum, width, height int) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("scoreviz: creating output directory: %w", err)
	}
	per := width * height
	for o := 0; o < orientationNum; o++ {
		base := o * per
		if base+per > len(scores) {
			return fmt.Errorf("scoreviz: orientation %d exceeds scores length %d", o, len(scores))
		}
		grid := Grid{Scores: scores[base : base+per], Width: width, Height: height}
		path := filepath.Join(outputDir, fmt.Sprintf("score_%03d.jpg", o))
		if err := SaveGrid(path, grid); err != nil {
			return err
		}
	}
	return nil
}
