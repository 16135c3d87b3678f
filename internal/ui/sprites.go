package ui

import (
	"bytes"
	_ "embed"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/knight.svg
var knightSVG []byte

// Sprite is an SVG asset rasterized for drawing at a fixed size.
type Sprite struct {
	image       *ebiten.Image
	size        int     // Display size
	renderScale float64 // Render at higher resolution for quality
}

// NewKnightSprite rasterizes the knight for squares of the given size.
func NewKnightSprite(size int) *Sprite {
	return newSprite(knightSVG, size, 3.0)
}

func newSprite(svg []byte, size int, renderScale float64) *Sprite {
	s := &Sprite{size: size, renderScale: renderScale}

	renderSize := int(float64(size) * renderScale)

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		log.Printf("Failed to parse sprite SVG: %v", err)
		return s
	}
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	// Create RGBA image and render with anti-aliasing at high resolution
	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	s.image = ebiten.NewImageFromImage(rgba)
	return s
}

// DrawAt draws the sprite with its top-left corner at the given pixel coordinates.
func (s *Sprite) DrawAt(screen *ebiten.Image, x, y int) {
	if s.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	scale := 1.0 / s.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.image, op)
}

// Size returns the display size of the sprite.
func (s *Sprite) Size() int {
	return s.size
}
