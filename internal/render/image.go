package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/knightroutes/internal/board"
)

// MinSquareSize is the smallest square size that still fits its labels.
const MinSquareSize = 16

// Frame is one picture of the search: the layers to tint, the target, and
// optionally one route to trace.
type Frame struct {
	Layers []board.Bitboard
	Target board.Square
	Route  []board.Square
}

// ImageRenderer draws frames as images. The board is described as SVG,
// rasterized with oksvg, and labelled with the Go fonts.
type ImageRenderer struct {
	theme      *Theme
	squareSize int
	margin     int

	labelFace font.Face // layer digits
	coordFace font.Face // file letters, rank numbers
}

// NewImageRenderer creates a renderer with squares of the given pixel size.
// A nil theme selects DefaultTheme.
func NewImageRenderer(squareSize int, theme *Theme) (*ImageRenderer, error) {
	if squareSize < MinSquareSize {
		return nil, fmt.Errorf("square size %d below minimum %d", squareSize, MinSquareSize)
	}
	if theme == nil {
		theme = DefaultTheme()
	}

	labelFace, err := newFace(gobold.TTF, float64(squareSize)*0.45)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	coordFace, err := newFace(goregular.TTF, float64(squareSize)*0.3)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}

	return &ImageRenderer{
		theme:      theme,
		squareSize: squareSize,
		margin:     squareSize / 2,
		labelFace:  labelFace,
		coordFace:  coordFace,
	}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Size returns the width and height of rendered images in pixels.
func (r *ImageRenderer) Size() int {
	return 8*r.squareSize + 2*r.margin
}

// squareOrigin returns the top-left pixel of a square. Rank 8 is at the top.
func (r *ImageRenderer) squareOrigin(sq board.Square) (x, y int) {
	return r.margin + sq.File()*r.squareSize, r.margin + (7-sq.Rank())*r.squareSize
}

// SquareBounds returns the pixel rectangle of a square in rendered images.
func (r *ImageRenderer) SquareBounds(sq board.Square) image.Rectangle {
	x, y := r.squareOrigin(sq)
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

func (r *ImageRenderer) squareCenter(sq board.Square) (x, y int) {
	x, y = r.squareOrigin(sq)
	return x + r.squareSize/2, y + r.squareSize/2
}

// depths returns, per square index, the deepest layer containing it or -1.
func depths(layers []board.Bitboard) [64]int {
	var d [64]int
	for i := range d {
		d[i] = -1
	}
	for depth, layer := range layers {
		layer.ForEach(func(sq board.Square) {
			d[sq.Index()] = depth
		})
	}
	return d
}

// SVG returns the board without text labels as an SVG document.
func (r *ImageRenderer) SVG(f Frame) []byte {
	var b bytes.Buffer
	size := r.Size()
	t := r.theme

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		size, size, size, size)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", size, size, hex(t.Background))

	layerDepth := depths(f.Layers)
	for _, sq := range board.AllSquares() {
		c := t.DarkSquare
		if sq.IsLight() {
			c = t.LightSquare
		}
		if d := layerDepth[sq.Index()]; d >= 0 {
			c = blend(c, t.layerColor(d), t.LayerAlpha)
		}
		x, y := r.squareOrigin(sq)
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			x, y, r.squareSize, r.squareSize, hex(c))
	}

	stroke := max(2, r.squareSize/12)
	if f.Target.IsValid() {
		cx, cy := r.squareCenter(f.Target)
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
			cx, cy, r.squareSize/2-stroke, hex(t.TargetColor), stroke)
	}

	if len(f.Route) > 1 {
		points := make([]string, 0, len(f.Route))
		for _, sq := range f.Route {
			cx, cy := r.squareCenter(sq)
			points = append(points, strconv.Itoa(cx)+","+strconv.Itoa(cy))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%d" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			strings.Join(points, " "), hex(t.RouteColor), stroke)
		for _, sq := range f.Route {
			cx, cy := r.squareCenter(sq)
			fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>`+"\n", cx, cy, 2*stroke, hex(t.RouteColor))
		}
	}

	b.WriteString("</svg>\n")
	return b.Bytes()
}

// Render rasterizes a frame and draws coordinates and layer digits on it.
func (r *ImageRenderer) Render(f Frame) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(r.SVG(f)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}

	size := r.Size()
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	r.drawLabels(rgba, f)
	return rgba, nil
}

func (r *ImageRenderer) drawLabels(dst *image.RGBA, f Frame) {
	for i := 0; i < 8; i++ {
		// Files below the board, ranks to the left
		x, _ := r.squareCenter(board.NewSquare(i, 0))
		drawCentered(dst, r.coordFace, r.theme.TextColor, string(rune('A'+i)), x, r.margin+8*r.squareSize+r.margin/2)

		_, y := r.squareCenter(board.NewSquare(0, i))
		drawCentered(dst, r.coordFace, r.theme.TextColor, strconv.Itoa(i+1), r.margin/2, y)
	}

	layerDepth := depths(f.Layers)
	for _, sq := range board.AllSquares() {
		d := layerDepth[sq.Index()]
		if d < 0 {
			continue
		}
		x, y := r.squareCenter(sq)
		drawCentered(dst, r.labelFace, r.theme.Background, strconv.Itoa(d), x, y)
	}
}

// drawCentered draws s with its box centered on (x, y).
func drawCentered(dst *image.RGBA, face font.Face, c color.RGBA, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	metrics := face.Metrics()
	width := d.MeasureString(s).Round()
	baseline := y + (metrics.Ascent.Round()-metrics.Descent.Round())/2
	d.Dot = fixed.P(x-width/2, baseline)
	d.DrawString(s)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
