package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/knightroutes/internal/render"
	"github.com/hailam/knightroutes/internal/search"
	"github.com/hailam/knightroutes/internal/ui/browse"
)

// CaptionHeight is the height of the text line below the board.
const CaptionHeight = 28

const helpLine = "Left/Right route  Up/Down layers  Space explored  Esc quit"

// Viewer implements ebiten.Game for one solved request.
type Viewer struct {
	browser  *browse.Browser
	renderer *render.ImageRenderer
	theme    *render.Theme
	input    *InputHandler
	knight   *Sprite

	board *ebiten.Image
	dirty bool
}

// NewViewer creates a viewer for res with squares of the given pixel size.
func NewViewer(res *search.Result, squareSize int, sep string) (*Viewer, error) {
	theme := render.DefaultTheme()
	renderer, err := render.NewImageRenderer(squareSize, theme)
	if err != nil {
		return nil, err
	}

	return &Viewer{
		browser:  browse.New(res, sep),
		renderer: renderer,
		theme:    theme,
		input:    NewInputHandler(),
		knight:   NewKnightSprite(squareSize),
		dirty:    true,
	}, nil
}

// ScreenSize returns the window size the viewer needs.
func (v *Viewer) ScreenSize() (int, int) {
	size := v.renderer.Size()
	return size, size + 2*CaptionHeight
}

// Update applies this frame's input and re-renders the board when the view changed.
func (v *Viewer) Update() error {
	v.input.Update()

	for _, action := range v.input.Actions() {
		var changed bool
		switch action {
		case ActionQuit:
			return ebiten.Termination
		case ActionNextRoute:
			changed = v.browser.NextRoute()
		case ActionPrevRoute:
			changed = v.browser.PrevRoute()
		case ActionShowMore:
			changed = v.browser.ShowMore()
		case ActionShowLess:
			changed = v.browser.ShowLess()
		case ActionToggleExplored:
			changed = v.browser.ToggleExplored()
		}
		v.dirty = v.dirty || changed
	}

	if !v.dirty {
		return nil
	}
	img, err := v.renderer.Render(v.browser.Frame())
	if err != nil {
		return err
	}
	if v.board != nil {
		v.board.Deallocate()
	}
	v.board = ebiten.NewImageFromImage(img)
	v.dirty = false
	return nil
}

// Draw draws the board, the knight at the end of the traced route and the captions.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.theme.Background)

	if v.board != nil {
		screen.DrawImage(v.board, &ebiten.DrawImageOptions{})
	}

	if route := v.browser.Frame().Route; len(route) > 0 {
		r := v.renderer.SquareBounds(route[len(route)-1])
		v.knight.DrawAt(screen, r.Min.X, r.Min.Y)
	}

	size := float64(v.renderer.Size())
	drawText(screen, v.browser.Caption(), boldFace, 8, size+6, v.theme.TextColor)
	drawText(screen, helpLine, regularFace, 8, size+CaptionHeight+6, v.theme.TextColor)
}

// Layout returns the fixed logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.ScreenSize()
}
