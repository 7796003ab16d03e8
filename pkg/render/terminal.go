package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Display is a cell screen that can flush itself, such as *uv.Terminal.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalPresenter shows a framebuffer on a terminal. Each cell is an
// upper half block, so one row of cells covers two framebuffer rows.
type TerminalPresenter struct {
	scr  Display
	cols int
	rows int
}

// NewTerminalPresenter creates a presenter for a cols x rows cell area.
func NewTerminalPresenter(scr Display, cols, rows int) *TerminalPresenter {
	return &TerminalPresenter{scr: scr, cols: cols, rows: rows}
}

// FramebufferSize returns the framebuffer dimensions that fill the area.
func (p *TerminalPresenter) FramebufferSize() (int, int) {
	return p.cols, p.rows * 2
}

// Present draws fb and flushes the screen.
func (p *TerminalPresenter) Present(fb *Framebuffer) error {
	fb.Draw(p.scr, uv.Rectangle(image.Rect(0, 0, p.cols, p.rows)))
	return p.scr.Display()
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := halfBlock(fb.GetPixel(col, topY), fb.GetPixel(col, topY+1))
			scr.SetCell(col, row, &cell)
		}
	}
}

// halfBlock renders two vertically stacked pixels as one ▀ cell.
func halfBlock(top, bottom color.RGBA) uv.Cell {
	return uv.Cell{
		Content: "▀",
		Width:   1,
		Style: uv.Style{
			Fg: rgbaToColor(top),
			Bg: rgbaToColor(bottom),
		},
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorGreen = color.RGBA{0, 255, 128, 255}
	ColorSlate = color.RGBA{30, 30, 40, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
