package captcha

import "image/color"

// Canvas dimensions in logical units, shared with the host UI.
const (
	CanvasWidth  = 300
	CanvasHeight = 120
)

// Point is a position on a [Surface].
type Point struct {
	X, Y float64
}

// TextStyle carries the cosmetic distortion hints applied to the question
// text. Implementations may approximate or ignore them — they have no
// effect on the challenge solution.
type TextStyle struct {
	// Rotation in radians around the text anchor.
	Rotation float64
	// ScaleX/ScaleY stretch factors; zero means 1.
	ScaleX float64
	ScaleY float64
}

// Surface is the minimal 2-D drawing capability the renderer needs. Hosts
// adapt it to whatever they actually paint on.
type Surface interface {
	// Size returns the drawable area in logical units.
	Size() (width, height int)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)
	// FillCircle fills a disc centered at (x, y).
	FillCircle(x, y, r float64, c color.Color)
	// StrokePath draws a polyline through the given points.
	StrokePath(points []Point, c color.Color)
	// Text draws s centered at (x, y).
	Text(s string, x, y float64, c color.Color, style TextStyle)
}

// NopSurface discards every drawing operation. For headless hosts and tests
// where only the question and solution matter.
type NopSurface struct{}

func (NopSurface) Size() (int, int)                                      { return CanvasWidth, CanvasHeight }
func (NopSurface) FillRect(x, y, w, h float64, c color.Color)            {}
func (NopSurface) FillCircle(x, y, r float64, c color.Color)             {}
func (NopSurface) StrokePath(points []Point, c color.Color)              {}
func (NopSurface) Text(s string, x, y float64, c color.Color, st TextStyle) {}
