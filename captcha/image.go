package captcha

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSurface renders drawing primitives onto an in-memory RGBA image.
// Text uses a fixed bitmap face; rotation and scale hints are approximated
// as per-glyph shear since bitmap glyphs cannot rotate. All of this is
// cosmetic — the puzzle text stays legible either way.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface allocates a white canvas of the standard challenge size.
func NewImageSurface() *ImageSurface {
	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return &ImageSurface{img: img}
}

// Image exposes the backing image for encoding or display.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) FillRect(x, y, w, h float64, c color.Color) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.blend(px, py, c)
		}
	}
}

func (s *ImageSurface) FillCircle(x, y, r float64, c color.Color) {
	x0, y0 := int(math.Floor(x-r)), int(math.Floor(y-r))
	x1, y1 := int(math.Ceil(x+r)), int(math.Ceil(y+r))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx, dy := float64(px)+0.5-x, float64(py)+0.5-y
			if dx*dx+dy*dy <= r*r {
				s.blend(px, py, c)
			}
		}
	}
}

func (s *ImageSurface) StrokePath(points []Point, c color.Color) {
	for i := 1; i < len(points); i++ {
		s.line(points[i-1], points[i], c)
	}
}

func (s *ImageSurface) Text(text string, x, y float64, c color.Color, style TextStyle) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	sx, sy := style.ScaleX, style.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	shear := math.Tan(style.Rotation) * sy

	width := float64(d.MeasureString(text).Round()) * sx
	pen := x - width/2
	baseline := y + float64(face.Metrics().Ascent.Round())/2

	for _, r := range text {
		dy := (pen - x) * shear
		d.Dot = fixed.P(int(math.Round(pen)), int(math.Round(baseline+dy)))
		d.DrawString(string(r))

		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv = fixed.I(face.Advance)
		}
		pen += float64(adv.Round()) * sx
	}
}

// line draws a one-pixel segment by uniform stepping. Good enough for
// interference cosmetics.
func (s *ImageSurface) line(a, b Point, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		s.blend(int(a.X), int(a.Y), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.blend(int(math.Round(a.X+dx*t)), int(math.Round(a.Y+dy*t)), c)
	}
}

// blend composes c over the existing pixel using source-over alpha.
func (s *ImageSurface) blend(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(s.img.Bounds())) {
		return
	}

	sr, sg, sb, sa := c.RGBA()
	if sa == 0 {
		return
	}
	if sa == 0xFFFF {
		s.img.Set(x, y, c)
		return
	}

	dr, dg, db, da := s.img.At(x, y).RGBA()
	inv := 0xFFFF - sa
	s.img.Set(x, y, color.RGBA64{
		R: uint16(sr + dr*inv/0xFFFF),
		G: uint16(sg + dg*inv/0xFFFF),
		B: uint16(sb + db*inv/0xFFFF),
		A: uint16(sa + da*inv/0xFFFF),
	})
}
