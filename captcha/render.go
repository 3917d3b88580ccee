package captcha

import (
	"image/color"
	"math"
	"math/rand"
)

// textPalette holds the candidate colors for the question text.
var textPalette = []color.Color{
	color.NRGBA{0xFF, 0x6B, 0x6B, 0xFF},
	color.NRGBA{0x4E, 0xCD, 0xC4, 0xFF},
	color.NRGBA{0x45, 0xB7, 0xD1, 0xFF},
	color.NRGBA{0x96, 0xCE, 0xB4, 0xFF},
	color.NRGBA{0xFF, 0xEA, 0xA7, 0xFF},
	color.NRGBA{0xDD, 0xA0, 0xDD, 0xFF},
}

const (
	noisePixels      = 500
	interferenceStep = 10
	waveAmplitude    = 5
	waveFrequency    = 0.02
	dotCount         = 30
)

// render draws the question onto the surface with background noise, color
// and distortion jitter, wavy interference lines, and random dots.
func render(s Surface, rng *rand.Rand, question string) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)

	drawBackground(s, rng, fw, fh)
	drawQuestion(s, rng, question, fw, fh)
	drawInterference(s, rng, fw, fh)
	drawDots(s, rng, fw, fh)
}

func drawBackground(s Surface, rng *rand.Rand, fw, fh float64) {
	// Three grey bands approximate the original gradient.
	bands := []color.Color{
		color.NRGBA{0xF0, 0xF0, 0xF0, 0xFF},
		color.NRGBA{0xE0, 0xE0, 0xE0, 0xFF},
		color.NRGBA{0xD0, 0xD0, 0xD0, 0xFF},
	}
	bandHeight := fh / float64(len(bands))
	for i, c := range bands {
		s.FillRect(0, float64(i)*bandHeight, fw, bandHeight, c)
	}

	for i := 0; i < noisePixels; i++ {
		s.FillRect(rng.Float64()*fw, rng.Float64()*fh, 1, 1, randomColor(rng, 26))
	}
}

func drawQuestion(s Surface, rng *rand.Rand, question string, fw, fh float64) {
	cx, cy := fw/2, fh/2

	// Drop shadow, offset and undistorted.
	s.Text(question, cx+2, cy+2, color.NRGBA{0, 0, 0, 77}, TextStyle{})

	style := TextStyle{
		Rotation: (rng.Float64() - 0.5) * 0.2,
		ScaleX:   1 + (rng.Float64()-0.5)*0.1,
		ScaleY:   1 + (rng.Float64()-0.5)*0.1,
	}
	s.Text(question, cx, cy, textPalette[rng.Intn(len(textPalette))], style)
}

func drawInterference(s Surface, rng *rand.Rand, fw, fh float64) {
	lineColor := color.NRGBA{0, 0, 0, 51}

	// Two horizontal wavy lines.
	for i := 0; i < 2; i++ {
		y := rng.Float64() * fh
		var points []Point
		for x := 0.0; x <= fw; x += interferenceStep {
			points = append(points, Point{X: x, Y: y + math.Sin(x*waveFrequency)*waveAmplitude})
		}
		s.StrokePath(points, lineColor)
	}

	// One vertical wavy line.
	x := rng.Float64() * fw
	var points []Point
	for y := 0.0; y <= fh; y += interferenceStep {
		points = append(points, Point{X: x + math.Cos(y*waveFrequency)*waveAmplitude, Y: y})
	}
	s.StrokePath(points, lineColor)
}

func drawDots(s Surface, rng *rand.Rand, fw, fh float64) {
	for i := 0; i < dotCount; i++ {
		s.FillCircle(rng.Float64()*fw, rng.Float64()*fh, rng.Float64()*2+1, randomColor(rng, 77))
	}
}

func randomColor(rng *rand.Rand, alpha uint8) color.Color {
	return color.NRGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: alpha,
	}
}
