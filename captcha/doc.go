// Package captcha generates and verifies the interactive arithmetic
// challenge that gates login and registration submits.
//
// A [Challenge] holds one puzzle at a time: a human-readable question and an
// exact-match numeric solution. Wrong answers are counted; reaching the
// attempt budget regenerates the puzzle wholesale. Rendering goes through
// the [Surface] abstraction so hosts can draw onto a real canvas, an
// in-memory image ([ImageSurface]), or nothing at all ([NopSurface]) — the
// visual noise and distortion are purely cosmetic anti-OCR measures with no
// effect on the solution.
package captcha
