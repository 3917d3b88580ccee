package captcha

import (
	"fmt"
	"math/rand"
)

// problem is one generated puzzle: the displayed question and its numeric
// answer.
type problem struct {
	question string
	answer   int
}

// newProblem selects uniformly among the four puzzle kinds.
func newProblem(rng *rand.Rand) problem {
	switch rng.Intn(4) {
	case 0:
		return arithmeticProblem(rng)
	case 1:
		return sequenceProblem(rng)
	case 2:
		return evenSequenceProblem()
	default:
		return parenthesizedProblem(rng)
	}
}

// arithmeticProblem poses a binary +, − or × fact. Subtraction is always
// larger-minus-smaller so the answer is non-negative; multiplication uses
// single-digit operands.
func arithmeticProblem(rng *rand.Rand) problem {
	a := rng.Intn(20) + 1
	b := rng.Intn(20) + 1

	switch rng.Intn(3) {
	case 0:
		return problem{fmt.Sprintf("%d + %d = ?", a, b), a + b}
	case 1:
		hi, lo := a, b
		if lo > hi {
			hi, lo = lo, hi
		}
		return problem{fmt.Sprintf("%d - %d = ?", hi, lo), hi - lo}
	default:
		a = rng.Intn(9) + 1
		b = rng.Intn(9) + 1
		return problem{fmt.Sprintf("%d × %d = ?", a, b), a * b}
	}
}

// sequenceProblem shows three terms of an arithmetic progression and asks
// for the fourth.
func sequenceProblem(rng *rand.Rand) problem {
	start := rng.Intn(10) + 1
	step := rng.Intn(3) + 2

	return problem{
		question: fmt.Sprintf("%d, %d, %d, ?", start, start+step, start+2*step),
		answer:   start + 3*step,
	}
}

// evenSequenceProblem poses the fixed even-number prefix. The prefix never
// varies; only the framing as a puzzle matters.
func evenSequenceProblem() problem {
	return problem{"2, 4, 6, ?", 8}
}

// parenthesizedProblem poses (x+y)×z over small operands.
func parenthesizedProblem(rng *rand.Rand) problem {
	x := rng.Intn(5) + 1
	y := rng.Intn(5) + 1
	z := rng.Intn(3) + 2

	return problem{
		question: fmt.Sprintf("(%d + %d) × %d = ?", x, y, z),
		answer:   (x + y) * z,
	}
}
