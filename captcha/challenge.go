package captcha

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxAttempts is the wrong-answer budget before the puzzle
// regenerates itself.
const DefaultMaxAttempts = 3

var (
	// ErrEmptyAnswer is returned for blank input; it does not consume an
	// attempt.
	ErrEmptyAnswer = errors.New("captcha answer empty")
	// ErrExhausted is returned when the wrong-answer budget is spent. The
	// challenge has already regenerated by the time the caller sees it.
	ErrExhausted = errors.New("captcha attempts exhausted")
)

// Config tunes a [Challenge].
type Config struct {
	// MaxAttempts is the wrong-answer budget. Defaults to 3.
	MaxAttempts int
	// Rand supplies puzzle randomness. Defaults to a time-seeded source.
	// Puzzle selection is a usability concern, not a security boundary, so
	// deterministic seeding in tests is fine.
	Rand *rand.Rand
	// Surface receives the rendered puzzle. Defaults to [NopSurface].
	Surface Surface
}

// Challenge is one interactive puzzle instance with bounded verification
// attempts.
//
// State machine: Unsolved → (attempt) → Unsolved|Solved. Reaching the
// attempt budget while unsolved regenerates a fresh puzzle. Solved is
// terminal until the answer field is edited, which revokes it.
//
// A Challenge is bound to one form instance and is not safe for concurrent
// use.
type Challenge struct {
	maxAttempts int
	rng         *rand.Rand
	surface     Surface

	question string
	solution string
	attempts int
	solved   bool
}

// New builds a Challenge and generates its first puzzle.
func New(cfg Config) *Challenge {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Surface == nil {
		cfg.Surface = NopSurface{}
	}

	c := &Challenge{
		maxAttempts: cfg.MaxAttempts,
		rng:         cfg.Rand,
		surface:     cfg.Surface,
	}
	c.Regenerate()
	return c
}

// Regenerate replaces the puzzle wholesale: new question, new solution,
// attempt counter and solved flag cleared, surface redrawn. There is no
// history — the previous solution stops validating immediately.
func (c *Challenge) Regenerate() {
	p := newProblem(c.rng)
	c.question = p.question
	c.solution = strconv.Itoa(p.answer)
	c.attempts = 0
	c.solved = false

	render(c.surface, c.rng, c.question)
}

// Question returns the displayed puzzle text.
func (c *Challenge) Question() string {
	return c.question
}

// Solution returns the exact-match answer string.
func (c *Challenge) Solution() string {
	return c.solution
}

// Solved reports whether the current puzzle has been answered correctly.
func (c *Challenge) Solved() bool {
	return c.solved
}

// AttemptsLeft returns how many wrong answers remain before regeneration.
func (c *Challenge) AttemptsLeft() int {
	return c.maxAttempts - c.attempts
}

// Verify checks input against the solution (trimmed, exact string match).
//
// Blank input returns ErrEmptyAnswer without consuming an attempt. A wrong
// non-empty answer consumes one; spending the budget regenerates the puzzle
// and returns ErrExhausted. A solved challenge stays solved: further calls
// return true until the answer is edited (see [Challenge.AnswerEdited]).
func (c *Challenge) Verify(input string) (bool, error) {
	if c.solved {
		return true, nil
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false, ErrEmptyAnswer
	}

	if trimmed == c.solution {
		c.solved = true
		return true, nil
	}

	c.attempts++
	if c.attempts >= c.maxAttempts {
		c.Regenerate()
		return false, ErrExhausted
	}
	return false, nil
}

// AnswerEdited tells the challenge the answer field changed. Editing while
// solved revokes the verification; the return value reports whether that
// happened so the caller can withdraw its submit-eligibility signal.
func (c *Challenge) AnswerEdited() bool {
	if !c.solved {
		return false
	}
	c.solved = false
	return true
}
