package captcha

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestChallenge(t *testing.T) *Challenge {
	t.Helper()
	return New(Config{Rand: rand.New(rand.NewSource(42))})
}

func TestNewGeneratesPuzzle(t *testing.T) {
	c := newTestChallenge(t)

	if c.Question() == "" {
		t.Fatal("empty question")
	}
	if c.Solution() == "" {
		t.Fatal("empty solution")
	}
	if c.Solved() {
		t.Fatal("fresh challenge reported solved")
	}
	if got := c.AttemptsLeft(); got != DefaultMaxAttempts {
		t.Fatalf("AttemptsLeft = %d, want %d", got, DefaultMaxAttempts)
	}
}

func TestVerifyCorrectAnswer(t *testing.T) {
	c := newTestChallenge(t)

	ok, err := c.Verify(c.Solution())
	if err != nil || !ok {
		t.Fatalf("Verify(solution) = %v, %v", ok, err)
	}
	if !c.Solved() {
		t.Fatal("not solved after correct answer")
	}
}

func TestVerifyTrimsWhitespace(t *testing.T) {
	c := newTestChallenge(t)

	ok, err := c.Verify("  " + c.Solution() + "\t")
	if err != nil || !ok {
		t.Fatalf("Verify(padded solution) = %v, %v", ok, err)
	}
}

func TestVerifyEmptyAnswerNotCounted(t *testing.T) {
	c := newTestChallenge(t)

	for i := 0; i < 10; i++ {
		ok, err := c.Verify("   ")
		if ok || !errors.Is(err, ErrEmptyAnswer) {
			t.Fatalf("Verify(blank) = %v, %v", ok, err)
		}
	}
	if got := c.AttemptsLeft(); got != DefaultMaxAttempts {
		t.Fatalf("blank answers consumed attempts: left = %d", got)
	}
}

func TestVerifyWrongAnswerConsumesAttempt(t *testing.T) {
	c := newTestChallenge(t)

	ok, err := c.Verify("not a number")
	if ok || err != nil {
		t.Fatalf("Verify(wrong) = %v, %v", ok, err)
	}
	if got := c.AttemptsLeft(); got != DefaultMaxAttempts-1 {
		t.Fatalf("AttemptsLeft = %d, want %d", got, DefaultMaxAttempts-1)
	}
}

func TestVerifyExhaustionRegenerates(t *testing.T) {
	c := newTestChallenge(t)
	oldQuestion := c.Question()
	oldSolution := c.Solution()

	var lastErr error
	for i := 0; i < DefaultMaxAttempts; i++ {
		_, lastErr = c.Verify("wrong-" + oldSolution)
	}
	if !errors.Is(lastErr, ErrExhausted) {
		t.Fatalf("final attempt error = %v, want ErrExhausted", lastErr)
	}
	if got := c.AttemptsLeft(); got != DefaultMaxAttempts {
		t.Fatalf("attempts not reset after regeneration: left = %d", got)
	}

	// The stale solution must not validate against the fresh puzzle unless
	// the draw happened to repeat it.
	if c.Solution() == oldSolution && c.Question() == oldQuestion {
		t.Fatal("puzzle unchanged after exhaustion")
	}
	if c.Solution() != oldSolution {
		ok, _ := c.Verify(oldSolution)
		if ok {
			t.Fatal("stale solution accepted after regeneration")
		}
	}
}

func TestSolvedIsSticky(t *testing.T) {
	c := newTestChallenge(t)

	if ok, _ := c.Verify(c.Solution()); !ok {
		t.Fatal("setup: solve failed")
	}

	// Further calls succeed regardless of input and consume nothing.
	for _, input := range []string{"garbage", "", c.Solution()} {
		ok, err := c.Verify(input)
		if !ok || err != nil {
			t.Fatalf("Verify(%q) on solved = %v, %v", input, ok, err)
		}
	}
	if got := c.AttemptsLeft(); got != DefaultMaxAttempts {
		t.Fatalf("solved verify consumed attempts: left = %d", got)
	}
}

func TestAnswerEditedRevokesSolved(t *testing.T) {
	c := newTestChallenge(t)

	if c.AnswerEdited() {
		t.Fatal("AnswerEdited on unsolved reported revocation")
	}

	if ok, _ := c.Verify(c.Solution()); !ok {
		t.Fatal("setup: solve failed")
	}
	if !c.AnswerEdited() {
		t.Fatal("AnswerEdited after solve did not report revocation")
	}
	if c.Solved() {
		t.Fatal("still solved after edit")
	}

	// Re-verifying the same solution works again.
	if ok, _ := c.Verify(c.Solution()); !ok {
		t.Fatal("re-verify after edit failed")
	}
}

func TestRegenerateClearsState(t *testing.T) {
	c := newTestChallenge(t)

	c.Verify("wrong")
	c.Verify(c.Solution())

	c.Regenerate()
	if c.Solved() {
		t.Fatal("solved after Regenerate")
	}
	if got := c.AttemptsLeft(); got != DefaultMaxAttempts {
		t.Fatalf("AttemptsLeft = %d after Regenerate", got)
	}
}

func TestConfigMaxAttempts(t *testing.T) {
	c := New(Config{MaxAttempts: 1, Rand: rand.New(rand.NewSource(7))})

	_, err := c.Verify("definitely wrong")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted after single wrong answer", err)
	}
}
