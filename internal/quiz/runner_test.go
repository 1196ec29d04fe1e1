package quiz

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:      string(rune('a' + i)),
			Number:  i + 1,
			Text:    "question",
			Options: []string{"x", "y", "z", "w"},
		}
	}
	return qs
}

func newTestRunner(n int) (*Runner, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	return NewRunner(testQuestions(n), clock), clock
}

func TestRecordAnswer_TracksTimeSpent(t *testing.T) {
	r, clock := newTestRunner(3)

	r.MarkViewed("a")
	clock.advance(4 * time.Second)
	r.RecordAnswer("a", "x")

	rec := r.ExportAnswers()["a"]
	if rec.Answer != "x" {
		t.Errorf("Answer = %q, want %q", rec.Answer, "x")
	}
	if rec.TimeSpent != 4*time.Second {
		t.Errorf("TimeSpent = %v, want 4s", rec.TimeSpent)
	}
}

func TestRecordAnswer_PreservesViewStart(t *testing.T) {
	r, clock := newTestRunner(3)

	r.RecordAnswer("a", "x")
	first := r.ExportAnswers()["a"].TimeSpent

	clock.advance(3 * time.Second)
	r.RecordAnswer("a", "y")
	second := r.ExportAnswers()["a"].TimeSpent

	if second <= first {
		t.Errorf("second TimeSpent %v not greater than first %v", second, first)
	}
	if r.AnswerFor("a") != "y" {
		t.Errorf("AnswerFor = %q, want overwritten answer %q", r.AnswerFor("a"), "y")
	}
}

func TestUnansweredCount(t *testing.T) {
	r, _ := newTestRunner(5)

	if got := r.UnansweredCount(); got != 5 {
		t.Errorf("UnansweredCount = %d, want 5", got)
	}

	r.RecordAnswer("a", "x")
	r.RecordAnswer("c", "y")
	r.RecordAnswer("c", "z") // repeat does not change the count

	if got := r.UnansweredCount(); got != 3 {
		t.Errorf("UnansweredCount = %d, want 3", got)
	}
}

func TestProgressPercent(t *testing.T) {
	r, _ := newTestRunner(10)

	if got := r.ProgressPercent(); got != 10 {
		t.Errorf("ProgressPercent at 0 = %v, want 10", got)
	}

	for r.Advance() {
	}

	if got := r.ProgressPercent(); got != 100 {
		t.Errorf("ProgressPercent at end = %v, want 100", got)
	}
}

func TestAdvanceRetreat_Bounds(t *testing.T) {
	r, _ := newTestRunner(2)

	if r.Retreat() {
		t.Error("expected Retreat to fail at position 0")
	}
	if !r.Advance() {
		t.Error("expected Advance to succeed")
	}
	if r.Advance() {
		t.Error("expected Advance to fail at last question")
	}
	if r.CurrentQuestion().ID != "b" {
		t.Errorf("CurrentQuestion.ID = %q, want %q", r.CurrentQuestion().ID, "b")
	}
}

func TestElapsedSeconds(t *testing.T) {
	r, clock := newTestRunner(1)

	clock.advance(90*time.Second + 400*time.Millisecond)

	if got := r.ElapsedSeconds(); got != 90 {
		t.Errorf("ElapsedSeconds = %d, want 90 (whole seconds)", got)
	}
}

func TestExportAnswers_Snapshot(t *testing.T) {
	r, _ := newTestRunner(2)
	r.RecordAnswer("a", "x")

	snap := r.ExportAnswers()
	snap["a"] = AnswerRecord{Answer: "mutated"}

	if r.AnswerFor("a") != "x" {
		t.Error("mutating the exported snapshot changed runner state")
	}
}

func TestEmptyQuiz(t *testing.T) {
	r := NewRunner(nil, &fakeClock{})

	if r.CurrentQuestion() != nil {
		t.Error("expected nil CurrentQuestion for empty quiz")
	}
	if got := r.ProgressPercent(); got != 0 {
		t.Errorf("ProgressPercent = %v, want 0", got)
	}
}
