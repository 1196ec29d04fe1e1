package quiz

import "time"

// Question is one quiz question as served by the assessment API. The
// list is immutable for the duration of a run.
type Question struct {
	ID          string
	Number      int
	Difficulty  string
	Topic       string
	Text        string
	CodeSnippet string
	Options     []string
}

// AnswerRecord stores the chosen answer and time spent for one question.
type AnswerRecord struct {
	Answer    string
	TimeSpent time.Duration
}

// Clock supplies the current time. Tests substitute a fake to advance
// virtual time deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Runner tracks progress through an ordered question list, recording
// one answer plus time-spent per question.
type Runner struct {
	questions  []Question
	index      int
	answers    map[string]AnswerRecord
	viewStarts map[string]time.Time
	start      time.Time
	clock      Clock
}

// NewRunner creates a Runner over questions. A nil clock uses real time.
func NewRunner(questions []Question, clock Clock) *Runner {
	if clock == nil {
		clock = systemClock{}
	}
	return &Runner{
		questions:  questions,
		answers:    make(map[string]AnswerRecord),
		viewStarts: make(map[string]time.Time),
		start:      clock.Now(),
		clock:      clock,
	}
}

// CurrentQuestion returns the question at the current position, or nil
// for an empty quiz.
func (r *Runner) CurrentQuestion() *Question {
	if len(r.questions) == 0 {
		return nil
	}
	return &r.questions[r.index]
}

// CurrentIndex returns the zero-based position.
func (r *Runner) CurrentIndex() int {
	return r.index
}

// TotalQuestions returns the number of questions in the run.
func (r *Runner) TotalQuestions() int {
	return len(r.questions)
}

// Advance moves to the next question. Returns false at the end.
func (r *Runner) Advance() bool {
	if r.index >= len(r.questions)-1 {
		return false
	}
	r.index++
	return true
}

// Retreat moves to the previous question. Returns false at the start.
func (r *Runner) Retreat() bool {
	if r.index <= 0 {
		return false
	}
	r.index--
	return true
}

// MarkViewed stamps the first-view time for a question if not already
// stamped. The quiz screen calls this when a question is displayed so
// time-spent measures viewing, not just answering.
func (r *Runner) MarkViewed(questionID string) {
	if _, ok := r.viewStarts[questionID]; !ok {
		r.viewStarts[questionID] = r.clock.Now()
	}
}

// RecordAnswer stores the chosen answer for a question along with the
// elapsed time since its first view. Repeated calls overwrite the
// answer but keep the original view-start, so time-spent keeps growing.
func (r *Runner) RecordAnswer(questionID, answer string) {
	r.MarkViewed(questionID)
	r.answers[questionID] = AnswerRecord{
		Answer:    answer,
		TimeSpent: r.clock.Now().Sub(r.viewStarts[questionID]),
	}
}

// AnswerFor returns the recorded answer for a question, or "" if none.
func (r *Runner) AnswerFor(questionID string) string {
	return r.answers[questionID].Answer
}

// HasAnswered reports whether a question has a recorded answer.
func (r *Runner) HasAnswered(questionID string) bool {
	_, ok := r.answers[questionID]
	return ok
}

// ProgressPercent returns (position+1)/total as a percentage.
func (r *Runner) ProgressPercent() float64 {
	if len(r.questions) == 0 {
		return 0
	}
	return float64(r.index+1) / float64(len(r.questions)) * 100
}

// UnansweredCount returns the number of questions with no recorded
// answer.
func (r *Runner) UnansweredCount() int {
	count := 0
	for _, q := range r.questions {
		if !r.HasAnswered(q.ID) {
			count++
		}
	}
	return count
}

// ExportAnswers returns a snapshot of the recorded answers keyed by
// question identifier, suitable for submission.
func (r *Runner) ExportAnswers() map[string]AnswerRecord {
	out := make(map[string]AnswerRecord, len(r.answers))
	for id, rec := range r.answers {
		out[id] = rec
	}
	return out
}

// ElapsedSeconds returns whole seconds since the run started.
func (r *Runner) ElapsedSeconds() int {
	return int(r.clock.Now().Sub(r.start).Seconds())
}
