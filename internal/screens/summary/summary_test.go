package summary

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizdeck/internal/results"
	"github.com/abhisek/quizdeck/internal/store"
)

// memAttempts is an in-memory AttemptRepo for tests.
type memAttempts struct {
	rows []store.Attempt
}

func (m *memAttempts) Append(_ context.Context, a *store.Attempt) error {
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memAttempts) Recent(_ context.Context, limit int) ([]store.Attempt, error) {
	if limit > len(m.rows) {
		limit = len(m.rows)
	}
	return m.rows[:limit], nil
}

func testPayload() *results.Payload {
	p := &results.Payload{}
	p.LearnerProfile.SkillLevel = results.LevelIntermediate
	p.LearnerProfile.PersonalizedMessage = "Solid fundamentals."
	p.LearnerProfile.Strengths = []results.TopicInsight{
		{Topic: "slices", ProficiencyPercent: 90, Note: "strong"},
	}
	p.LearnerProfile.Weaknesses = []results.TopicInsight{
		{Topic: "goroutines", ProficiencyPercent: 40, Note: "practice", Priority: "high"},
	}
	p.LearnerProfile.EstimatedWeeks = 6
	p.LearnerProfile.NextSteps = []string{"Review concurrency patterns"}
	p.EvaluationResults.OverallScore = 80
	p.EvaluationResults.TotalCorrect = 12
	p.EvaluationResults.TotalQuestions = 15
	p.EvaluationResults.ScoreByDifficulty.Beginner = results.BandScore{Correct: 5, Total: 5}
	p.EvaluationResults.ScoreByDifficulty.Intermediate = results.BandScore{Correct: 4, Total: 6}
	p.EvaluationResults.ScoreByDifficulty.Advanced = results.BandScore{Correct: 3, Total: 4}
	return p
}

func TestResultsLoadedPopulatesRegions(t *testing.T) {
	s := New(nil, nil, Attempt{AssessmentID: 42, Course: "Go Programming"})

	s.Update(resultsLoadedMsg{Payload: testPayload()})

	if s.loading {
		t.Error("loading should be off after results arrive")
	}
	if !s.sectionsOn {
		t.Error("sections should be shown after results arrive")
	}
	if s.badge.Label != "INTERMEDIATE" || s.badge.Icon != "⚡" {
		t.Errorf("unexpected badge: %+v", s.badge)
	}
	if s.message != "Solid fundamentals." {
		t.Errorf("unexpected message: %q", s.message)
	}
	if s.fraction != "12/15 Correct" {
		t.Errorf("unexpected fraction: %q", s.fraction)
	}
	if s.diffScores["intermediate"] != "4/6" {
		t.Errorf("unexpected intermediate score: %q", s.diffScores["intermediate"])
	}
	if s.weeks != 6 {
		t.Errorf("unexpected weeks: %d", s.weeks)
	}
	if len(s.steps) != 1 {
		t.Errorf("expected 1 next step, got %d", len(s.steps))
	}
}

func TestAnimationReachesScore(t *testing.T) {
	s := New(nil, nil, Attempt{AssessmentID: 42})
	s.Update(resultsLoadedMsg{Payload: testPayload()})

	if s.anim == nil {
		t.Fatal("animation should start after results load")
	}

	prev := s.scoreValue
	for i := 0; i < 500 && !s.anim.Done(); i++ {
		s.Update(animTickMsg(time.Now()))
		if s.scoreValue < prev {
			t.Fatalf("score regressed from %v to %v", prev, s.scoreValue)
		}
		prev = s.scoreValue
	}

	if !s.anim.Done() {
		t.Fatal("animation did not finish")
	}
	if s.scoreValue != 80 {
		t.Errorf("expected final score 80, got %v", s.scoreValue)
	}
}

func TestLoadErrorShown(t *testing.T) {
	s := New(nil, nil, Attempt{AssessmentID: 42})
	s.Update(resultsLoadedMsg{Err: context.DeadlineExceeded})

	view := s.View(80, 24)
	if !strings.Contains(view, "Error:") {
		t.Errorf("expected error in view, got %q", view)
	}
}

func TestSaveAttemptRecordsHistory(t *testing.T) {
	repo := &memAttempts{}
	s := New(nil, repo, Attempt{AssessmentID: 42, Course: "Go Programming", DurationSecs: 180})

	p := testPayload()
	cmd := s.saveAttempt(p.EvaluationResults)
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg := cmd()
	if saved, ok := msg.(attemptSavedMsg); !ok || saved.Err != nil {
		t.Fatalf("unexpected save result: %#v", msg)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(repo.rows))
	}
	got := repo.rows[0]
	if got.AssessmentID != 42 || got.Course != "Go Programming" {
		t.Errorf("unexpected attempt: %+v", got)
	}
	if got.Score != 80 || got.TotalCorrect != 12 || got.TotalQuestions != 15 {
		t.Errorf("unexpected attempt scores: %+v", got)
	}
	if got.DurationSecs != 180 {
		t.Errorf("unexpected duration: %d", got.DurationSecs)
	}
	if got.ID == "" {
		t.Error("attempt id should be set")
	}
}
