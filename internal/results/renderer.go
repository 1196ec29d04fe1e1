package results

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// DefaultAnimationDuration is how long the score animation runs when
// Render drives it.
const DefaultAnimationDuration = 2 * time.Second

// SkillBadge is the rendered form of a skill level.
type SkillBadge struct {
	Icon  string
	Label string
	Level string
}

// InsightEntry is one rendered strengths/weaknesses row.
type InsightEntry struct {
	Topic    string
	Percent  float64
	Note     string
	Priority string
}

// Sinks names the output regions the renderer writes to. Each handle
// is optional; a nil sink skips that region, never fails.
type Sinks struct {
	HideLoading     func()
	ShowSections    func()
	ScoreText       func(text string)
	GaugeOffset     func(offset float64)
	ScoreFraction   func(text string)
	SkillBadge      func(badge SkillBadge)
	PersonalMessage func(text string)
	DifficultyScore func(band, text string)
	DifficultyBar   func(band string, percent float64)
	Strengths       func(entries []InsightEntry)
	Weaknesses      func(entries []InsightEntry)
	EstimatedWeeks  func(weeks int)
	NextSteps       func(steps []string)
}

// TickSource schedules the recurring animation callback.
type TickSource interface {
	Every(interval time.Duration, fn func()) (stop func())
}

type realTicks struct{}

func (realTicks) Every(interval time.Duration, fn func()) func() {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		t.Stop()
		close(done)
	}
}

// Renderer paints an immutable results payload into a set of named
// sinks. It holds no other state; sub-renders may run in any order,
// and Render orchestrates the full page sequence.
type Renderer struct {
	payload *Payload
	sinks   Sinks
	ticks   TickSource
}

// NewRenderer creates a Renderer over payload. A nil tick source uses
// real 20ms ticks for the score animation.
func NewRenderer(payload *Payload, sinks Sinks, ticks TickSource) *Renderer {
	if ticks == nil {
		ticks = realTicks{}
	}
	return &Renderer{payload: payload, sinks: sinks, ticks: ticks}
}

// skillIcons maps known skill levels to their badge icon.
var skillIcons = map[string]string{
	LevelAbsoluteBeginner: "🌱",
	LevelBeginner:         "🎓",
	LevelIntermediate:     "⚡",
	LevelAdvanced:         "🚀",
}

// fallbackIcon is used for skill levels the client does not know.
const fallbackIcon = "🎯"

// BadgeFor maps a skill level to its display badge: a known icon or
// the fallback, and a label with underscores as spaces, upper-cased.
func BadgeFor(level string) SkillBadge {
	icon, ok := skillIcons[level]
	if !ok {
		icon = fallbackIcon
	}
	return SkillBadge{
		Icon:  icon,
		Label: strings.ToUpper(strings.ReplaceAll(level, "_", " ")),
		Level: level,
	}
}

// RenderSkillBadge writes the skill badge region.
func (r *Renderer) RenderSkillBadge() {
	if r.sinks.SkillBadge == nil {
		return
	}
	r.sinks.SkillBadge(BadgeFor(r.payload.LearnerProfile.SkillLevel))
}

// RenderPersonalMessage writes the personalized message region.
func (r *Renderer) RenderPersonalMessage() {
	if r.sinks.PersonalMessage == nil {
		return
	}
	r.sinks.PersonalMessage(r.payload.LearnerProfile.PersonalizedMessage)
}

// RenderDifficultyBreakdown writes the per-band score text and bar for
// the three fixed bands. A band with total 0 renders "—" and an empty
// bar instead of a non-finite percentage.
func (r *Renderer) RenderDifficultyBreakdown() {
	for _, band := range Bands {
		score := r.payload.EvaluationResults.ScoreByDifficulty.Band(band)

		text := "—"
		percent := 0.0
		if score.Total > 0 {
			text = fmt.Sprintf("%d/%d", score.Correct, score.Total)
			percent = float64(score.Correct) / float64(score.Total) * 100
		}

		if r.sinks.DifficultyScore != nil {
			r.sinks.DifficultyScore(band, text)
		}
		if r.sinks.DifficultyBar != nil {
			r.sinks.DifficultyBar(band, percent)
		}
	}
}

// RenderStrengths writes the strengths list region.
func (r *Renderer) RenderStrengths() {
	if r.sinks.Strengths == nil {
		return
	}
	r.sinks.Strengths(insightEntries(r.payload.LearnerProfile.Strengths))
}

// RenderWeaknesses writes the weaknesses list region, including the
// per-entry priority.
func (r *Renderer) RenderWeaknesses() {
	if r.sinks.Weaknesses == nil {
		return
	}
	r.sinks.Weaknesses(insightEntries(r.payload.LearnerProfile.Weaknesses))
}

// RenderStats writes the estimated-weeks and next-steps regions.
func (r *Renderer) RenderStats() {
	if r.sinks.EstimatedWeeks != nil {
		r.sinks.EstimatedWeeks(r.payload.LearnerProfile.EstimatedWeeks)
	}
	if r.sinks.NextSteps != nil && len(r.payload.LearnerProfile.NextSteps) > 0 {
		r.sinks.NextSteps(r.payload.LearnerProfile.NextSteps)
	}
}

// AnimateScore runs the score animation to completion, feeding each
// intermediate value to the score text and gauge offset sinks. It
// returns once the target is reached.
func (r *Renderer) AnimateScore(target float64, duration time.Duration) {
	anim := NewScoreAnimation(target, duration)
	if anim.Done() {
		r.emitScore(anim.Value())
		return
	}

	done := make(chan struct{})
	var once sync.Once
	stop := r.ticks.Every(StepInterval, func() {
		r.emitScore(anim.Step())
		if anim.Done() {
			once.Do(func() { close(done) })
		}
	})
	<-done
	stop()
}

func (r *Renderer) emitScore(value float64) {
	if r.sinks.ScoreText != nil {
		r.sinks.ScoreText(fmt.Sprintf("%d%%", int(math.Round(value))))
	}
	if r.sinks.GaugeOffset != nil {
		r.sinks.GaugeOffset(GaugeOffset(value))
	}
}

// Render paints the full results page: hide the loading indicator,
// reveal the result sections, run every sub-render, write the raw
// correct/total fraction, then animate the score to completion.
func (r *Renderer) Render() {
	if r.sinks.HideLoading != nil {
		r.sinks.HideLoading()
	}
	if r.sinks.ShowSections != nil {
		r.sinks.ShowSections()
	}

	r.RenderSkillBadge()
	r.RenderPersonalMessage()
	r.RenderDifficultyBreakdown()
	r.RenderStrengths()
	r.RenderWeaknesses()
	r.RenderStats()

	if r.sinks.ScoreFraction != nil {
		eval := r.payload.EvaluationResults
		r.sinks.ScoreFraction(fmt.Sprintf("%d/%d Correct", eval.TotalCorrect, eval.TotalQuestions))
	}

	r.AnimateScore(r.payload.EvaluationResults.OverallScore, DefaultAnimationDuration)
}

func insightEntries(insights []TopicInsight) []InsightEntry {
	entries := make([]InsightEntry, 0, len(insights))
	for _, in := range insights {
		entries = append(entries, InsightEntry{
			Topic:    in.Topic,
			Percent:  in.ProficiencyPercent,
			Note:     in.Note,
			Priority: in.Priority,
		})
	}
	return entries
}
