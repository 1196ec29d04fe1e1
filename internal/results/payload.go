package results

// Skill levels reported by the evaluator.
const (
	LevelAbsoluteBeginner = "absolute_beginner"
	LevelBeginner         = "beginner"
	LevelIntermediate     = "intermediate"
	LevelAdvanced         = "advanced"
)

// Payload is the assessment result document returned by the backend.
// It is read-only once received.
type Payload struct {
	AssessmentID      int               `json:"assessment_id"`
	LearnerProfile    LearnerProfile    `json:"learner_profile"`
	EvaluationResults EvaluationResults `json:"evaluation_results"`
}

// LearnerProfile is the evaluator's qualitative read on the learner.
type LearnerProfile struct {
	SkillLevel          string         `json:"skill_level"`
	PersonalizedMessage string         `json:"personalized_message"`
	Strengths           []TopicInsight `json:"strengths"`
	Weaknesses          []TopicInsight `json:"weaknesses"`
	EstimatedWeeks      int            `json:"estimated_weeks_to_proficiency"`
	NextSteps           []string       `json:"next_steps,omitempty"`
}

// TopicInsight is one strengths/weaknesses entry. Priority is set only
// on weaknesses.
type TopicInsight struct {
	Topic              string  `json:"topic"`
	ProficiencyPercent float64 `json:"proficiency_percent"`
	Note               string  `json:"note"`
	Priority           string  `json:"priority,omitempty"`
}

// EvaluationResults carries the quantitative scores.
type EvaluationResults struct {
	OverallScore      float64           `json:"overall_score"`
	TotalCorrect      int               `json:"total_correct"`
	TotalQuestions    int               `json:"total_questions"`
	ScoreByDifficulty ScoreByDifficulty `json:"score_by_difficulty"`
}

// ScoreByDifficulty breaks the score into the three fixed difficulty
// bands.
type ScoreByDifficulty struct {
	Beginner     BandScore `json:"beginner"`
	Intermediate BandScore `json:"intermediate"`
	Advanced     BandScore `json:"advanced"`
}

// BandScore is correct/total for one band.
type BandScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Bands lists the difficulty bands in display order.
var Bands = []string{"beginner", "intermediate", "advanced"}

// Band returns the score for a named band. Unknown names return a zero
// score.
func (s ScoreByDifficulty) Band(name string) BandScore {
	switch name {
	case "beginner":
		return s.Beginner
	case "intermediate":
		return s.Intermediate
	case "advanced":
		return s.Advanced
	}
	return BandScore{}
}
