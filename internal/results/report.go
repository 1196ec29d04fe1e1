package results

import (
	"fmt"
	"html/template"
	"io"
)

// reportTemplate renders the payload as a standalone shareable page.
// html/template escapes every interpolated value (&, <, >, quotes), so
// backend-supplied free text cannot inject markup.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Assessment Results</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; color: #1e293b; }
.badge { font-size: 1.2rem; font-weight: bold; }
.score { font-size: 3rem; font-weight: bold; }
.bar { background: #e2e8f0; border-radius: 4px; height: 8px; }
.bar > div { background: #14b8a6; border-radius: 4px; height: 8px; }
.bar > div.warning { background: #f97316; }
.note { color: #64748b; margin: 0.25rem 0 1rem; }
.priority { text-transform: uppercase; font-size: 0.75rem; color: #f43f5e; }
</style>
</head>
<body>
<h1>Assessment Results</h1>
<p class="badge">{{.Badge.Icon}} {{.Badge.Label}}</p>
<p class="score">{{.ScoreText}}</p>
<p>{{.Fraction}}</p>
<p>{{.Profile.PersonalizedMessage}}</p>

<h2>Performance by Difficulty</h2>
{{range .BandRows}}
<h3>{{.Name}} — {{.Text}}</h3>
<div class="bar"><div style="width: {{printf "%.0f" .Percent}}%"></div></div>
{{end}}

<h2>Strengths</h2>
{{range .Strengths}}
<h3>{{.Topic}} — {{printf "%.0f" .Percent}}%</h3>
<div class="bar"><div style="width: {{printf "%.0f" .Percent}}%"></div></div>
<p class="note">{{.Note}}</p>
{{end}}

<h2>Areas to Improve</h2>
{{range .Weaknesses}}
<h3>{{.Topic}} — {{printf "%.0f" .Percent}}% <span class="priority">{{.Priority}} priority</span></h3>
<div class="bar"><div class="warning" style="width: {{printf "%.0f" .Percent}}%"></div></div>
<p class="note">{{.Note}}</p>
{{end}}

<h2>Next Steps</h2>
<p>Estimated weeks to proficiency: {{.Profile.EstimatedWeeks}}</p>
{{if .Profile.NextSteps}}
<ul>
{{range .Profile.NextSteps}}<li>{{.}}</li>
{{end}}</ul>
{{end}}
</body>
</html>
`))

type bandRow struct {
	Name    string
	Text    string
	Percent float64
}

type reportData struct {
	Badge      SkillBadge
	ScoreText  string
	Fraction   string
	Profile    LearnerProfile
	BandRows   []bandRow
	Strengths  []InsightEntry
	Weaknesses []InsightEntry
}

// WriteReport writes the payload as a standalone HTML report.
func WriteReport(w io.Writer, p *Payload) error {
	eval := p.EvaluationResults

	rows := make([]bandRow, 0, len(Bands))
	for _, band := range Bands {
		score := eval.ScoreByDifficulty.Band(band)
		row := bandRow{Name: band, Text: "—"}
		if score.Total > 0 {
			row.Text = fmt.Sprintf("%d/%d", score.Correct, score.Total)
			row.Percent = float64(score.Correct) / float64(score.Total) * 100
		}
		rows = append(rows, row)
	}

	data := reportData{
		Badge:      BadgeFor(p.LearnerProfile.SkillLevel),
		ScoreText:  fmt.Sprintf("%.0f%%", eval.OverallScore),
		Fraction:   fmt.Sprintf("%d/%d Correct", eval.TotalCorrect, eval.TotalQuestions),
		Profile:    p.LearnerProfile,
		BandRows:   rows,
		Strengths:  insightEntries(p.LearnerProfile.Strengths),
		Weaknesses: insightEntries(p.LearnerProfile.Weaknesses),
	}

	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
