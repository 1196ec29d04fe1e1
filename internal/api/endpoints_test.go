package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/quiz"
)

const validResultsJSON = `{
	"assessment_id": 42,
	"learner_profile": {
		"skill_level": "intermediate",
		"personalized_message": "Solid fundamentals.",
		"strengths": [{"topic": "slices", "proficiency_percent": 90, "note": "strong"}],
		"weaknesses": [{"topic": "goroutines", "proficiency_percent": 40, "note": "practice", "priority": "high"}],
		"estimated_weeks_to_proficiency": 6,
		"next_steps": ["Review concurrency patterns"]
	},
	"evaluation_results": {
		"overall_score": 73.3,
		"total_correct": 11,
		"total_questions": 15,
		"score_by_difficulty": {
			"beginner": {"correct": 5, "total": 5},
			"intermediate": {"correct": 4, "total": 6},
			"advanced": {"correct": 2, "total": 4}
		}
	}
}`

func TestLoginStoresCredential(t *testing.T) {
	creds := &memCredentials{}
	sess := newTestSession(t, creds)

	var gotBody loginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"token": "tok-abc", "user_id": 7, "message": "ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Login(context.Background(), "dev@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "dev@example.com", gotBody.Email)
	assert.Equal(t, "hunter2", gotBody.Password)
	assert.Equal(t, "tok-abc", creds.token)
	assert.Equal(t, "7", creds.userID)
	assert.True(t, sess.IsAuthenticated())
}

func TestRegisterStoresCredential(t *testing.T) {
	creds := &memCredentials{}
	sess := newTestSession(t, creds)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register/", r.URL.Path)
		w.Write([]byte(`{"token": "tok-new", "user_id": 12, "message": "created"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	err := c.Register(context.Background(), "Dev Example", "dev@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "tok-new", creds.token)
	assert.True(t, sess.IsAuthenticated())
}

func TestStartAssessmentValidatesCourseName(t *testing.T) {
	c := NewClient("http://unused.invalid", nil, nil)

	_, err := c.StartAssessment(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")

	_, err = c.StartAssessment(context.Background(), strings.Repeat("a", 101))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestStartAssessmentParsesQuiz(t *testing.T) {
	sess := newTestSession(t, &memCredentials{token: "tok"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/assessment/start/", r.URL.Path)
		var req startRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Go Programming", req.CourseName)
		w.Write([]byte(`{
			"message": "ok",
			"quiz": {
				"assessment_id": 42,
				"course_name": "Go Programming",
				"questions": [
					{
						"question_id": "q1",
						"question_number": 1,
						"difficulty": "beginner",
						"topic": "slices",
						"question_text": "What does append do?",
						"code_snippet": "s := append(s, 1)",
						"options": ["grows", "shrinks", "copies", "sorts"]
					}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	a, err := c.StartAssessment(context.Background(), "Go Programming")
	require.NoError(t, err)

	assert.Equal(t, 42, a.ID)
	assert.Equal(t, "Go Programming", a.CourseName)
	require.Len(t, a.Questions, 1)
	q := a.Questions[0]
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, "beginner", q.Difficulty)
	assert.Equal(t, "s := append(s, 1)", q.CodeSnippet)
	assert.Equal(t, []string{"grows", "shrinks", "copies", "sorts"}, q.Options)
}

func TestSubmitAssessmentSendsMilliseconds(t *testing.T) {
	sess := newTestSession(t, &memCredentials{token: "tok"})

	var gotReq submitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/assessment/submit/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"message": "ok", "assessment_id": 42, "results_url": "/api/assessment/42/results/"}`))
	}))
	defer srv.Close()

	answers := map[string]quiz.AnswerRecord{
		"q1": {Answer: "grows", TimeSpent: 2500 * time.Millisecond},
	}

	c := NewClient(srv.URL, srv.Client(), sess)
	res, err := c.SubmitAssessment(context.Background(), 42, answers, 180)
	require.NoError(t, err)

	assert.Equal(t, 42, gotReq.AssessmentID)
	assert.Equal(t, 180, gotReq.TotalTimeSeconds)
	require.Contains(t, gotReq.Answers, "q1")
	assert.Equal(t, "grows", gotReq.Answers["q1"].Answer)
	assert.Equal(t, int64(2500), gotReq.Answers["q1"].TimeSpent)

	assert.Equal(t, 42, res.AssessmentID)
	assert.Equal(t, "/api/assessment/42/results/", res.ResultsURL)
}

func TestResultsDecodesValidPayload(t *testing.T) {
	sess := newTestSession(t, &memCredentials{token: "tok"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/assessment/42/results/", r.URL.Path)
		w.Write([]byte(validResultsJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	p, err := c.Results(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "intermediate", p.LearnerProfile.SkillLevel)
	assert.InDelta(t, 73.3, p.EvaluationResults.OverallScore, 0.001)
	assert.Equal(t, 11, p.EvaluationResults.TotalCorrect)
	assert.Equal(t, 4, p.EvaluationResults.ScoreByDifficulty.Intermediate.Correct)
	require.Len(t, p.LearnerProfile.Weaknesses, 1)
	assert.Equal(t, "goroutines", p.LearnerProfile.Weaknesses[0].Topic)
}

func TestResultsRejectsMalformedPayload(t *testing.T) {
	sess := newTestSession(t, &memCredentials{token: "tok"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// evaluation_results missing entirely.
		w.Write([]byte(`{"learner_profile": {"skill_level": "beginner", "strengths": [], "weaknesses": []}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), sess)
	_, err := c.Results(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestValidateResultsPayload(t *testing.T) {
	require.NoError(t, validateResultsPayload(json.RawMessage(validResultsJSON)))

	missingBand := strings.Replace(validResultsJSON, `"advanced": {"correct": 2, "total": 4}`, `"advanced": {}`, 1)
	require.Error(t, validateResultsPayload(json.RawMessage(missingBand)))

	require.Error(t, validateResultsPayload(json.RawMessage(`not json`)))
}
