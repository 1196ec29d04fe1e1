package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/results"
)

// Course name limits enforced by the backend; checked client-side too
// so typos fail before a round trip.
const (
	minCourseNameLen = 2
	maxCourseNameLen = 100
)

// Assessment is a generated quiz ready to run.
type Assessment struct {
	ID         int
	CourseName string
	Questions  []quiz.Question
}

// SubmitResult is the acknowledgement for a submitted assessment.
type SubmitResult struct {
	AssessmentID int
	ResultsURL   string
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login/", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	return c.storeCredential(resp)
}

// Register creates an account and stores the returned token, so a
// fresh registration is immediately logged in.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	var resp authResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register/", registerRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	return c.storeCredential(resp)
}

func (c *Client) storeCredential(resp authResponse) error {
	if c.session == nil {
		return nil
	}
	if err := c.session.SetToken(resp.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := c.session.SetUserID(resp.UserID.String()); err != nil {
		return fmt.Errorf("store user id: %w", err)
	}
	return nil
}

// StartAssessment asks the backend to generate a quiz for courseName.
func (c *Client) StartAssessment(ctx context.Context, courseName string) (*Assessment, error) {
	if n := utf8.RuneCountInString(courseName); n < minCourseNameLen {
		return nil, fmt.Errorf("course name must be at least %d characters", minCourseNameLen)
	} else if n > maxCourseNameLen {
		return nil, fmt.Errorf("course name too long (max %d characters)", maxCourseNameLen)
	}

	var resp startResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/assessment/start/", startRequest{
		CourseName: courseName,
	}, &resp)
	if err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, 0, len(resp.Quiz.Questions))
	for _, q := range resp.Quiz.Questions {
		questions = append(questions, quiz.Question{
			ID:          q.QuestionID,
			Number:      q.QuestionNumber,
			Difficulty:  q.Difficulty,
			Topic:       q.Topic,
			Text:        q.QuestionText,
			CodeSnippet: q.CodeSnippet,
			Options:     q.Options,
		})
	}

	return &Assessment{
		ID:         resp.Quiz.AssessmentID,
		CourseName: resp.Quiz.CourseName,
		Questions:  questions,
	}, nil
}

// SubmitAssessment uploads the collected answers for evaluation.
// Time-spent values are submitted in milliseconds.
func (c *Client) SubmitAssessment(ctx context.Context, assessmentID int, answers map[string]quiz.AnswerRecord, totalTimeSeconds int) (*SubmitResult, error) {
	payload := make(map[string]answerPayload, len(answers))
	for id, rec := range answers {
		payload[id] = answerPayload{
			Answer:    rec.Answer,
			TimeSpent: rec.TimeSpent.Milliseconds(),
		}
	}

	var resp submitResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/assessment/submit/", submitRequest{
		AssessmentID:     assessmentID,
		Answers:          payload,
		TotalTimeSeconds: totalTimeSeconds,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		AssessmentID: resp.AssessmentID,
		ResultsURL:   resp.ResultsURL,
	}, nil
}

// Results fetches the evaluated results for an assessment. The raw
// payload is validated against the results schema before decoding, so
// a malformed backend response surfaces as an error here instead of a
// half-rendered page.
func (c *Client) Results(ctx context.Context, assessmentID int) (*results.Payload, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/api/assessment/%d/results/", assessmentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	if err := validateResultsPayload(raw); err != nil {
		return nil, err
	}

	var payload results.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return &payload, nil
}
