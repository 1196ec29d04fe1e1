package api

import "encoding/json"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is shared by login and register. The backend sends the
// user id as a number.
type authResponse struct {
	Token   string      `json:"token"`
	UserID  json.Number `json:"user_id"`
	Message string      `json:"message"`
}

type startRequest struct {
	CourseName string `json:"course_name"`
}

type questionItem struct {
	QuestionID     string   `json:"question_id"`
	QuestionNumber int      `json:"question_number"`
	Difficulty     string   `json:"difficulty"`
	Topic          string   `json:"topic"`
	QuestionText   string   `json:"question_text"`
	CodeSnippet    string   `json:"code_snippet"`
	Options        []string `json:"options"`
}

type quizPayload struct {
	AssessmentID int            `json:"assessment_id"`
	CourseName   string         `json:"course_name"`
	Questions    []questionItem `json:"questions"`
}

type startResponse struct {
	Message string      `json:"message"`
	Quiz    quizPayload `json:"quiz"`
}

type answerPayload struct {
	Answer    string `json:"answer"`
	TimeSpent int64  `json:"timeSpent"`
}

type submitRequest struct {
	AssessmentID     int                      `json:"assessment_id"`
	Answers          map[string]answerPayload `json:"answers"`
	TotalTimeSeconds int                      `json:"total_time_seconds"`
}

type submitResponse struct {
	Message      string `json:"message"`
	AssessmentID int    `json:"assessment_id"`
	ResultsURL   string `json:"results_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}
