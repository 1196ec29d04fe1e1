package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Attempt records one submitted assessment for the history screen.
type Attempt struct {
	ID             string
	AssessmentID   int
	Course         string
	Score          float64
	TotalCorrect   int
	TotalQuestions int
	DurationSecs   int
	SubmittedAt    time.Time
}

// AttemptRepo provides append and query access to the attempt history.
type AttemptRepo interface {
	// Append records a completed attempt.
	Append(ctx context.Context, a *Attempt) error

	// Recent returns up to limit attempts, most recent first.
	Recent(ctx context.Context, limit int) ([]Attempt, error)
}

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, a *Attempt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts
		 (id, assessment_id, course, score, total_correct, total_questions, duration_secs, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AssessmentID, a.Course, a.Score, a.TotalCorrect, a.TotalQuestions,
		a.DurationSecs, a.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, assessment_id, course, score, total_correct, total_questions, duration_secs, submitted_at
		 FROM attempts ORDER BY submitted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.AssessmentID, &a.Course, &a.Score,
			&a.TotalCorrect, &a.TotalQuestions, &a.DurationSecs, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
