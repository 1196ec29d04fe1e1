package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCredentialRepo_RoundTrip(t *testing.T) {
	repo := testStore(t).CredentialRepo()

	cred, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cred.Token != "" || cred.UserID != "" {
		t.Errorf("expected empty credential in fresh store, got %+v", cred)
	}

	if err := repo.SaveToken("tok-1"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := repo.SaveUserID("17"); err != nil {
		t.Fatalf("SaveUserID: %v", err)
	}

	cred, err = repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cred.Token != "tok-1" {
		t.Errorf("Token = %q, want %q", cred.Token, "tok-1")
	}
	if cred.UserID != "17" {
		t.Errorf("UserID = %q, want %q", cred.UserID, "17")
	}
}

func TestCredentialRepo_OverwriteAndClear(t *testing.T) {
	repo := testStore(t).CredentialRepo()

	repo.SaveToken("first")
	repo.SaveToken("second")

	cred, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cred.Token != "second" {
		t.Errorf("Token = %q, want %q", cred.Token, "second")
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	cred, err = repo.Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if cred.Token != "" || cred.UserID != "" {
		t.Errorf("expected empty credential after Clear, got %+v", cred)
	}
}

func TestAttemptRepo_AppendAndRecent(t *testing.T) {
	repo := testStore(t).AttemptRepo()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, &Attempt{
			ID:             uuid.New().String(),
			AssessmentID:   100 + i,
			Course:         "Go Fundamentals",
			Score:          float64(60 + i*10),
			TotalCorrect:   6 + i,
			TotalQuestions: 10,
			DurationSecs:   300,
			SubmittedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	attempts, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("len(attempts) = %d, want 3", len(attempts))
	}

	// Most recent first.
	if attempts[0].AssessmentID != 102 {
		t.Errorf("attempts[0].AssessmentID = %d, want 102", attempts[0].AssessmentID)
	}
	if attempts[0].Score != 80 {
		t.Errorf("attempts[0].Score = %v, want 80", attempts[0].Score)
	}
}

func TestAttemptRepo_RecentLimit(t *testing.T) {
	repo := testStore(t).AttemptRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.Append(ctx, &Attempt{
			ID:             uuid.New().String(),
			AssessmentID:   i,
			Course:         "Python Basics",
			SubmittedAt:    time.Now(),
			TotalQuestions: 10,
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	attempts, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("len(attempts) = %d, want 2", len(attempts))
	}
}
