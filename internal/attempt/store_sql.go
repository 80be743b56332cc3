package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// SQLStore keeps attempt history. Append-only: nothing here updates or
// deletes a row once written.
type SQLStore struct {
	db *sql.DB
	mu sync.Mutex // keeps each AddAttempt's two-step insert un-interleaved
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// AddAttempt inserts the attempt row, then one row per answer stamped
// with the generated attempt id. If an answer insert fails the attempt
// row (and any answers already written) stay put: partial answer
// persistence is the documented failure mode, not a rollback.
func (s *SQLStore) AddAttempt(ctx context.Context, a Attempt, answers []Answer) (int64, error) {
	if strings.TrimSpace(a.TestID) == "" {
		return 0, errors.New("attempt: blank test id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO TestAttempt (TestId, CompletedAt, Score, MaxScore)
		 VALUES ($1,$2,$3,$4) RETURNING Id`,
		a.TestID, a.CompletedAt.UTC(), a.Score, a.MaxScore).Scan(&id)
	if err != nil {
		return 0, err
	}
	for _, ans := range answers {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO TestAttemptAnswer (AttemptId, QuestionId, SelectedOptionId, IsCorrect)
			 VALUES ($1,$2,$3,$4)`,
			id, ans.QuestionID, ans.SelectedOptionID, ans.IsCorrect); err != nil {
			return id, fmt.Errorf("attempt %d: answer insert: %w", id, err)
		}
	}
	return id, nil
}

// AttemptsByTest lists attempts for a test, newest first. Equal
// completion times fall back to insertion order.
func (s *SQLStore) AttemptsByTest(ctx context.Context, testID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT Id, TestId, CompletedAt, Score, MaxScore
		 FROM TestAttempt WHERE TestId=$1
		 ORDER BY CompletedAt DESC, Id ASC`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.TestID, &a.CompletedAt, &a.Score, &a.MaxScore); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LastAttemptForTest returns the newest attempt for the test, or nil when
// none exists.
func (s *SQLStore) LastAttemptForTest(ctx context.Context, testID string) (*Attempt, error) {
	var a Attempt
	err := s.db.QueryRowContext(ctx,
		`SELECT Id, TestId, CompletedAt, Score, MaxScore
		 FROM TestAttempt WHERE TestId=$1
		 ORDER BY CompletedAt DESC, Id ASC LIMIT 1`, testID).
		Scan(&a.ID, &a.TestID, &a.CompletedAt, &a.Score, &a.MaxScore)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AttemptWithAnswers fetches one attempt and its answer rows in insertion
// order.
func (s *SQLStore) AttemptWithAnswers(ctx context.Context, attemptID int64) (Attempt, []Answer, error) {
	var a Attempt
	err := s.db.QueryRowContext(ctx,
		`SELECT Id, TestId, CompletedAt, Score, MaxScore
		 FROM TestAttempt WHERE Id=$1`, attemptID).
		Scan(&a.ID, &a.TestID, &a.CompletedAt, &a.Score, &a.MaxScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, nil, fmt.Errorf("attempt %d not found", attemptID)
	}
	if err != nil {
		return Attempt{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT Id, AttemptId, QuestionId, SelectedOptionId, IsCorrect
		 FROM TestAttemptAnswer WHERE AttemptId=$1 ORDER BY Id ASC`, attemptID)
	if err != nil {
		return Attempt{}, nil, err
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var ans Answer
		var sel sql.NullString
		if err := rows.Scan(&ans.ID, &ans.AttemptID, &ans.QuestionID, &sel, &ans.IsCorrect); err != nil {
			return Attempt{}, nil, err
		}
		if sel.Valid {
			ans.SelectedOptionID = &sel.String
		}
		answers = append(answers, ans)
	}
	return a, answers, rows.Err()
}
