package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msc-labs/evaluate-backend/internal/model"
)

// ResultRepository handles quiz result data access. Results are written once
// at submission time and never updated.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Save mints a fresh identifier and timestamps, writes the result as a single
// atomic insert, and leaves the stored fields on the passed record.
func (r *ResultRepository) Save(ctx context.Context, res *model.Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	details, err := json.Marshal(res.DetailedResults)
	if err != nil {
		return fmt.Errorf("marshal detailed results: %w", err)
	}

	res.ID = uuid.New()
	now := time.Now().UTC()
	res.CompletedAt = now
	res.CreatedAt = now
	res.UpdatedAt = now

	_, err = r.pool.Exec(ctx,
		`INSERT INTO quiz_results
		   (id, template_id, session_id, user_id, answers, detailed_results,
		    total_score, correct_count, total_questions, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		res.ID, res.TemplateID, res.SessionID, res.UserID, answers, details,
		res.TotalScore, res.CorrectCount, res.TotalQuestions,
		res.CompletedAt, res.CreatedAt, res.UpdatedAt)
	return err
}

// GetByID retrieves a result by its UUID.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error) {
	row := r.pool.QueryRow(ctx, selectResults+` WHERE id = $1`, id)
	return scanResult(row)
}

// ListBySession retrieves all results submitted under one session identifier.
func (r *ResultRepository) ListBySession(ctx context.Context, sessionID string) ([]model.Result, error) {
	return r.list(ctx, selectResults+` WHERE session_id = $1`, sessionID)
}

// ListByTemplate retrieves all results for one template.
func (r *ResultRepository) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]model.Result, error) {
	return r.list(ctx, selectResults+` WHERE template_id = $1`, templateID)
}

// ListByUser retrieves all results owned by an authenticated user.
func (r *ResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Result, error) {
	return r.list(ctx, selectResults+` WHERE user_id = $1`, userID)
}

// ListAll retrieves every stored result. Reporting filters and sorts the
// returned set in memory; no ordering is guaranteed here.
func (r *ResultRepository) ListAll(ctx context.Context) ([]model.Result, error) {
	return r.list(ctx, selectResults)
}

// Delete removes a result unconditionally. Returns false when the id is
// unknown. No cascading cleanup is performed.
func (r *ResultRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quiz_results WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const selectResults = `SELECT id, template_id, session_id, user_id, answers, detailed_results,
       total_score, correct_count, total_questions, completed_at, created_at, updated_at
  FROM quiz_results`

func (r *ResultRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}

func scanResult(row pgx.Row) (*model.Result, error) {
	res := &model.Result{}
	var answers, details []byte
	err := row.Scan(&res.ID, &res.TemplateID, &res.SessionID, &res.UserID,
		&answers, &details, &res.TotalScore, &res.CorrectCount, &res.TotalQuestions,
		&res.CompletedAt, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	if err := json.Unmarshal(details, &res.DetailedResults); err != nil {
		return nil, fmt.Errorf("unmarshal detailed results: %w", err)
	}
	return res, nil
}
