package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msc-labs/evaluate-backend/internal/model"
)

// TemplateRepository handles quiz template data access.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Create inserts a new template, minting its identifier and timestamps.
func (r *TemplateRepository) Create(ctx context.Context, t *model.Template) error {
	questions, err := json.Marshal(t.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	t.ID = uuid.New()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.IsActive = true

	_, err = r.pool.Exec(ctx,
		`INSERT INTO templates (id, title, subject, course, questions, is_active, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Subject, t.Course, questions, t.IsActive, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	return err
}

// GetByID retrieves a template by its UUID.
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	t := &model.Template{}
	var questions []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, subject, course, questions, is_active, created_by, created_at, updated_at
		 FROM templates WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Subject, &t.Course, &questions, &t.IsActive, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &t.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return t, nil
}

// List retrieves active templates, optionally narrowed by subject and course.
// This is a filter scan over the whole collection; result order follows
// creation time descending.
func (r *TemplateRepository) List(ctx context.Context, subject, course string) ([]model.Template, error) {
	query := `SELECT id, title, subject, course, questions, is_active, created_by, created_at, updated_at
	          FROM templates WHERE is_active = TRUE`
	var args []interface{}

	if subject != "" {
		args = append(args, subject)
		query += fmt.Sprintf(" AND subject = $%d", len(args))
	}
	if course != "" {
		args = append(args, course)
		query += fmt.Sprintf(" AND course = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []model.Template
	for rows.Next() {
		var t model.Template
		var questions []byte
		if err := rows.Scan(&t.ID, &t.Title, &t.Subject, &t.Course, &questions,
			&t.IsActive, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &t.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Delete removes a template unconditionally. Stored results keep their
// template reference; readers substitute placeholders for the missing join.
func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
