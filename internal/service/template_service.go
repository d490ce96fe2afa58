package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidQuestion  = errors.New("invalid question")
)

// TemplateService handles template business logic and the Redis cache of
// concealed quiz payloads.
type TemplateService struct {
	templates *repository.TemplateRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templates *repository.TemplateRepository, rdb *redis.Client, log zerolog.Logger) *TemplateService {
	return &TemplateService{
		templates: templates,
		rdb:       rdb,
		log:       log.With().Str("component", "template_service").Logger(),
	}
}

// Create validates the question set and inserts a new template. The concealed
// quiz payload is warmed into Redis so the first quiz fetch skips PostgreSQL.
func (s *TemplateService) Create(ctx context.Context, req model.CreateTemplateRequest, createdBy *uuid.UUID) (*model.Template, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, in := range req.Questions {
		q := model.Question{
			QuestionText:  in.QuestionText,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
			ExampleAnswer: in.ExampleAnswer,
		}
		if err := validateQuestion(i, q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	template := &model.Template{
		Title:     req.Title,
		Subject:   req.Subject,
		Course:    req.Course,
		Questions: questions,
		CreatedBy: createdBy,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	s.warmQuizCache(ctx, template)
	return template, nil
}

// GetByID retrieves the full template, including correct answers. Restricted
// to tutor/admin callers at the routing layer.
func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return template, nil
}

// List retrieves active templates, optionally filtered by subject and course.
func (s *TemplateService) List(ctx context.Context, subject, course string) ([]model.Template, error) {
	return s.templates.List(ctx, subject, course)
}

// GetQuizView returns the concealed pre-submission view of a template, served
// from Redis when possible with PostgreSQL as the source of truth.
func (s *TemplateService) GetQuizView(ctx context.Context, id uuid.UUID) (*model.QuizView, error) {
	key := config.CacheKey.QuizPayloadKey(id.String())

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var view model.QuizView
		if jsonErr := json.Unmarshal([]byte(cached), &view); jsonErr == nil {
			return &view, nil
		}
		// Corrupt cache entry; fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Quiz payload cache read failed")
	}

	template, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := model.BuildQuizView(template)
	s.warmQuizCache(ctx, template)
	return &view, nil
}

// Delete hard-deletes a template and drops its cached quiz payload.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.templates.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if !deleted {
		return ErrTemplateNotFound
	}
	s.rdb.Del(ctx, config.CacheKey.QuizPayloadKey(id.String()))
	return nil
}

// warmQuizCache stores the concealed payload in Redis. Failures are logged and
// ignored; the next quiz fetch falls back to PostgreSQL.
func (s *TemplateService) warmQuizCache(ctx context.Context, template *model.Template) {
	view := model.BuildQuizView(template)
	payload, err := json.Marshal(view)
	if err != nil {
		s.log.Warn().Err(err).Msg("Marshal quiz payload failed")
		return
	}
	key := config.CacheKey.QuizPayloadKey(template.ID.String())
	if err := s.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("template_id", template.ID.String()).Msg("Quiz payload cache write failed")
	}
}

// validateQuestion enforces the template invariants: a multiple-choice
// question needs at least two options and an in-range correct index; a
// free-text question must not carry a correct index.
func validateQuestion(index int, q model.Question) error {
	if len(q.Options) > 0 {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: at least two options required: %w", index, ErrInvalidQuestion)
		}
		if q.CorrectAnswer == nil {
			return fmt.Errorf("question %d: correct_answer is required for multiple choice: %w", index, ErrInvalidQuestion)
		}
		if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correct_answer out of range: %w", index, ErrInvalidQuestion)
		}
		return nil
	}
	if q.CorrectAnswer != nil {
		return fmt.Errorf("question %d: correct_answer given without options: %w", index, ErrInvalidQuestion)
	}
	return nil
}
