package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quizz/internal/domain/entities"
	"github.com/aliskhannn/quizz/internal/infra/postgres"
)

const questionsSchema = `
	CREATE TABLE IF NOT EXISTS questions (
		position INTEGER PRIMARY KEY,
		question TEXT NOT NULL,
		choices  TEXT[] NOT NULL,
		answer   SMALLINT NOT NULL CHECK (answer BETWEEN 1 AND 4)
	)
`

// QuestionRepository reads and writes the questions table.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository over a pool or a transaction.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// FetchQuestions returns every question in insertion order.
func (r *QuestionRepository) FetchQuestions(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT question, choices, answer
		FROM questions
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Question, error) {
		var q entities.Question
		err := row.Scan(&q.Question, &q.Choices, &q.Answer)
		return q, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}

	if err := entities.ValidateQuestions(questions); err != nil {
		return nil, err
	}

	return questions, nil
}

// EnsureSchema creates the questions table if needed.
func (r *QuestionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, questionsSchema); err != nil {
		return fmt.Errorf("create questions table: %w", err)
	}
	return nil
}

// Replace swaps the table contents for questions. Run it inside a transaction.
func (r *QuestionRepository) Replace(ctx context.Context, questions []entities.Question) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}

	query := `
		INSERT INTO questions (position, question, choices, answer)
		VALUES ($1, $2, $3, $4)
	`

	for i, q := range questions {
		if _, err := r.db.Exec(ctx, query, i+1, q.Question, q.Choices, q.Answer); err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}

	return nil
}

// QuestionSeeder loads a question set into the table atomically.
type QuestionSeeder struct {
	transactor *postgres.Transactor
}

func NewQuestionSeeder(transactor *postgres.Transactor) *QuestionSeeder {
	return &QuestionSeeder{transactor: transactor}
}

// Seed creates the table if needed and replaces its contents in one transaction.
func (s *QuestionSeeder) Seed(ctx context.Context, questions []entities.Question) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repo := NewQuestionRepository(tx)

		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}

		return repo.Replace(ctx, questions)
	})
}
