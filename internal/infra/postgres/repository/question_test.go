package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quizz/internal/domain/entities"
	"github.com/aliskhannn/quizz/internal/infra/postgres"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx records statements; the embedded interface panics on anything else.
type fakeTx struct {
	pgx.Tx
	execs      []execCall
	failOn     string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct{ tx *fakeTx }

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) { return b.tx, nil }

var seedQuestions = []entities.Question{
	{Question: "A", Choices: []string{"a", "b", "c", "d"}, Answer: 2},
	{Question: "B", Choices: []string{"e", "f", "g", "h"}, Answer: 4},
}

func TestQuestionSeeder_Seed(t *testing.T) {
	tx := &fakeTx{}
	seeder := NewQuestionSeeder(postgres.NewTransactor(fakeBeginner{tx: tx}))

	require.NoError(t, seeder.Seed(context.Background(), seedQuestions))

	require.Len(t, tx.execs, 4)
	assert.Contains(t, tx.execs[0].sql, "CREATE TABLE IF NOT EXISTS questions")
	assert.Contains(t, tx.execs[1].sql, "DELETE FROM questions")
	assert.Equal(t, []any{1, "A", []string{"a", "b", "c", "d"}, 2}, tx.execs[2].args)
	assert.Equal(t, []any{2, "B", []string{"e", "f", "g", "h"}, 4}, tx.execs[3].args)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestQuestionSeeder_RollsBackOnFailure(t *testing.T) {
	tx := &fakeTx{failOn: "INSERT"}
	seeder := NewQuestionSeeder(postgres.NewTransactor(fakeBeginner{tx: tx}))

	err := seeder.Seed(context.Background(), seedQuestions)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert question 1")
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
