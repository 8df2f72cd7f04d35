package entities

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestScoreCounters_Record(t *testing.T) {
	var s ScoreCounters

	s.Record(boolPtr(true))
	s.Record(boolPtr(false))
	s.Record(nil)
	s.Record(boolPtr(true))

	assert.Equal(t, ScoreCounters{Correct: 2, Incorrect: 1, NotAnswered: 1}, s)
	assert.Equal(t, 4, s.Total())
}

func TestNote(t *testing.T) {
	tests := []struct {
		name                      string
		correct, incorrect, total int
		want                      float64
	}{
		{name: "balanced", correct: 1, incorrect: 1, total: 2, want: 0},
		{name: "three of five", correct: 3, incorrect: 1, total: 5, want: 8},
		{name: "perfect", correct: 4, incorrect: 0, total: 4, want: 20},
		{name: "negative", correct: 0, incorrect: 3, total: 3, want: -20},
		{name: "two decimals", correct: 1, incorrect: 0, total: 3, want: 6.67},
		{name: "empty", correct: 0, incorrect: 0, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Note(tt.correct, tt.incorrect, tt.total), 1e-9)
		})
	}
}

func TestCardView_CloneAndCorrectPosition(t *testing.T) {
	v := CardView{
		ID:       3,
		Question: "Q",
		Options: []OptionView{
			{Text: "a"},
			{Text: "b", Correct: true},
		},
	}

	c := v.Clone()
	c.Options[0].Mark = MarkWrong

	assert.Equal(t, MarkNone, v.Options[0].Mark)
	assert.Equal(t, 1, v.CorrectPosition())
	assert.Equal(t, -1, CardView{}.CorrectPosition())
}

func TestValidateQuestions(t *testing.T) {
	valid := Question{Question: "A", Choices: []string{"a", "b", "c", "d"}, Answer: 2}
	require.NoError(t, ValidateQuestions([]Question{valid}))

	assert.ErrorIs(t, ValidateQuestions(nil), ErrNoQuestions)

	err := ValidateQuestions([]Question{
		valid,
		{Question: " ", Choices: []string{"a", "b", "c", "d"}, Answer: 1},
		{Question: "B", Choices: []string{"a", "b"}, Answer: 1},
		{Question: "C", Choices: []string{"a", "b", "c", "d"}, Answer: 5},
	})
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
	assert.ErrorIs(t, merr.Errors[0], ErrEmptyQuestion)
	assert.ErrorIs(t, merr.Errors[1], ErrOptionsCount)
	assert.ErrorIs(t, merr.Errors[2], ErrAnswerOutOfRange)
}
