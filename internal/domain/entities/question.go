package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// OptionsPerQuestion is the number of choices every question carries.
const OptionsPerQuestion = 4

var (
	ErrNoQuestions      = errors.New("no questions")
	ErrEmptyQuestion    = errors.New("question text is empty")
	ErrOptionsCount     = errors.New("unexpected number of options")
	ErrAnswerOutOfRange = errors.New("answer is out of range")
)

// Question is one quiz question with its options and the position of the right one.
// Answer is 1-based and points into Choices before any shuffling.
type Question struct {
	Question string   `json:"question"`
	Choices  []string `json:"choix"`
	Answer   int      `json:"reponse"`
}

// Validate checks a single question record.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return ErrEmptyQuestion
	}

	if len(q.Choices) != OptionsPerQuestion {
		return fmt.Errorf("%w: expected %d, got %d", ErrOptionsCount, OptionsPerQuestion, len(q.Choices))
	}

	if q.Answer < 1 || q.Answer > len(q.Choices) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrAnswerOutOfRange, q.Answer, len(q.Choices))
	}

	return nil
}

// ValidateQuestions checks every record and reports all violations at once.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	var result *multierror.Error
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("question %d: %w", i+1, err))
		}
	}

	return result.ErrorOrNil()
}
