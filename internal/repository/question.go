package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

var ErrDecodeQuestions = errors.New("failed to decode questions")

// FileQuestionRepository reads the question set from a JSON file on every fetch,
// the way a page reload re-fetches the static resource.
type FileQuestionRepository struct {
	path string
}

// NewFileQuestionRepository creates a repository over the JSON file at path.
func NewFileQuestionRepository(path string) *FileQuestionRepository {
	return &FileQuestionRepository{path: path}
}

// FetchQuestions reads and validates the file.
func (r *FileQuestionRepository) FetchQuestions(ctx context.Context) ([]entities.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	return DecodeQuestions(data)
}

// DecodeQuestions accepts either a bare array of records or {"questions": [...]}.
func DecodeQuestions(data []byte) ([]entities.Question, error) {
	var questions []entities.Question

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Questions []entities.Question `json:"questions"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeQuestions, err)
		}
		questions = wrapper.Questions
	} else if err := json.Unmarshal(trimmed, &questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeQuestions, err)
	}

	if err := entities.ValidateQuestions(questions); err != nil {
		return nil, err
	}

	return questions, nil
}
