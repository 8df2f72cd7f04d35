package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// HTTPQuestionRepository fetches the question set from a static JSON resource.
// There is no retry: a failed fetch is returned as is.
type HTTPQuestionRepository struct {
	client *req.Client
	url    string
}

// NewHTTPQuestionRepository creates a repository reading url with the given timeout.
func NewHTTPQuestionRepository(url string, timeout time.Duration) *HTTPQuestionRepository {
	client := req.C().
		SetTimeout(timeout).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)

	return &HTTPQuestionRepository{
		client: client,
		url:    url,
	}
}

// FetchQuestions performs one GET and decodes the body.
func (r *HTTPQuestionRepository) FetchQuestions(ctx context.Context) ([]entities.Question, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(r.url)
	if err != nil {
		return nil, fmt.Errorf("fetch questions from %s: %w", r.url, err)
	}

	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("fetch questions from %s: %w: %d", r.url, ErrUnexpectedStatus, resp.GetStatusCode())
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("read questions body: %w", err)
	}

	return DecodeQuestions(body)
}
