// Package client implements the session controllers' outbound ports over
// HTTP against the collaborator server. Transport failures are translated
// into the domain failure taxonomy so the controllers never see raw HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/quiz"
	"github.com/avelar/lexmem/internal/review"
)

// DefaultTimeout bounds every request when the caller's context carries
// no deadline of its own.
const DefaultTimeout = 10 * time.Second

// Client talks to the collaborator server. It implements
// review.DueReviewSource, review.ReviewSubmitter, quiz.QuizGenerator,
// and quiz.QuizScorer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ review.DueReviewSource = (*Client)(nil)
	_ review.ReviewSubmitter = (*Client)(nil)
	_ quiz.QuizGenerator     = (*Client)(nil)
	_ quiz.QuizScorer        = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the client's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.logger = log.With(slog.String("component", "api_client"))
	}
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default().With(slog.String("component", "api_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dueReviewsPayload mirrors the server's due-reviews response.
type dueReviewsPayload struct {
	Items []domain.ReviewItem `json:"items"`
	Total int                 `json:"total"`
}

// GetDueReviews implements review.DueReviewSource.
func (c *Client) GetDueReviews(ctx context.Context) ([]domain.ReviewItem, int, error) {
	var payload dueReviewsPayload
	if err := c.doJSON(ctx, http.MethodGet, "/v1/reviews/due", nil, &payload, false); err != nil {
		return nil, 0, err
	}
	return payload.Items, payload.Total, nil
}

// submitReviewPayload mirrors the server's review submission request.
type submitReviewPayload struct {
	WordID  string `json:"word_id"`
	Quality int    `json:"quality"`
}

// SubmitReview implements review.ReviewSubmitter.
func (c *Client) SubmitReview(
	ctx context.Context,
	wordID uuid.UUID,
	quality domain.Quality,
) (*domain.ReviewOutcome, error) {
	body := submitReviewPayload{
		WordID:  wordID.String(),
		Quality: int(quality),
	}
	var outcome domain.ReviewOutcome
	if err := c.doJSON(ctx, http.MethodPost, "/v1/reviews", body, &outcome, false); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// generateQuizPayload mirrors the server's quiz generation request.
type generateQuizPayload struct {
	QuizType         string `json:"quiz_type"`
	WordCount        int    `json:"word_count"`
	TimeLimitSeconds int    `json:"time_limit_seconds,omitempty"`
}

// GenerateQuiz implements quiz.QuizGenerator.
func (c *Client) GenerateQuiz(
	ctx context.Context,
	req quiz.GenerateRequest,
) (*domain.QuizSession, error) {
	body := generateQuizPayload{
		QuizType:         string(req.QuizType),
		WordCount:        req.WordCount,
		TimeLimitSeconds: req.TimeLimitSeconds,
	}
	var session domain.QuizSession
	if err := c.doJSON(ctx, http.MethodPost, "/v1/quizzes/generate", body, &session, false); err != nil {
		return nil, err
	}
	return &session, nil
}

// submitQuizPayload mirrors the server's quiz submission request.
type submitQuizPayload struct {
	SessionID string              `json:"session_id"`
	Answers   []quizAnswerPayload `json:"answers"`
}

type quizAnswerPayload struct {
	QuestionID    string `json:"question_id"`
	AnswerIndex   int    `json:"answer_index"`
	ElapsedMillis int64  `json:"time_taken_ms,omitempty"`
}

// SubmitQuiz implements quiz.QuizScorer. A 404 or 410 here means the
// session itself is gone, so it maps to domain.ErrSessionExpired rather
// than a validation failure.
func (c *Client) SubmitQuiz(
	ctx context.Context,
	sessionID uuid.UUID,
	answers []domain.QuestionAnswer,
) (*domain.QuizResult, error) {
	body := submitQuizPayload{
		SessionID: sessionID.String(),
		Answers:   make([]quizAnswerPayload, 0, len(answers)),
	}
	for _, a := range answers {
		body.Answers = append(body.Answers, quizAnswerPayload{
			QuestionID:    a.QuestionID.String(),
			AnswerIndex:   a.AnswerIndex,
			ElapsedMillis: a.ElapsedMillis,
		})
	}

	var result domain.QuizResult
	if err := c.doJSON(ctx, http.MethodPost, "/v1/quizzes/submit", body, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// errorPayload is the server's error envelope.
type errorPayload struct {
	Error string `json:"error"`
}

// doJSON performs one request/response cycle. A non-2xx status or a
// network failure comes back wrapping the matching taxonomy sentinel.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	reqBody, respBody interface{},
	sessionScoped bool,
) error {
	var reader io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", domain.ErrValidation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrValidation, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransient, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if respBody == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrTransient, err)
		}
		return nil
	}

	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	message := payload.Error
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return c.mapStatus(resp.StatusCode, message, sessionScoped)
}

// mapStatus folds an HTTP status into the domain failure taxonomy.
func (c *Client) mapStatus(status int, message string, sessionScoped bool) error {
	switch {
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, message)

	case sessionScoped && (status == http.StatusNotFound || status == http.StatusGone):
		return fmt.Errorf("%w: %s", domain.ErrSessionExpired, message)

	case status == http.StatusBadRequest,
		status == http.StatusNotFound,
		status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, message)

	case status >= 500:
		return fmt.Errorf("%w: server returned %d: %s", domain.ErrTransient, status, message)

	default:
		return fmt.Errorf("%w: unexpected status %d: %s", domain.ErrTransient, status, message)
	}
}
