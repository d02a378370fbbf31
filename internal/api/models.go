package api

import "github.com/avelar/lexmem/internal/domain"

// DueReviewsResponse is the payload for GET /v1/reviews/due.
type DueReviewsResponse struct {
	Items []domain.ReviewItem `json:"items"`
	Total int                 `json:"total"`
}

// SubmitReviewRequest is the payload for POST /v1/reviews.
// Quality is a pointer so that a rating of 0 survives the required check.
type SubmitReviewRequest struct {
	WordID  string `json:"word_id" validate:"required,uuid"`
	Quality *int   `json:"quality" validate:"required,gte=0,lte=5"`
}

// GenerateQuizRequest is the payload for POST /v1/quizzes/generate.
type GenerateQuizRequest struct {
	QuizType         string `json:"quiz_type"         validate:"required"`
	WordCount        int    `json:"word_count"        validate:"required,gt=0"`
	TimeLimitSeconds int    `json:"time_limit_seconds" validate:"gte=0"`
}

// QuizAnswerPayload is one entry of a quiz submission batch.
type QuizAnswerPayload struct {
	QuestionID    string `json:"question_id" validate:"required,uuid"`
	AnswerIndex   *int   `json:"answer_index" validate:"required,gte=0"`
	ElapsedMillis int64  `json:"time_taken_ms" validate:"gte=0"`
}

// SubmitQuizRequest is the payload for POST /v1/quizzes/submit.
type SubmitQuizRequest struct {
	SessionID string              `json:"session_id" validate:"required,uuid"`
	Answers   []QuizAnswerPayload `json:"answers"    validate:"dive"`
}
