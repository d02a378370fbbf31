package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/avelar/lexmem/internal/api/shared"
	"github.com/avelar/lexmem/internal/domain"
	"github.com/avelar/lexmem/internal/platform/logger"
	"github.com/avelar/lexmem/internal/service"
)

// QuizHandler handles quiz-related HTTP requests.
type QuizHandler struct {
	quizService service.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService, log *slog.Logger) *QuizHandler {
	if quizService == nil {
		panic("quizService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &QuizHandler{
		quizService: quizService,
		logger:      log.With(slog.String("component", "quiz_handler")),
	}
}

// GenerateQuiz handles POST /v1/quizzes/generate requests.
// It builds a new quiz session of the requested type from the catalog.
func (h *QuizHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	session, err := h.quizService.GenerateQuiz(r.Context(), service.GenerateQuizParams{
		QuizType:         domain.QuizType(req.QuizType),
		WordCount:        req.WordCount,
		TimeLimitSeconds: req.TimeLimitSeconds,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("quiz generated",
		slog.String("session_id", session.SessionID.String()),
		slog.String("quiz_type", req.QuizType))
	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// SubmitQuiz handles POST /v1/quizzes/submit requests.
// It scores a full answer batch against the stored session.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	answers := make([]domain.QuestionAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		questionID, err := uuid.Parse(a.QuestionID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question ID format")
			return
		}
		answers = append(answers, domain.QuestionAnswer{
			QuestionID:    questionID,
			AnswerIndex:   *a.AnswerIndex,
			ElapsedMillis: a.ElapsedMillis,
		})
	}

	result, err := h.quizService.SubmitQuiz(r.Context(), sessionID, answers)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("quiz submitted",
		slog.String("session_id", sessionID.String()),
		slog.Int("score", result.Score))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
