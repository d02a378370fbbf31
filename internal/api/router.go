package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avelar/lexmem/internal/api/middleware"
)

// NewRouter assembles the HTTP routes for the reference server.
func NewRouter(reviews *ReviewHandler, quizzes *QuizHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/reviews/due", reviews.GetDueReviews)
		r.Post("/reviews", reviews.SubmitReview)

		r.Post("/quizzes/generate", quizzes.GenerateQuiz)
		r.Post("/quizzes/submit", quizzes.SubmitQuiz)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
