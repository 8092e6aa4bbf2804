package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentTypeMiddleware)

		r.Get("/strategies", s.handleListStrategies)
		r.Put("/strategies/{id}", s.handleUpdateStrategy)
		r.Get("/modes", s.handleListModes)
		r.Post("/words", s.handleCreateWord)
		r.Get("/words/count", s.handleCountWords)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/progress", s.handleListProgress)
			r.Put("/words/{wordID}/long-difficult", s.handleSetLongDifficult)
			r.Get("/words/{wordID}/history", s.handleListHistory)

			r.Get("/sessions/today", s.handleTodaySession)
			r.Put("/sessions/today/status", s.handleUpdateSessionStatus)
			r.Put("/sessions/today/progress", s.handleUpdateSessionProgress)

			r.Post("/assessments", s.handleStartAssessmentBatch)
			r.Post("/words/{wordID}/assessment", s.handleStartAssessment)
			r.Post("/words/{wordID}/assessment/answer", s.handleAnswerAssessment)
		})
	})
	return r
}
