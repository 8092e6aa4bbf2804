package api

import (
	"net/http"

	"github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/models"
)

type startBatchRequest struct {
	WordIDs []int64 `json:"word_ids"`
}

type answerRequest struct {
	State   string       `json:"state"`
	Correct *bool        `json:"correct"`
	Phase   models.Phase `json:"phase"`
}

func (s *Server) handleStartAssessment(w http.ResponseWriter, r *http.Request) {
	userID, wordID, err := userWordParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	step, err := s.AssessmentService.Start(r.Context(), userID, wordID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, step)
}

func (s *Server) handleStartAssessmentBatch(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req startBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if len(req.WordIDs) == 0 {
		handleError(w, r, errors.NewValidationError("word_ids", "cannot be empty"))
		return
	}

	steps, err := s.AssessmentService.StartBatch(r.Context(), userID, req.WordIDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, steps)
}

func (s *Server) handleAnswerAssessment(w http.ResponseWriter, r *http.Request) {
	userID, wordID, err := userWordParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Correct == nil {
		handleError(w, r, errors.NewValidationError("correct", "is required"))
		return
	}

	res, err := s.AssessmentService.Answer(r.Context(), userID, wordID, req.State, *req.Correct, req.Phase)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
