package api

import (
	"net/http"

	"github.com/vytor/wordflow/internal/errors"
)

type longDifficultRequest struct {
	LongDifficult *bool `json:"long_difficult"`
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	rows, err := s.ReviewService.ListProgress(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) handleSetLongDifficult(w http.ResponseWriter, r *http.Request) {
	userID, wordID, err := userWordParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req longDifficultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.LongDifficult == nil {
		handleError(w, r, errors.NewValidationError("long_difficult", "is required"))
		return
	}

	if err := s.ReviewService.SetLongDifficult(r.Context(), userID, wordID, *req.LongDifficult); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	userID, wordID, err := userWordParams(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	entries, err := s.ReviewService.ListHistory(r.Context(), userID, wordID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}
