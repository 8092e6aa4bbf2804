package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/wordflow/internal/errors"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
)

type sessionStatusRequest struct {
	Status *models.SessionStatus `json:"status"`
}

func (s *Server) handleTodaySession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID, err := idParam(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var modeID int64
	if raw := r.URL.Query().Get("mode"); raw != "" {
		modeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || modeID <= 0 {
			log.Warn("invalid mode query: %s", raw)
			handleError(w, r, errors.NewBadRequestError("invalid mode: "+raw))
			return
		}
	}

	session, err := s.SessionService.GetOrCreateToday(r.Context(), userID, modeID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleUpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req sessionStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Status == nil {
		handleError(w, r, errors.NewValidationError("status", "is required"))
		return
	}

	session, err := s.SessionService.UpdateStatus(r.Context(), userID, *req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}

func (s *Server) handleUpdateSessionProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req models.PhaseProgress
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.SessionService.UpdateProgress(r.Context(), userID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, session)
}
