package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordflow/internal/models"
)

type updateStrategyRequest struct {
	IntervalRule string `json:"interval_rule"`
}

type createWordRequest struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := s.CatalogService.ListStrategies(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, strategies)
}

func (s *Server) handleUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	var req updateStrategyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id := models.StrategyID(chi.URLParam(r, "id"))
	strategy, err := s.CatalogService.UpdateStrategy(r.Context(), id, req.IntervalRule)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, strategy)
}

func (s *Server) handleListModes(w http.ResponseWriter, r *http.Request) {
	modes, err := s.CatalogService.ListModes(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, modes)
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var req createWordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.CatalogService.AddWord(r.Context(), req.Text, req.Translation)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, word)
}

func (s *Server) handleCountWords(w http.ResponseWriter, r *http.Request) {
	n, err := s.CatalogService.CountWords(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"count": n})
}
