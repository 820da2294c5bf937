package http

import (
	"fmt"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

// handleListCosts serves the cost collection, optionally filtered by a
// month (year+month), a category, or an inclusive date range (from+to).
func (s *Server) handleListCosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		costs []core.Cost
		err   error
	)
	switch {
	case strings.TrimSpace(q.Get("category")) != "":
		costs, err = s.svc.CostsByCategory(r.Context(), q.Get("category"))
	case q.Get("from") != "" || q.Get("to") != "":
		var from, to core.Date
		if from, err = parseDate(q.Get("from")); err == nil {
			if to, err = parseDate(q.Get("to")); err == nil {
				costs, err = s.svc.CostsByDateRange(r.Context(), from, to)
			}
		}
	case q.Get("year") != "" || q.Get("month") != "":
		year, month := parseYearMonth(r)
		costs, err = s.svc.CostsByMonth(r.Context(), year, month)
	default:
		costs, err = s.svc.GetAllCosts(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if costs == nil {
		costs = []core.Cost{}
	}
	writeJSON(w, http.StatusOK, costs)
}

func (s *Server) handleCreateCost(w http.ResponseWriter, r *http.Request) {
	var in core.Cost
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}
	created, err := s.svc.AddCost(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch core.CostPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}
	updated, err := s.svc.UpdateCost(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.DeleteCost(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
