package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.svc.GetAllBudgets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var in core.Budget
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}
	created, err := s.svc.SetBudget(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleLookupBudget resolves one budget by scope: year is required,
// month selects a monthly budget, category a category budget, neither
// the yearly one.
func (s *Server) handleLookupBudget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year, err := strconv.Atoi(strings.TrimSpace(q.Get("year")))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid year", core.ErrValidation))
		return
	}

	var month *int
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid month", core.ErrValidation))
			return
		}
		month = &m
	}
	var category *string
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		category = &v
	}

	budget, err := s.svc.GetBudget(r.Context(), year, month, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleEvaluateBudgets(w http.ResponseWriter, r *http.Request) {
	evals, err := s.svc.EvaluateBudgets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if evals == nil {
		evals = []core.BudgetEvaluation{}
	}
	writeJSON(w, http.StatusOK, evals)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.DeleteBudget(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
