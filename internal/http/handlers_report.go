package http

import (
	"net/http"
)

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	currency, err := parseCurrency(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := s.svc.BuildReport(r.Context(), year, month, currency)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	currency, err := parseCurrency(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	stats, err := s.svc.BuildStatistics(r.Context(), year, month, currency)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
