package http

import (
	"fmt"
	"net/http"

	"fintrack/internal/core"
)

type ratesURLPayload struct {
	URL string `json:"url"`
}

func (s *Server) handleGetRatesURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.svc.GetRatesURL(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ratesURLPayload{URL: url})
}

func (s *Server) handleSetRatesURL(w http.ResponseWriter, r *http.Request) {
	var in ratesURLPayload
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", core.ErrValidation, err))
		return
	}
	if err := s.svc.SetRatesURL(r.Context(), in.URL); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ratesURLPayload{URL: in.URL})
}
