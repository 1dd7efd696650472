package server

import (
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/corpnet/internal/events"
	"github.com/alfredjeanlab/corpnet/internal/model"
)

// handleSearchCompanies handles GET /v1/companies?q=...&max=N.
func (s *Server) handleSearchCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeLookupError(w, inputError("q is required"))
		return
	}

	max := 0
	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeLookupError(w, inputError("max must be a positive integer"))
			return
		}
		max = n
	}

	companies, err := s.client.SearchCompanies(r.Context(), q, max)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicSearchPerformed, events.SearchPerformed{
		Query:   q,
		Matches: len(companies),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"companies": companies,
		"total":     len(companies),
	})
}

// handleGetCompany handles GET /v1/companies/{number}.
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		writeLookupError(w, inputError("company number is required"))
		return
	}

	company, err := s.client.GetCompanyProfile(r.Context(), number)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicCompanyViewed, events.CompanyViewed{
		CompanyNumber: company.CompanyNumber,
		CompanyName:   company.CompanyName,
	})

	writeJSON(w, http.StatusOK, company)
}

// handleGetOfficers handles GET /v1/companies/{number}/officers.
func (s *Server) handleGetOfficers(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		writeLookupError(w, inputError("company number is required"))
		return
	}

	officers, err := s.client.GetOfficers(r.Context(), number)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if officers == nil {
		officers = []*model.Officer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"officers": officers,
		"total":    len(officers),
	})
}

// handleGetPSCs handles GET /v1/companies/{number}/pscs.
func (s *Server) handleGetPSCs(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		writeLookupError(w, inputError("company number is required"))
		return
	}

	pscs, err := s.client.GetPSCs(r.Context(), number)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if pscs == nil {
		pscs = []*model.PSC{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pscs":  pscs,
		"total": len(pscs),
	})
}
