package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rubiojr/catalogue/pkg/form"
	"github.com/rubiojr/catalogue/pkg/pagination"
	"github.com/rubiojr/catalogue/pkg/search"
	"github.com/rubiojr/catalogue/pkg/searchapi"
	"github.com/rubiojr/catalogue/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.service.Search(r.Context(), r.URL.RawQuery)
	if err != nil {
		status, title := errorStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Errorf("search %q failed: %v", r.URL.RawQuery, err)
		}
		s.writeError(w, status, title, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) HandleBuckets(w http.ResponseWriter, r *http.Request) {
	buckets := s.service.Buckets()

	response := BucketsResponse{
		Buckets: buckets,
		Count:   len(buckets),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

// errorStatus maps a search error to an HTTP status and error title.
func errorStatus(err error) (int, string) {
	var malformed *form.MalformedInputError
	switch {
	case errors.As(err, &malformed), errors.Is(err, search.ErrMalformedQuery):
		return http.StatusBadRequest, "Malformed input"
	case errors.Is(err, pagination.ErrPageNotFound):
		return http.StatusNotFound, "Page not found"
	case errors.Is(err, searchapi.ErrTimeout):
		return http.StatusGatewayTimeout, "Search API timeout"
	case errors.Is(err, searchapi.ErrConnection),
		errors.Is(err, searchapi.ErrBadResponse),
		errors.Is(err, searchapi.ErrBadRequest),
		errors.Is(err, searchapi.ErrForbidden):
		return http.StatusBadGateway, "Search API error"
	default:
		return http.StatusInternalServerError, "Search failed"
	}
}
