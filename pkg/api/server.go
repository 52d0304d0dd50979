package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rubiojr/catalogue/pkg/log"
	"github.com/rubiojr/catalogue/pkg/search"
	"github.com/rubiojr/catalogue/pkg/searchapi"
)

type Server struct {
	service *search.Service
	logger  *log.Logger
}

func NewServer(service *search.Service) *Server {
	return &Server{
		service: service,
		logger:  log.ForService("api"),
	}
}

// Handler returns the routes of s wrapped in the request ID, access log and
// CORS middlewares. Responses are gzip compressed when compress is true.
func (s *Server) Handler(compress bool) http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	var h http.Handler = CorsMiddleware(mux)
	if compress {
		h = gzhttp.GzipHandler(h)
	}
	return RequestIDMiddleware(s.accessLog(h))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+searchapi.HeaderRequestID)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware tags every request with an ID, reusing the one sent by
// the client. The ID is echoed in the response and forwarded to the search
// API.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(searchapi.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(searchapi.HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(searchapi.ContextWithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		l := s.logger
		if id := searchapi.RequestIDFromContext(r.Context()); id != "" {
			l = l.With("request_id", id)
		}
		l.Infof("%s %s %d %s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond))
	})
}
