package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/atomicstack/mapping-example/internal/logging/events"
	"github.com/atomicstack/mapping-example/internal/metric"
	"github.com/atomicstack/mapping-example/internal/placemark"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

const (
	outcomeOK         = "ok"
	outcomeBadRequest = "bad_request"
	outcomeInvalid    = "invalid_location"

	maxBodyBytes = 1 << 16
)

type ctxKey struct{}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID)
	r.HandleFunc(placemark.Path, s.handlePost).Methods(http.MethodPost)
	r.HandleFunc(placemark.Path, s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metric.HandlerFor(s.registry)).Methods(http.MethodGet)
	for _, extra := range s.extra {
		r.Handle(extra.path, extra.handler)
	}
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestIDFrom returns the identifier assigned to the request, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *server) handlePost(w http.ResponseWriter, r *http.Request) {
	var req placemark.Request
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, outcomeBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.fail(w, r, outcomeBadRequest, fmt.Errorf("decode body: %w", err))
			return
		}
	}
	s.respond(w, r, req)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	var req placemark.Request
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **float64
	}{{"lat", &req.Lat}, {"lon", &req.Lon}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.fail(w, r, outcomeBadRequest, fmt.Errorf("parse %s: %w", p.name, err))
			return
		}
		*p.dst = &v
	}
	s.respond(w, r, req)
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, req placemark.Request) {
	resp, err := placemark.Points(req)
	if err != nil {
		outcome := outcomeBadRequest
		if errors.Is(err, placemark.ErrInvalidLocation) {
			outcome = outcomeInvalid
		}
		s.fail(w, r, outcome, err)
		return
	}
	lat, lon := placemark.Resolve(req)
	id := RequestIDFrom(r.Context())
	s.requests.Increment(r.Method, outcomeOK)
	events.Placemark.Served(id, lat, lon, len(resp.Points))
	s.log.Debug("placemarks served",
		zap.String("request_id", id),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encode response", zap.String("request_id", id), zap.Error(err))
	}
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, outcome string, err error) {
	s.requests.Increment(r.Method, outcome)
	s.log.Warn("placemark request rejected",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("outcome", outcome),
		zap.Error(err))
	http.Error(w, err.Error(), http.StatusBadRequest)
}
