package http_server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	log     *zap.Logger
	addr    string
	session service.SessionPort
	types   service.TypesReaderPort
	httpSrv *http.Server
}

func NewServer(log *zap.Logger, addr string, session service.SessionPort, types service.TypesReaderPort) *Server {
	s := &Server{log: log, addr: addr, session: session, types: types}
	s.httpSrv = &http.Server{Addr: addr, Handler: s.Routes(), ReadHeaderTimeout: 10 * time.Second}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/types", s.handleTypes())
		r.Post("/fetch", s.handleFetch())
		r.Get("/session", s.handleSession())
		r.Get("/report", s.handleReport())
		r.Post("/share", s.handleShare())
	})
	return r
}

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

func (s *Server) handleTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, entity.TypesResponse{
			Available:       s.types.IsHealthDataAvailable(r.Context()),
			Characteristics: s.types.CharacteristicTypes(),
			Quantities:      s.types.QuantityTypes(),
		})
	}
}

func (s *Server) handleFetch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.session.StartFetch(r.Context())
		switch {
		case errors.Is(err, service.ErrHealthDataUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		case errors.Is(err, service.ErrFetchInProgress):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			s.log.Error("start fetch", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusAccepted, entity.FetchResponse{QueryID: id.String(), State: entity.QueryQuerying})
	}
}

func (s *Server) handleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.session.View(r.Context()))
	}
}

func (s *Server) handleReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := s.session.Report()
		if errors.Is(err, service.ErrNothingToShare) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil {
			s.log.Error("report", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func (s *Server) handleShare() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.ShareRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		result, err := s.session.Share(r.Context(), req.To)
		switch {
		case errors.Is(err, service.ErrNothingToShare), errors.Is(err, service.ErrShareInProgress):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case errors.Is(err, service.ErrNoRecipient):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := entity.ShareResponse{Result: result}
		status := http.StatusOK
		if err != nil {
			resp.Error = err.Error()
			if result == entity.MailFailed {
				status = http.StatusBadGateway
			}
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
