package product

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductAPI/internal/product/openapi"
	"ProductAPI/pkg/kit"
)

const readyTimeout = 1 * time.Second

var errBadID = errors.New("bad id")

type Server struct {
	Service *Service
	Log     *zap.Logger

	// WriteLimit guards the mutating routes when set.
	WriteLimit func(http.Handler) http.Handler
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api/v1/products", func(pr chi.Router) {
		pr.Get("/", s.list)
		pr.Get("/{id}", s.find)

		pr.Group(func(wr chi.Router) {
			if s.WriteLimit != nil {
				wr.Use(s.WriteLimit)
			}
			wr.Post("/", s.create)
			wr.Put("/{id}", s.update)
			wr.Patch("/{id}", s.update)
			wr.Delete("/{id}", s.delete)
		})
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Service.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.YAML)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	resp, err := s.Service.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, resp)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	resp, err := s.Service.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) find(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	resp, err := s.Service.Find(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	resp, err := s.Service.Update(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.Service.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	kit.WriteNoContent(w)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")

	id, err := parseID(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, errBadID.Error(), map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// writeServiceError is the boundary that turns service errors into responses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": nf.ID})
		return
	}

	if errors.Is(err, context.Canceled) {
		s.logger().Debug("product request canceled by client", zap.Error(err), zap.String("path", r.URL.Path))
		kit.WriteError(w, r, http.StatusRequestTimeout, "canceled", nil)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		s.logger().Warn("product request timed out", zap.Error(err))
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
		return
	}

	s.logger().Error("product request failed", zap.Error(err), zap.String("path", r.URL.Path))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func (s *Server) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
