// Package http exposes cached structured data over a chi router and
// fetches rendered pages for head injection.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ldblocks"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps the size of pages posted for rendering.
const DefaultMaxBodyBytes = 10 << 20

// ShutdownTimeout bounds graceful shutdown once the serve context is done.
const ShutdownTimeout = 5 * time.Second

// Server serves the read API.
type Server struct {
	records  ldblocks.RecordService
	index    ldblocks.BlockIndex
	injector ldblocks.HeadInjector
	logger   *slog.Logger

	// MaxBodyBytes limits render request bodies.
	MaxBodyBytes int64

	// RenderLimiter rate limits render requests per client. Nil disables
	// limiting.
	RenderLimiter *ClientLimiter

	router chi.Router
}

// NewServer creates a Server and registers its routes.
func NewServer(records ldblocks.RecordService, index ldblocks.BlockIndex, injector ldblocks.HeadInjector, logger *slog.Logger) *Server {
	s := &Server{
		records:      records,
		index:        index,
		injector:     injector,
		logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/v2", func(r chi.Router) {
		r.Get("/documents", s.handleDocuments)
		r.Get("/documents/{id}/css", s.handleCSS)
		r.Get("/documents/{id}/structured-data", s.handleDocumentStructuredData)
		r.With(s.limitRender).Post("/documents/{id}/render", s.handleRender)
		r.Get("/structured-data", s.handleStructuredData)
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving read API", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs one line per request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.logger.Info("request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) limitRender(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.RenderLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		s.RenderLimiter.Handler(next).ServeHTTP(w, r)
	})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.index.FindDocumentIDs(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, r, map[string][]string{"documents": ids})
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.records.FindRecord(r.Context(), ldblocks.PipelineHowTo, id)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if rec.CSS == "" {
		s.Error(w, r, ldblocks.Errorf(ldblocks.ENOTFOUND, "no css for document %q", id))
		return
	}
	s.write(w, r, "text/css; charset=utf-8", []byte(rec.CSS))
}

func (s *Server) handleDocumentStructuredData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if name := r.URL.Query().Get("pipeline"); name != "" {
		pipeline, err := ldblocks.ParsePipeline(name)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		data, err := s.structuredData(r.Context(), pipeline, id)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		s.write(w, r, "application/ld+json", data)
		return
	}

	all := make(map[string]json.RawMessage, len(ldblocks.Pipelines))
	for _, pipeline := range ldblocks.Pipelines {
		data, err := s.structuredData(r.Context(), pipeline, id)
		if ldblocks.ErrorCode(err) == ldblocks.ENOTFOUND {
			continue
		} else if err != nil {
			s.Error(w, r, err)
			return
		}
		all[pipeline.ShortName()] = data
	}
	if len(all) == 0 {
		s.Error(w, r, ldblocks.Errorf(ldblocks.ENOTFOUND, "no structured data for document %q", id))
		return
	}
	s.writeJSON(w, r, all)
}

// structuredData returns ENOTFOUND when the record is missing or carries
// no structured data.
func (s *Server) structuredData(ctx context.Context, pipeline ldblocks.Pipeline, id string) (json.RawMessage, error) {
	rec, err := s.records.FindRecord(ctx, pipeline, id)
	if err != nil {
		return nil, err
	}
	if len(rec.StructuredData) == 0 {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "no %s structured data for document %q", pipeline.ShortName(), id)
	}
	return rec.StructuredData, nil
}

// handleStructuredData writes {pipeline: {id: data}} with ids in
// ascending order. Records without structured data are skipped.
func (s *Server) handleStructuredData(w http.ResponseWriter, r *http.Request) {
	pipelines := ldblocks.Pipelines
	if name := r.URL.Query().Get("pipeline"); name != "" {
		pipeline, err := ldblocks.ParsePipeline(name)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		pipelines = []ldblocks.Pipeline{pipeline}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pipeline := range pipelines {
		records, err := s.records.FindRecords(r.Context(), pipeline)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(pipeline.ShortName()) + ":{")
		n := 0
		for _, rec := range records {
			if len(rec.StructuredData) == 0 {
				continue
			}
			if n > 0 {
				buf.WriteByte(',')
			}
			key, _ := json.Marshal(rec.DocumentID)
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(rec.StructuredData)
			n++
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	s.write(w, r, "application/json", buf.Bytes())
}

// handleRender injects the document's head content into the posted page.
// The stylesheet is only injected for documents in the block index.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.Error(w, r, ldblocks.Errorf(ldblocks.EINVALID, "page exceeds %d bytes", maxErr.Limit))
			return
		}
		s.Error(w, r, err)
		return
	}

	head, err := ldblocks.LoadRenderHead(r.Context(), s.records, s.index, id)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	page, err := s.injector.Inject(string(body), head)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.write(w, r, "application/json", buf)
}

// write sends body with an xxhash ETag, answering 304 when the client
// already holds it.
func (s *Server) write(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

// Error writes err as a JSON error response. Internal errors are logged
// and reported without details.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ldblocks.ErrorCode(err), ldblocks.ErrorMessage(err)
	if code == ldblocks.EINTERNAL {
		s.logger.Error("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"err", err,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// ErrorResponse is the body of an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorStatusCode maps an application error code to an HTTP status code.
func ErrorStatusCode(code string) int {
	switch code {
	case ldblocks.EINVALID:
		return http.StatusBadRequest
	case ldblocks.ENOTFOUND:
		return http.StatusNotFound
	case ldblocks.ECONFLICT:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
