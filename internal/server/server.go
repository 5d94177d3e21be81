package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/CraftCalc_Go/internal/catalog"
	"github.com/osse101/CraftCalc_Go/internal/handler"
	"github.com/osse101/CraftCalc_Go/internal/logger"
	"github.com/osse101/CraftCalc_Go/internal/metrics"
	"github.com/osse101/CraftCalc_Go/internal/shoppinglist"
)

// Options configures the HTTP server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
}

type Server struct {
	httpServer *http.Server
}

// NewServer wires the router, middleware and handlers
func NewServer(opts Options, cat *catalog.Catalog, calc handler.Calculator, lists shoppinglist.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, cat, calc, lists),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router. It is separate from NewServer so tests can
// drive it through httptest.
func NewRouter(opts Options, cat *catalog.Catalog, calc handler.Calculator, lists shoppinglist.Service) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = RequestTimeout
	}
	limiter := NewRateLimiter(opts.RateLimit, opts.RateWindow)

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, limiter))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, limiter))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(timeoutMiddleware(opts.RequestTimeout))

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(cat))
	r.Get("/version", handler.HandleVersion(cat))
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := handler.NewCatalogHandler(cat)
	calculateHandler := handler.NewCalculateHandler(calc)
	listHandler := handler.NewListHandler(lists)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", catalogHandler.HandleListItems)
		r.Get("/items/{name}", catalogHandler.HandleGetItem)
		r.Get("/raw-materials", catalogHandler.HandleGetRawMaterials)

		r.Post("/calculate", calculateHandler.HandleCalculate)
		r.Post("/calculate/batch", calculateHandler.HandleCalculateBatch)

		r.Route("/lists", func(r chi.Router) {
			r.Post("/", listHandler.HandleCreate)
			r.Route("/{session}", func(r chi.Router) {
				r.Get("/", listHandler.HandleGet)
				r.Delete("/", listHandler.HandleDelete)
				r.Post("/items", listHandler.HandleAddItem)
				r.Delete("/items", listHandler.HandleClear)
				r.Delete("/items/{item}", listHandler.HandleRemoveItem)
				r.Post("/calculate", listHandler.HandleCalculate)
			})
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// timeoutMiddleware bounds the request context so long expansions are cancelled
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
