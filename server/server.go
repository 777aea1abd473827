// Package server is the interactive web view: a URL form, the rendered
// analysis and a PDF download, plus a JSON API and operational endpoints.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/seoprobe/config"
	"github.com/gaurav-prasanna/seoprobe/logging"
	"github.com/gaurav-prasanna/seoprobe/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(templateFS, "templates/*.html"))

// Server serves the web view.
type Server struct {
	cfg    config.ServerConfig
	engine *gin.Engine
	log    *zap.Logger
}

// New builds the server. recorder may be nil, in which case /metrics is
// not mounted.
func New(cfg config.ServerConfig, runner Runner, recorder *metrics.Recorder, log *zap.Logger) *Server {
	log = logging.OrNop(log)
	return &Server{
		cfg:    cfg,
		engine: NewRouter(cfg, runner, recorder, log),
		log:    log,
	}
}

// NewRouter creates the gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:   Recovery → RequestID → Logger
//	Analysis: RateLimit
func NewRouter(cfg config.ServerConfig, runner Runner, recorder *metrics.Recorder, log *zap.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(log))
	r.SetHTMLTemplate(templates)

	r.GET("/", index())
	r.GET("/healthz", healthz(time.Now()))
	if recorder != nil {
		r.GET("/metrics", gin.WrapH(recorder.Handler()))
	}

	limited := r.Group("")
	limited.Use(RateLimit(cfg.RateLimit, cfg.Burst))
	limited.POST("/analyze", analyzePage(runner))
	limited.POST("/report.pdf", reportPDF(runner))
	limited.GET("/api/v1/analyze", apiAnalyze(runner))

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
