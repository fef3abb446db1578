package ui

import (
	"context"
	"embed"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"time"

	"legumedash/app"
	"legumedash/internal"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html static/css/*.css
var embeddedFiles embed.FS

// Server is the HTTP host for the dashboard. It either serves a loaded
// dashboard or, when startup loading failed, the error banner on every page.
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	loadErr   error
	templates *template.Template
	caption   template.HTML
	logger    *internal.Logger
}

// NewServer creates a server. Exactly one of dashboard and loadErr is expected
// to be set; a nil dashboard always renders the unavailable page.
func NewServer(dashboard *app.DashboardService, loadErr error, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if dashboard == nil && loadErr == nil {
		loadErr = fmt.Errorf("dashboard not initialized")
	}

	s := &Server{
		router:    gin.New(),
		dashboard: dashboard,
		loadErr:   loadErr,
		caption:   RenderMarkdown(app.PageCaption),
		logger:    logger,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"fmtValue": func(v float64) string {
			if math.IsNaN(v) {
				return "NaN"
			}
			return strconv.FormatFloat(v, 'f', 2, 64)
		},
		"add":  func(a, b float64) float64 { return a + b },
		"half": func(v float64) float64 { return v / 2 },
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	s.templates, err = template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.logger.Debug("[TemplateInit] Parsed templates: %s", s.templates.DefinedTemplates())
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/api/view", s.handleViewJSON)
	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, used by tests and by HTTPServer
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer wraps the router in an http.Server so the caller controls shutdown
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve runs the server until ctx is cancelled, then drains requests for up to
// shutdownTimeout. A listener failure cancels the shutdown watcher as well.
func (s *Server) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := s.HTTPServer(addr)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("[Server] Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("[Server] Shutting down (timeout %s)", shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Template helpers
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		s.logger.Error("[Server] Template %s error: %v", templateName, err)
	}
}

func (s *Server) staticFS() http.FileSystem {
	sub, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		// only fails if the embed pattern changes
		panic(fmt.Sprintf("static filesystem: %v", err))
	}
	s.logger.Debug("[Static] Serving static files from embedded FS at /static")
	return http.FS(sub)
}
