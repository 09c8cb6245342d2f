// Package api provides the HTTP REST API server for News Pulse.
//
// It exposes endpoints for headline search, sentiment analysis, user
// accounts, saved articles, source listing, and WebSocket streaming.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/newspulse/newspulse/internal/analysis/extract"
	"github.com/newspulse/newspulse/internal/analysis/sentiment"
	"github.com/newspulse/newspulse/internal/auth"
	"github.com/newspulse/newspulse/internal/config"
	"github.com/newspulse/newspulse/internal/provider"
	"github.com/newspulse/newspulse/internal/providers"
	"github.com/newspulse/newspulse/internal/report"
	"github.com/newspulse/newspulse/internal/store"
	"github.com/newspulse/newspulse/pkg/models"
	"github.com/newspulse/newspulse/web"
)

// Version is the build version reported by the health endpoint. The CLI
// overwrites it with the ldflags value at startup.
var Version = "dev"

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	log      zerolog.Logger
	registry *provider.Registry
	scorer   sentiment.Scorer
	store    *store.Store
	auth     *auth.Manager
	wsHub    *WSHub
	serveUI  bool // when true, serve the embedded web UI at /
}

// NewServer creates a configured API server with all routes and middleware.
// It opens the article store, registers the configured news providers and
// builds the sentiment scorer.
func NewServer(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	reg, err := providers.RegisterAll(cfg)
	if err != nil {
		return nil, fmt.Errorf("register providers: %w", err)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	srv := &Server{
		cfg:      cfg,
		log:      logger.With().Str("component", "api").Logger(),
		registry: reg,
		scorer:   sentiment.New(cfg.Sentiment.Engine, logger),
		store:    st,
		auth:     auth.NewManager(st, sessionTTL),
		wsHub:    NewWSHub(),
		serveUI:  true, // serve embedded web UI by default
	}

	srv.router = srv.buildRouter()
	return srv, nil
}

// Close releases the server's resources (the article store).
func (s *Server) Close() error {
	return s.store.Close()
}

// SetServeUI controls whether the embedded web UI is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health (also available at /health)
		r.Get("/health", s.handleHealth)

		// Accounts and sessions
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/me", s.handleMe)
		})

		// News
		r.Get("/news/search", s.handleSearch)
		r.Get("/news/headlines", s.handleHeadlines)
		r.Get("/news/trending", s.handleTrending)

		// Analysis
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/analyze/chart", s.handleAnalyzeChart)
		r.Get("/analyze/report", s.handleAnalyzeReport)

		// Saved articles
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/articles", s.handleSaveArticle)
			r.Get("/articles", s.handleListArticles)
			r.Delete("/articles/{id}", s.handleDeleteArticle)
			r.Get("/articles/stats", s.handleArticleStats)
		})

		// Sources and configuration
		r.Get("/sources", s.handleSources)
		r.Get("/config", s.handleGetConfig)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	// Serve embedded web UI (SPA with fallback to index.html)
	if s.serveUI {
		s.mountSPA(r, web.DistFS())
	}

	return r
}

// requestLogger logs each request through the server's zerolog logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// mountSPA serves the embedded static export as a single-page app.
// Known files are served directly; all other paths fall back to
// index.html for client-side routing.
func (s *Server) mountSPA(r chi.Router, distFS fs.FS) {
	fileServer := http.FileServerFS(distFS)

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		rPath := strings.TrimPrefix(r.URL.Path, "/")
		if rPath == "" {
			rPath = "index.html"
		}

		// Try to open the requested file from the embedded FS
		f, err := distFS.Open(rPath)
		if err != nil {
			// File not found — serve index.html for SPA client-side routing
			serveIndexHTML(w, distFS)
			return
		}
		f.Close()

		if rPath == "index.html" || strings.HasSuffix(rPath, ".html") {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}

		fileServer.ServeHTTP(w, r)
	})
}

// serveIndexHTML reads and serves the embedded index.html for SPA fallback.
func serveIndexHTML(w http.ResponseWriter, distFS fs.FS) {
	data, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "web UI not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Query    string `json:"query"`
	Window   string `json:"window,omitempty"`   // "any", "day", "week"
	Max      int    `json:"max,omitempty"`      // 1..20, default from config
	Deep     bool   `json:"deep,omitempty"`     // fetch and score article bodies
	Provider string `json:"provider,omitempty"` // provider override
}

// NewsResponse is the payload for search and headline listings.
type NewsResponse struct {
	Query    string                  `json:"query,omitempty"`
	Window   string                  `json:"window,omitempty"`
	Category string                  `json:"category,omitempty"`
	Provider string                  `json:"provider"`
	Cached   bool                    `json:"cached"`
	Articles []models.ScoredArticle  `json:"articles"`
	Summary  models.SentimentSummary `json:"summary"`
	Chart    report.ChartData        `json:"chart"`
}

// ============================================================
// Health and news handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0)
	for _, info := range s.registry.List() {
		names = append(names, info.Name)
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
			"sources": names,
			"scorer":  s.scorer.Name(),
		},
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	req := AnalyzeRequest{
		Query:    q,
		Window:   r.URL.Query().Get("window"),
		Max:      s.clampMax(atoiOrZero(r.URL.Query().Get("max"))),
		Provider: r.URL.Query().Get("provider"),
	}
	result, scored, err := s.fetchScored(ctx, provider.ModelNewsSearch, req.searchParams())
	if err != nil {
		writeFetchError(w, err)
		return
	}

	summary := sentiment.Summarize(scored)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: NewsResponse{
			Query:    q,
			Window:   windowOrAny(req.Window),
			Provider: result.Provider,
			Cached:   result.Cached,
			Articles: scored,
			Summary:  summary,
			Chart:    report.ChartPayload(summary),
		},
	})
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	params := provider.QueryParams{}
	if c := r.URL.Query().Get("category"); c != "" {
		params[provider.ParamCategory] = c
	}
	if c := r.URL.Query().Get("country"); c != "" {
		params[provider.ParamCountry] = c
	}
	if p := r.URL.Query().Get("provider"); p != "" {
		params[provider.ParamProvider] = p
	}
	params[provider.ParamMax] = strconv.Itoa(s.clampMax(atoiOrZero(r.URL.Query().Get("max"))))

	result, scored, err := s.fetchScored(ctx, provider.ModelTopHeadlines, params)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	summary := sentiment.Summarize(scored)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: NewsResponse{
			Category: params[provider.ParamCategory],
			Provider: result.Provider,
			Cached:   result.Cached,
			Articles: scored,
			Summary:  summary,
			Chart:    report.ChartPayload(summary),
		},
	})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	topics := s.cfg.News.Trending
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"topics": topics},
	})
}

// ============================================================
// Analysis handlers
// ============================================================

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	analysis, err := s.runAnalysis(ctx, req)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	// Broadcast to WebSocket clients
	s.wsHub.Broadcast(WSMessage{
		Type: "analysis",
		Data: map[string]interface{}{
			"query":    analysis.Query,
			"overall":  analysis.Summary.Overall,
			"total":    analysis.Summary.Total,
			"provider": analysis.Provider,
		},
	})

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    analysis,
	})
}

func (s *Server) handleAnalyzeChart(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.analysisFromQuery(w, r)
	if !ok {
		return
	}

	cfg := report.DefaultChartConfig()
	cfg.Title = fmt.Sprintf("Sentiment: %s", analysis.Query)
	svg := report.SentimentBarChart(analysis.Summary, cfg)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg)) //nolint:errcheck
}

func (s *Server) handleAnalyzeReport(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.analysisFromQuery(w, r)
	if !ok {
		return
	}

	html, err := report.GenerateHTML(analysis, report.DefaultReportConfig())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}

// analysisFromQuery runs a shallow analysis from GET query parameters.
// It writes the error response itself and reports success via ok.
func (s *Server) analysisFromQuery(w http.ResponseWriter, r *http.Request) (*models.Analysis, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	analysis, err := s.runAnalysis(ctx, AnalyzeRequest{
		Query:  q,
		Window: r.URL.Query().Get("window"),
		Max:    s.clampMax(atoiOrZero(r.URL.Query().Get("max"))),
	})
	if err != nil {
		writeFetchError(w, err)
		return nil, false
	}
	return analysis, true
}

// runAnalysis fetches articles for the request and scores them, deeply
// when asked. This backs the analyze endpoints, the chart and report
// renderers, and the CLI.
func (s *Server) runAnalysis(ctx context.Context, req AnalyzeRequest) (*models.Analysis, error) {
	start := time.Now()

	result, err := s.registry.FetchWithFallback(ctx, provider.ModelNewsSearch, req.searchParams())
	if err != nil {
		return nil, err
	}
	articles := articlesFrom(result)

	mode := models.AnalysisModeShallow
	var scored []models.ScoredArticle
	if req.Deep {
		mode = models.AnalysisModeDeep
		scored = s.scoreDeep(ctx, articles)
	} else {
		scored = sentiment.ScoreArticles(s.scorer, articles)
	}

	return &models.Analysis{
		Query:      req.Query,
		Window:     windowOrAny(req.Window),
		Provider:   result.Provider,
		Mode:       mode,
		Articles:   scored,
		Summary:    sentiment.Summarize(scored),
		AnalyzedAt: time.Now().UTC(),
		ElapsedMS:  time.Since(start).Milliseconds(),
	}, nil
}

// scoreDeep fetches each article page concurrently and scores the
// extracted body text. Pages that cannot be fetched degrade to the
// listing text, so deep mode never fails the whole request.
func (s *Server) scoreDeep(ctx context.Context, articles []models.Article) []models.ScoredArticle {
	limit := s.cfg.Analysis.ConcurrentFetches
	if limit < 1 {
		limit = 5
	}

	texts := make([]string, len(articles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, a := range articles {
		g.Go(func() error {
			texts[i] = extract.TextOrFallback(gctx, a.URL, a.Text())
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	scored := make([]models.ScoredArticle, 0, len(articles))
	for i, a := range articles {
		res := s.scorer.Score(texts[i])
		scored = append(scored, models.ScoredArticle{
			Article:    a,
			Sentiment:  res.Label,
			Score:      res.Score,
			Confidence: res.Confidence,
		})
	}
	return scored
}

// fetchScored fetches articles for a model and scores them shallowly.
func (s *Server) fetchScored(ctx context.Context, model provider.ModelType, params provider.QueryParams) (*provider.FetchResult, []models.ScoredArticle, error) {
	result, err := s.registry.FetchWithFallback(ctx, model, params)
	if err != nil {
		return nil, nil, err
	}
	return result, sentiment.ScoreArticles(s.scorer, articlesFrom(result)), nil
}

// ============================================================
// Helpers
// ============================================================

// searchParams converts the request into provider query parameters.
func (req AnalyzeRequest) searchParams() provider.QueryParams {
	params := provider.QueryParams{provider.ParamQuery: req.Query}
	if req.Window != "" {
		params[provider.ParamFrom] = req.Window
	}
	if req.Max > 0 {
		params[provider.ParamMax] = strconv.Itoa(req.Max)
	}
	if req.Provider != "" {
		params[provider.ParamProvider] = req.Provider
	}
	return params
}

// clampMax applies the article count bounds, falling back to the
// configured default when n is unset.
func (s *Server) clampMax(n int) int {
	if n == 0 {
		n = s.cfg.News.MaxArticles
	}
	if n < 1 {
		n = 1
	}
	if n > 20 {
		n = 20
	}
	return n
}

func windowOrAny(window string) string {
	if strings.TrimSpace(window) == "" {
		return provider.WindowAny
	}
	return window
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// articlesFrom extracts the article slice from a fetch result.
func articlesFrom(res *provider.FetchResult) []models.Article {
	if articles, ok := res.Data.([]models.Article); ok {
		return articles
	}
	return nil
}

// writeFetchError maps provider errors onto HTTP statuses: bad
// parameters are the caller's fault, anything else means no upstream
// source could serve the request.
func writeFetchError(w http.ResponseWriter, err error) {
	var missing *provider.ErrMissingParam
	if errors.As(err, &missing) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
