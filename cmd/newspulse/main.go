// News Pulse — sentiment-aware news explorer.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/newspulse/newspulse/api"
	"github.com/newspulse/newspulse/internal/analysis/extract"
	"github.com/newspulse/newspulse/internal/analysis/sentiment"
	"github.com/newspulse/newspulse/internal/config"
	"github.com/newspulse/newspulse/internal/logging"
	"github.com/newspulse/newspulse/internal/provider"
	"github.com/newspulse/newspulse/internal/providers"
	"github.com/newspulse/newspulse/internal/report"
	"github.com/newspulse/newspulse/pkg/models"
	"github.com/newspulse/newspulse/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set up by the root command.
var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newspulse",
	Short: "News Pulse — sentiment-aware news explorer",
	Long: `News Pulse fetches headlines from GNews or RSS feeds, scores each
one as positive, neutral, or negative, and serves the results through a
CLI, an HTTP API, and an embedded web dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			level = override
		}
		log = logging.Setup(level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(headlinesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("News Pulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Fetch and score news for a query",
	Long: `Fetch articles matching the query, score each one, and print a
sentiment report. With --deep the article pages are fetched and their
body text is scored instead of the headline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(args[0])
		window, _ := cmd.Flags().GetString("window")
		max, _ := cmd.Flags().GetInt("max")
		deep, _ := cmd.Flags().GetBool("deep")
		htmlOut, _ := cmd.Flags().GetString("html")
		pdfOut, _ := cmd.Flags().GetString("pdf")

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		analysis, err := runAnalysis(ctx, query, window, max, deep)
		if err != nil {
			return err
		}

		reportCfg := report.DefaultReportConfig()

		if htmlOut != "" || pdfOut != "" {
			html, err := report.GenerateHTML(analysis, reportCfg)
			if err != nil {
				return err
			}
			if htmlOut != "" {
				if err := os.WriteFile(htmlOut, []byte(html), 0o644); err != nil {
					return fmt.Errorf("write HTML report: %w", err)
				}
				fmt.Printf("HTML report written to %s\n", htmlOut)
			}
			if pdfOut != "" {
				pdfCfg := report.DefaultPDFConfig()
				pdfCfg.OutputPath = pdfOut
				if err := report.GeneratePDF(html, pdfCfg); err != nil {
					return fmt.Errorf("write PDF report: %w", err)
				}
				fmt.Printf("PDF report written to %s\n", pdfOut)
			}
			return nil
		}

		text, err := report.GenerateText(analysis, reportCfg)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("window", "any", "publication window: any, day, week")
	analyzeCmd.Flags().Int("max", 0, "max articles (1-20, default from config)")
	analyzeCmd.Flags().Bool("deep", false, "fetch article pages and score body text")
	analyzeCmd.Flags().String("html", "", "write an HTML report to this path")
	analyzeCmd.Flags().String("pdf", "", "write a PDF report to this path (needs wkhtmltopdf or chromium)")
}

// --- Headlines Command ---

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Show scored top headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		country, _ := cmd.Flags().GetString("country")
		max, _ := cmd.Flags().GetInt("max")
		providerName, _ := cmd.Flags().GetString("provider")

		reg, err := providers.RegisterAll(cfg)
		if err != nil {
			return err
		}
		scorer := sentiment.New(cfg.Sentiment.Engine, log)

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		params := provider.QueryParams{
			provider.ParamMax: strconv.Itoa(clampMax(max)),
		}
		if category != "" {
			params[provider.ParamCategory] = category
		}
		if country != "" {
			params[provider.ParamCountry] = country
		}
		if providerName != "" {
			params[provider.ParamProvider] = providerName
		}

		result, err := reg.FetchWithFallback(ctx, provider.ModelTopHeadlines, params)
		if err != nil {
			return err
		}
		articles, _ := result.Data.([]models.Article)
		scored := sentiment.ScoreArticles(scorer, articles)

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "SENTIMENT\tSCORE\tHEADLINE\tSOURCE\tAGE\n")
		for _, a := range scored {
			fmt.Fprintf(w, "%s\t%+.2f\t%s\t%s\t%s\n",
				strings.ToUpper(string(a.Sentiment)), a.Score,
				utils.Truncate(a.Title, 70), a.Source,
				utils.RelativeTime(a.PublishedAt, now))
		}
		w.Flush()

		summary := sentiment.Summarize(scored)
		fmt.Printf("\n%d articles from %s — %d positive, %d neutral, %d negative\n",
			summary.Total, result.Provider, summary.Positive, summary.Neutral, summary.Negative)
		return nil
	},
}

func init() {
	headlinesCmd.Flags().String("category", "", "headline category (e.g. technology, business)")
	headlinesCmd.Flags().String("country", "", "two-letter country code")
	headlinesCmd.Flags().Int("max", 0, "max articles (1-20, default from config)")
	headlinesCmd.Flags().String("provider", "", "provider override (gnews, rss)")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server and web dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		api.Version = version

		srv, err := api.NewServer(cfg, log)
		if err != nil {
			return err
		}
		defer srv.Close()

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		log.Info().Str("addr", addr).Msg("starting News Pulse API server")
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  News Pulse — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Time (UTC):    %s\n", time.Now().UTC().Format("02 Jan 2006 15:04:05"))
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    News Provider:    %s\n", cfg.News.Provider)
		fmt.Printf("    Sentiment Engine: %s\n", cfg.Sentiment.Engine)
		fmt.Printf("    Store:            %s\n", cfg.Store.Path)
		fmt.Printf("    API Server:       %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		// API keys status
		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set (rss fallback active)"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-20s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Shared analysis pipeline ---

// runAnalysis fetches and scores articles the same way the API server
// does, without needing the article store.
func runAnalysis(ctx context.Context, query, window string, max int, deep bool) (*models.Analysis, error) {
	start := time.Now()

	reg, err := providers.RegisterAll(cfg)
	if err != nil {
		return nil, err
	}
	scorer := sentiment.New(cfg.Sentiment.Engine, log)

	params := provider.QueryParams{
		provider.ParamQuery: query,
		provider.ParamMax:   strconv.Itoa(clampMax(max)),
	}
	if window != "" && window != provider.WindowAny {
		params[provider.ParamFrom] = window
	}

	result, err := reg.FetchWithFallback(ctx, provider.ModelNewsSearch, params)
	if err != nil {
		return nil, err
	}
	articles, _ := result.Data.([]models.Article)

	mode := models.AnalysisModeShallow
	var scored []models.ScoredArticle
	if deep {
		mode = models.AnalysisModeDeep
		scored = scoreDeep(ctx, scorer, articles)
	} else {
		scored = sentiment.ScoreArticles(scorer, articles)
	}

	return &models.Analysis{
		Query:      query,
		Window:     windowOrAny(window),
		Provider:   result.Provider,
		Mode:       mode,
		Articles:   scored,
		Summary:    sentiment.Summarize(scored),
		AnalyzedAt: time.Now().UTC(),
		ElapsedMS:  time.Since(start).Milliseconds(),
	}, nil
}

// scoreDeep fetches article pages with bounded parallelism and scores
// their extracted text, degrading to the listing text on failure.
func scoreDeep(ctx context.Context, scorer sentiment.Scorer, articles []models.Article) []models.ScoredArticle {
	limit := cfg.Analysis.ConcurrentFetches
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
		res := scorer.Score(texts[i])
		scored = append(scored, models.ScoredArticle{
			Article:    a,
			Sentiment:  res.Label,
			Score:      res.Score,
			Confidence: res.Confidence,
		})
	}
	return scored
}

func clampMax(n int) int {
	if n == 0 {
		n = cfg.News.MaxArticles
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
