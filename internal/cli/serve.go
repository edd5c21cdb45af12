package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/MaxCodeXTC/charticulator/pkg/buildinfo"
	"github.com/MaxCodeXTC/charticulator/pkg/cache"
	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/element"
	cherrors "github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP solve service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solve service",
		Long: `Run the HTTP solve service.

Endpoints:
  POST /solve    solve a chart document (JSON body) and return artifacts
  GET  /classes  list the element class catalog
  GET  /healthz  liveness probe

With --redis (or serve.redis in the config file), solve results are cached
in a shared Redis instance; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if redis == "" {
				redis = c.Config.Serve.Redis
			}
			return c.runServe(cmd.Context(), addr, redis, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address for shared caching, e.g. localhost:6379")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the runner and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	store, err := c.newServeCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	// A shared Redis instance may serve other applications; namespace our keys.
	var keyer cache.Keyer
	if redisAddr != "" {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.routes(runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeCache picks the cache backend for the service.
func (c *CLI) newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr)
	}
	return c.newCache(false)
}

// routes assembles the HTTP handler tree.
func (c *CLI) routes(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/solve", c.handleSolve(runner))
	r.Get("/classes", handleClasses)
	r.Get("/healthz", handleHealthz)

	return r
}

// solveRequest is the POST /solve body.
type solveRequest struct {
	// Document is an inline chart document.
	Document json.RawMessage `json:"document"`

	// Pins are extra constraints applied on top of the document.
	Pins []chart.Constraint `json:"pins,omitempty"`

	// Formats selects the artifacts to return (default: json).
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the solve cache.
	Refresh bool `json:"refresh,omitempty"`
}

// solveResponse is the POST /solve reply. Artifacts are base64-encoded by
// the standard JSON encoding of []byte.
type solveResponse struct {
	DocHash     string            `json:"doc_hash"`
	Variables   int               `json:"variables"`
	Constraints int               `json:"constraints"`
	Hints       []chart.RangeHint `json:"hints,omitempty"`
	CachedSolve bool              `json:"cached_solve"`
	Artifacts   map[string][]byte `json:"artifacts"`
}

func (c *CLI) handleSolve(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req solveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FORMAT", "malformed request body")
			return
		}
		if len(req.Document) == 0 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "document is required")
			return
		}

		opts := pipeline.Options{
			Document: req.Document,
			Pins:     req.Pins,
			Formats:  req.Formats,
			Refresh:  req.Refresh,
			Logger:   c.Logger,
		}
		result, err := runner.Execute(r.Context(), opts)
		if err != nil {
			writeSolveError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, solveResponse{
			DocHash:     result.DocHash,
			Variables:   result.Stats.Variables,
			Constraints: result.Stats.Constraints,
			Hints:       result.Solve.Hints,
			CachedSolve: result.CacheInfo.SolveHit,
			Artifacts:   result.Artifacts,
		})
	}
}

// classInfo describes one catalog entry in the GET /classes reply.
type classInfo struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

func handleClasses(w http.ResponseWriter, r *http.Request) {
	classes := make([]classInfo, 0)
	for _, name := range element.Names() {
		cls, _ := element.Lookup(name)
		info := classInfo{Name: name}
		for _, sp := range cls.Schema().Specs() {
			info.Attributes = append(info.Attributes, sp.Name)
		}
		classes = append(classes, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": classes})
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// writeSolveError maps coded solve errors to HTTP statuses.
func writeSolveError(w http.ResponseWriter, err error) {
	code := cherrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case cherrors.ErrCodeInfeasible:
		status = http.StatusUnprocessableEntity
	case cherrors.ErrCodeInvalidInput, cherrors.ErrCodeInvalidClass, cherrors.ErrCodeInvalidAttribute,
		cherrors.ErrCodeInvalidChart, cherrors.ErrCodeInvalidConstraint, cherrors.ErrCodeInvalidFormat,
		cherrors.ErrCodeUnknownAttribute, cherrors.ErrCodeUninitialized:
		status = http.StatusBadRequest
	case cherrors.ErrCodeNotFound, cherrors.ErrCodeClassNotFound, cherrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	writeError(w, status, string(code), cherrors.UserMessage(err))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
