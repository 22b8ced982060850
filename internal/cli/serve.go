package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrmosaic/pkg/buildinfo"
	"github.com/matzehuels/qrmosaic/pkg/cache"
	"github.com/matzehuels/qrmosaic/pkg/config"
	"github.com/matzehuels/qrmosaic/pkg/errors"
	"github.com/matzehuels/qrmosaic/pkg/observability"
	"github.com/matzehuels/qrmosaic/pkg/pipeline"
	"github.com/matzehuels/qrmosaic/pkg/render/assets"
	"github.com/matzehuels/qrmosaic/pkg/render/sink"
)

// Limits on per-request geometry overrides. maxServePixels bounds the
// canvas area whatever the payload's module count.
const (
	maxServePixelsPerCell = 100
	maxServeSubCells      = 8
	maxServePixels        = 8192 * 8192
	renderTimeout         = 30 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	styleFlags
	addr string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered QR codes over HTTP",
		Long: `Serve rendered QR codes over HTTP.

Endpoints:
  GET /healthz                       liveness check
  GET /qr?data=...&format=png        render data with the configured style

The query may override ppc, sub, border and level. Rendered artifacts are
cached in memory.`,
		Example: `  qrmosaic serve --addr :8080 -c styles/glyph.toml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := opts.resolve(cmd, c.Fs)
			if err != nil {
				return err
			}
			srv, err := newServer(file, c.assetLoader(opts.configPath), c.Logger)
			if err != nil {
				return err
			}
			return srv.listen(cmd.Context(), opts.addr)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	return cmd
}

// server renders codes for HTTP requests with one configured style.
type server struct {
	file   config.File
	loader *assets.Loader
	runner *pipeline.Runner
	logger *log.Logger
}

// newServer decodes the style's assets once; requests reuse them and only
// build a fresh strategy around them.
func newServer(file config.File, loader *assets.Loader, logger *log.Logger) (*server, error) {
	if loader == nil {
		loader = assets.OS()
	}
	loader = loader.Memoized()
	if _, err := file.Strategy(loader); err != nil {
		return nil, err
	}
	if _, err := file.Key(loader); err != nil {
		return nil, err
	}

	keyer := cache.NewScopedKeyer(nil, "serve:")
	return &server{
		file:   file,
		loader: loader,
		runner: pipeline.NewRunner(cache.NewMemoryCache(), keyer, logger),
		logger: logger,
	}, nil
}

// handler returns the HTTP routes.
func (s *server) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
	})
	r.Get("/qr", s.handleQR)
	return r
}

func (s *server) listen(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *server) handleQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := sink.FormatPNG
	if f := q.Get("format"); f != "" {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			writeError(w, err)
			return
		}
		format = parsed
	}

	file, err := s.requestConfig(q.Get("ppc"), q.Get("sub"), q.Get("border"), q.Get("level"))
	if err != nil {
		writeError(w, err)
		return
	}

	// Strategies cache per-pass state, so every request builds its own from
	// the memoized assets.
	strategy, err := file.Strategy(s.loader)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := pipelineOptions(q.Get("data"), file, s.loader)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}
	opts.MaxPixels = maxServePixels
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	result, err := s.runner.Execute(ctx, opts, strategy)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// requestConfig applies query overrides to the server's config.
func (s *server) requestConfig(ppc, sub, border, level string) (config.File, error) {
	file := s.file
	var err error
	if ppc != "" {
		if file.PixelsPerCell, err = queryInt("ppc", ppc, 1, maxServePixelsPerCell); err != nil {
			return config.File{}, err
		}
	}
	if sub != "" {
		if file.SubCells, err = queryInt("sub", sub, 1, maxServeSubCells); err != nil {
			return config.File{}, err
		}
	}
	if border != "" {
		b, err := queryInt("border", border, 0, 16)
		if err != nil {
			return config.File{}, err
		}
		file.Border = &b
	}
	if level != "" {
		file.Level = level
	}
	if err := file.Validate(); err != nil {
		return config.File{}, err
	}
	return file, nil
}

func queryInt(name, v string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be an integer", name)
	}
	if n < lo || n > hi {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be between %d and %d, got %d", name, lo, hi, n)
	}
	return n, nil
}

// logRequests logs every request and reports it to the HTTP hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidMatrix, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidAsset, errors.ErrCodeFileNotFound:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
