package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/axtarget/axtarchat/internal/chat"
	"github.com/axtarget/axtarchat/internal/core"
	"github.com/axtarget/axtarchat/internal/limiter"
	"github.com/axtarget/axtarchat/internal/provider"
	"github.com/axtarget/axtarchat/internal/search"
	"github.com/axtarget/axtarchat/internal/stats"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Gateway{})
}

// Compile-time interface guards.
var (
	_ core.Module       = (*Gateway)(nil)
	_ core.Configurable = (*Gateway)(nil)
	_ core.Provisioner  = (*Gateway)(nil)
	_ core.Validator    = (*Gateway)(nil)
	_ core.Starter      = (*Gateway)(nil)
	_ core.Stopper      = (*Gateway)(nil)
)

// Gateway is the HTTP gateway module. It owns the chat endpoint, the rate
// limiter and the metrics surface. It is a leaf module — nothing imports it.
type Gateway struct {
	config    Config
	appCtx    *core.AppContext
	logger    *slog.Logger
	server    *http.Server
	metrics   *Metrics
	limiter   *limiter.Limiter
	pipeline  *chat.Pipeline
	startedAt time.Time

	// Resolved lazily at Start() via service registry.
	provider provider.Provider
	searcher search.Searcher
	recorder stats.Recorder
}

// ModuleInfo implements core.Module.
func (g *Gateway) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "gateway.http",
		New: func() core.Module { return &Gateway{} },
	}
}

// Configure implements core.Configurable.
func (g *Gateway) Configure(node *yaml.Node) error {
	if err := node.Decode(&g.config); err != nil {
		return err
	}
	g.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (g *Gateway) Provision(ctx *core.AppContext) error {
	g.config.defaults()
	g.appCtx = ctx
	g.logger = ctx.Logger
	g.metrics = NewMetrics()
	g.limiter = limiter.New(limiter.Config{
		Window:      g.config.RateLimit.Window,
		MaxRequests: g.config.RateLimit.MaxRequests,
	})

	// Register services for cross-module discovery.
	ctx.RegisterService("gateway.metrics", g.metrics)
	ctx.RegisterService("chat.limiter", g.limiter)

	return nil
}

// Validate implements core.Validator.
func (g *Gateway) Validate() error {
	if _, err := net.ResolveTCPAddr("tcp", g.config.Bind); err != nil {
		return errors.New("gateway: invalid bind address: " + g.config.Bind)
	}
	return nil
}

// Start implements core.Starter. It resolves dependencies from the service
// registry (lazy binding), assembles the chat pipeline and starts the HTTP
// server.
func (g *Gateway) Start() error {
	// Resolve optional services — graceful degradation if missing.
	if svc, ok := g.appCtx.Service("provider.openai"); ok {
		if p, ok := svc.(provider.Provider); ok {
			g.provider = p
		}
	}
	if svc, ok := g.appCtx.Service("search.duckduckgo"); ok {
		if s, ok := svc.(search.Searcher); ok {
			g.searcher = s
		}
	}
	if svc, ok := g.appCtx.Service("stats.recorder"); ok {
		if r, ok := svc.(stats.Recorder); ok {
			g.recorder = r
		}
	}

	var detector search.IntentDetector
	if g.searcher != nil {
		detector = search.NewKeywordDetector()
	}

	g.pipeline = chat.NewPipeline(chat.Options{
		Provider: g.provider,
		Limiter:  g.limiter,
		Detector: detector,
		Searcher: g.searcher,
		Recorder: g.recorder,
		Logger:   g.logger,
	})

	g.startedAt = time.Now()

	mux := g.buildRouter()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      mux,
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop implements core.Stopper. Graceful shutdown with configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
