package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brimdata/serql/compiler"
	"github.com/gorilla/mux"
	"github.com/paulbellamy/ratecounter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const (
	DefaultCacheSize = 1024
	RequestIDHeader  = "X-Request-ID"
)

type Config struct {
	// CacheSize is the number of compiled plans kept.  Zero means
	// DefaultCacheSize and a negative value disables the cache.
	CacheSize int `yaml:"cache_size"`
	// CORSAllowedOrigins defaults to all origins.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	MaxDepth           int      `yaml:"max_depth"`
	Version            string   `yaml:"-"`

	Logger *zap.Logger `yaml:"-"`
	// CompileLogger receives the compiler's per-query logs.  It
	// defaults to a logger named "compiler" under Logger.
	CompileLogger *zap.Logger          `yaml:"-"`
	Registry      *prometheus.Registry `yaml:"-"`
}

type Core struct {
	compiler *compiler.Compiler
	conf     Config
	handler  http.Handler
	logger   *zap.Logger
	rate     *ratecounter.RateCounter
	registry *prometheus.Registry
	router   *mux.Router
}

func NewCore(ctx context.Context, conf Config) (*Core, error) {
	if conf.Logger == nil {
		conf.Logger = zap.NewNop()
	}
	if conf.CompileLogger == nil {
		conf.CompileLogger = conf.Logger.Named("compiler")
	}
	if conf.Version == "" {
		conf.Version = "unknown"
	}
	registry := conf.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(prometheus.NewGoCollector())
	}
	var cache *compiler.Cache
	if conf.CacheSize >= 0 {
		size := conf.CacheSize
		if size == 0 {
			size = DefaultCacheSize
		}
		var err error
		if cache, err = compiler.NewCache(size, registry); err != nil {
			return nil, err
		}
	}
	durations := newDurationHistogram()
	if err := registry.Register(durations); err != nil {
		return nil, err
	}
	router := mux.NewRouter()
	router.Use(withRequestID, instrument(conf.Logger, durations), recoverPanics(conf.Logger))
	c := &Core{
		compiler: &compiler.Compiler{
			Logger:   conf.CompileLogger,
			Cache:    cache,
			MaxDepth: conf.MaxDepth,
		},
		conf:     conf,
		logger:   conf.Logger,
		rate:     ratecounter.NewRateCounter(time.Minute),
		registry: registry,
		router:   router,
	}
	c.addRoutes()
	c.handler = cors.New(cors.Options{
		AllowedOrigins: conf.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler(router)
	c.logger.Info("Started", zap.Bool("cache", cache != nil), zap.String("version", conf.Version))
	return c, nil
}

func (c *Core) addRoutes() {
	c.router.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	c.handle("/compile", handleCompile).Methods("POST")
	c.handle("/status", handleStatus).Methods("GET")
	c.handle("/version", handleVersion).Methods("GET")
}

func (c *Core) handle(path string, f func(*Core, *ResponseWriter, *Request)) *mux.Route {
	return c.router.Handle(path, c.httpHandler(f))
}

func (c *Core) httpHandler(f func(*Core, *ResponseWriter, *Request)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, req := newRequest(w, r, c)
		f(c, res, req)
	})
}

func (c *Core) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Core) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.handler.ServeHTTP(w, r)
}

func (c *Core) Shutdown() {
	c.logger.Info("Shutdown")
}

// ListenAndServe serves c on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, c *Core) error {
	srv := &http.Server{Addr: addr, Handler: c}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	c.logger.Info("Listening", zap.String("addr", addr))
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	err := srv.Shutdown(context.Background())
	c.Shutdown()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}
