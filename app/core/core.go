package core

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sproutplan/sproutplan/app/core/srv"
	"github.com/sproutplan/sproutplan/app/store/sqlstore"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

const defaultTokenTTL = 72 * time.Hour

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores     *sqlstore.Provider
	cache      types.Cache
	httpEngine *gin.Engine

	metrics   *Metrics
	limiter   *GenerateLimiter
	semaphore *Semaphore
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		metrics:    NewMetrics("sprout", "core"),
		httpEngine: gin.New(),
		limiter:    NewGenerateLimiter(cfg.RateLimit.GeneratePerMinute),
		semaphore:  NewSemaphore(cfg.Semaphore.GenerateMaxConcurrency),
	}

	setupSqlStore(core)
	core.cache = NewCache(cfg.Redis)

	core.srv = srv.SetupSrvs(srv.ApplyAI(cfg.AI))

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	if err := core.stores.Install(); err != nil {
		panic(err)
	}
	slog.Info("sql store ready")
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) Cache() types.Cache {
	return s.cache
}

func (s *Core) GenerateLimiter() *GenerateLimiter {
	return s.limiter
}

func (s *Core) Semaphore() *Semaphore {
	return s.semaphore
}

func (s *Core) TokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTLHours > 0 {
		return time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	}
	return defaultTokenTTL
}
