package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"uav-roster/internal/application/club"
	"uav-roster/internal/infrastructure/metrics"
	"uav-roster/internal/infrastructure/ticket"

	"github.com/gin-gonic/gin"
)

const (
	errCodeBadRequest           = "BAD_REQUEST"
	errCodeValidation           = "VALIDATION_FAILED"
	errCodeNotFound             = "NOT_FOUND"
	errCodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	errCodeImportFailed         = "IMPORT_FAILED"
	errCodePersistence          = "PERSISTENCE_FAILED"
	errCodeInternal             = "INTERNAL_ERROR"

	defaultMaxUploadBytes = 2 << 20
)

// Pinger 為儲存層健康檢查（Postgres / Redis）。
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options 為 Server 的依賴；Tickets 為必要，其餘可省略。
type Options struct {
	Tickets        *ticket.Issuer
	Metrics        *metrics.Recorder
	Logger         *slog.Logger
	Storage        Pinger
	Backend        string
	MaxUploadBytes int64
}

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	engine    *gin.Engine
	svc       *club.Service
	tickets   *ticket.Issuer
	metrics   *metrics.Recorder
	logger    *slog.Logger
	storage   Pinger
	backend   string
	maxUpload int64
}

// NewServer 建立 API 伺服器並註冊路由。
func NewServer(svc *club.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	backend := opts.Backend
	if backend == "" {
		backend = "memory"
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(requestMetrics(opts.Metrics))
	engine.Use(corsMiddleware())

	s := &Server{
		engine:    engine,
		svc:       svc,
		tickets:   opts.Tickets,
		metrics:   opts.Metrics,
		logger:    logger,
		storage:   opts.Storage,
		backend:   backend,
		maxUpload: maxUpload,
	}
	s.registerRoutes()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.engine
}
