package app

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rollhouse/internal/audit"
	"rollhouse/internal/cache"
	"rollhouse/internal/chain"
	"rollhouse/internal/config"
	"rollhouse/internal/db"
	"rollhouse/internal/event"
	"rollhouse/internal/games"
	"rollhouse/internal/games/craps"
	"rollhouse/internal/games/sumroll"
	"rollhouse/internal/house"
	"rollhouse/internal/jobs"
	"rollhouse/internal/leaderboard"
	"rollhouse/internal/ledger"
	"rollhouse/internal/logger"
	"rollhouse/internal/monitoring"
	"rollhouse/internal/security"
	"rollhouse/internal/vault"
	wshub "rollhouse/internal/ws"
)

type Server struct {
	app  *fiber.App
	jobs *jobs.Manager
	addr string
}

func NewServer() *Server {
	cfg := config.Load()
	logger.Init()
	monitoring.Init()
	cache.Init(cfg.RedisAddr)

	database := db.Init(cfg.DBPath)

	manifest, err := cfg.LoadManifest()
	if err != nil {
		logger.Log.Fatal("games manifest unreadable", zap.Error(err))
	}
	registerGames(manifest)

	var beacon chain.Beacon = chain.NewLocal()
	if cfg.EVMRPCURL != "" {
		evm, err := chain.NewEVM(cfg.EVMRPCURL)
		if err != nil {
			logger.Log.Error("evm beacon unavailable, using local entropy", zap.Error(err))
		} else {
			beacon = evm
		}
	}

	bus := event.NewBus()
	vaultService := vault.New(database)
	ledgerService := ledger.New(database)
	auditService := audit.New(database)
	houseService := house.New(database, vaultService, ledgerService, auditService, bus, beacon,
		time.Duration(cfg.RoundLifetime)*time.Second)

	board := leaderboard.New()
	board.Restore()
	leaderboard.RegisterConsumers(bus, board)

	hub := wshub.NewHub()
	hub.RegisterConsumers(bus)

	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		monitoring.HttpRequests.WithLabelValues(c.Method(), c.Route().Path).Inc()
		return err
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.Handler))

	api := app.Group("", security.APIKeyGuard(cfg.DevMode))
	house.RegisterRoutes(api, houseService)
	vault.RegisterRoutes(api, vaultService)
	leaderboard.RegisterRoutes(api, board)

	admin := app.Group("/admin", security.AdminGuard())
	house.RegisterAdminRoutes(admin, houseService)
	vault.RegisterAdminRoutes(admin, vaultService, auditService)

	mgr := jobs.New()
	mgr.Register(&jobs.RoundTicker{Service: houseService, Interval: time.Duration(cfg.RoundInterval) * time.Second})
	mgr.Register(&jobs.Sweeper{Service: houseService, Interval: time.Duration(cfg.SweepInterval) * time.Second})
	mgr.Register(&jobs.LeaderboardFlush{Board: board, Interval: time.Minute})

	return &Server{app: app, jobs: mgr, addr: cfg.Addr}
}

// registerGames installs the built-in catalogs, honouring manifest
// overrides.
func registerGames(m *config.Manifest) {
	if spec := m.Spec(string(craps.ID)); spec == nil {
		games.Register(craps.New())
	} else if !spec.Disabled {
		games.Register(craps.NewWithLimits(spec.MinBet, spec.MaxBet))
	}

	if spec := m.Spec(string(sumroll.ID)); spec == nil {
		games.Register(sumroll.New())
	} else if !spec.Disabled {
		games.Register(sumroll.NewWithLimits(spec.MinBet, spec.MaxBet))
	}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.jobs.Start(ctx)

	logger.Log.Info("listening", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}
