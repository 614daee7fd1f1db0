package app

import (
	"context"
	"net/http"
	"os"

	authAPI "bingo_caller/internal/api/auth"
	drawAPI "bingo_caller/internal/api/draw"
	wsAPI "bingo_caller/internal/api/ws"
	"bingo_caller/internal/config"
	"bingo_caller/internal/config/env"
	"bingo_caller/internal/console"
	"bingo_caller/internal/events"
	"bingo_caller/internal/feed"
	"bingo_caller/internal/metrics"
	"bingo_caller/internal/middleware"
	"bingo_caller/internal/repository"
	"bingo_caller/internal/repository/journal_repo"
	"bingo_caller/internal/service"
	"bingo_caller/internal/service/auth"
	"bingo_caller/internal/service/draw"
	"bingo_caller/internal/service/journal"
	"bingo_caller/pkg/logs"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"k8s.io/utils/clock"
)

type ServiceProvider struct {
	configPath string

	// Logging
	logCfg config.LogConfig
	logger *logrus.Logger

	// Events and metrics
	hub     *events.Hub
	metrics *metrics.Metrics

	// Draw bits
	drawCfg  config.DrawConfig
	drawServ service.DrawService
	drawHand *drawAPI.Handler
	wsHand   *wsAPI.Handler

	// Host auth, необязательно
	hostCfg       config.HostConfig
	hostCfgLoaded bool
	jwtCfg        config.JWTConfig
	authServ      service.AuthService
	authHand      *authAPI.Handler

	// Journal, необязательно
	pgConfig       config.PGConfig
	pgConfigLoaded bool
	dbClient       *pgxpool.Pool
	txManager      trm.Manager
	journalRepo    repository.DrawJournalRepository
	journalServ    service.JournalService

	// Display feed, необязательно
	feedCfg       config.FeedConfig
	feedCfgLoaded bool
	feedServer    *feed.Server

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router

	unsubscribe []func()
}

func newServiceProvider(configPath string) *ServiceProvider {
	return &ServiceProvider{configPath: configPath}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

// NewLogger Логгер компонента с уровнем из LOG_LEVEL
func (sp *ServiceProvider) NewLogger(owner string) *logrus.Logger {
	logs.SetDefaultLevel(sp.LogCfg().Level())
	return logs.NewLogger(owner)
}

func (sp *ServiceProvider) Logger() *logrus.Logger {
	if sp.logger == nil {
		sp.logger = sp.NewLogger("app")
	}
	return sp.logger
}

func (sp *ServiceProvider) Hub() *events.Hub {
	if sp.hub == nil {
		sp.hub = events.NewHub(sp.NewLogger("events"))
	}
	return sp.hub
}

func (sp *ServiceProvider) Metrics() *metrics.Metrics {
	if sp.metrics == nil {
		sp.metrics = metrics.New()
		sp.unsubscribe = append(sp.unsubscribe, sp.Hub().Subscribe("metrics", sp.metrics.Observe))
	}
	return sp.metrics
}

func (sp *ServiceProvider) DrawCfg() config.DrawConfig {
	if sp.drawCfg == nil {
		cfg, err := env.NewDrawConfigFromYAML(sp.configPath)
		if err != nil {
			panic("failed to get draw config: " + err.Error())
		}
		sp.drawCfg = cfg
	}
	return sp.drawCfg
}

func (sp *ServiceProvider) DrawService() service.DrawService {
	if sp.drawServ == nil {
		cfg := sp.DrawCfg()

		columns, err := draw.NewColumnMap(cfg.Columns())
		if err != nil {
			panic("invalid column bands: " + err.Error())
		}

		rng := draw.SystemRNG()
		if cfg.Seed() != 0 {
			rng = draw.NewSeededRNG(cfg.Seed())
		}

		sp.drawServ = draw.NewDrawService(draw.ServiceDeps{
			RNG:     rng,
			Clock:   clock.RealClock{},
			Columns: columns,
			Timing: draw.Timing{
				Window:   cfg.AnimationWindow(),
				MaxDelay: cfg.MaxTickDelay(),
				MinDelay: cfg.MinTickDelay(),
			},
			Hub:     sp.Hub(),
			Metrics: sp.Metrics(),
			Logger:  sp.NewLogger("draw"),
		})
	}
	return sp.drawServ
}

func (sp *ServiceProvider) DrawHandler() *drawAPI.Handler {
	if sp.drawHand == nil {
		sp.drawHand = drawAPI.NewHandler(drawAPI.HandlerDeps{
			Serv:   sp.DrawService(),
			Logger: sp.NewLogger("api"),
		})
	}
	return sp.drawHand
}

func (sp *ServiceProvider) WSHandler() *wsAPI.Handler {
	if sp.wsHand == nil {
		sp.wsHand = wsAPI.NewHandler(wsAPI.HandlerDeps{
			Serv:   sp.DrawService(),
			Logger: sp.NewLogger("ws"),
		})
	}
	return sp.wsHand
}

// HostCfg nil, если ведущий не настроен: POST /draw открыт
func (sp *ServiceProvider) HostCfg() config.HostConfig {
	if !sp.hostCfgLoaded {
		sp.hostCfgLoaded = true
		cfg, err := env.NewHostConfig()
		if err != nil {
			sp.Logger().Warnf("host auth disabled: %v", err)
			return nil
		}
		sp.hostCfg = cfg
	}
	return sp.hostCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthService() service.AuthService {
	if sp.authServ == nil && sp.HostCfg() != nil {
		sp.authServ = auth.NewAuthService(sp.HostCfg(), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler() *authAPI.Handler {
	if sp.authHand == nil && sp.AuthService() != nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:   sp.AuthService(),
			Logger: sp.NewLogger("auth"),
		})
	}
	return sp.authHand
}

// PgConfig nil, если журнал не настроен
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if !sp.pgConfigLoaded {
		sp.pgConfigLoaded = true
		cfg, err := env.NewPGConfig()
		if err != nil {
			sp.Logger().Warnf("draw journal disabled: %v", err)
			return nil
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			dbc.Close()
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) JournalRepository(ctx context.Context) repository.DrawJournalRepository {
	if sp.journalRepo == nil {
		sp.journalRepo = journal_repo.NewJournalRepository(sp.DBClient(ctx))
	}
	return sp.journalRepo
}

// JournalService nil без PG_DSN
func (sp *ServiceProvider) JournalService(ctx context.Context) service.JournalService {
	if sp.journalServ == nil && sp.PgConfig() != nil {
		sp.journalServ = journal.NewJournalService(
			sp.JournalRepository(ctx),
			sp.TXManager(ctx),
			sp.NewLogger("journal"),
		)
	}
	return sp.journalServ
}

// FeedCfg nil, если табло по TCP не настроено
func (sp *ServiceProvider) FeedCfg() config.FeedConfig {
	if !sp.feedCfgLoaded {
		sp.feedCfgLoaded = true
		cfg, err := env.NewFeedConfig()
		if err != nil {
			sp.Logger().Warnf("display feed disabled: %v", err)
			return nil
		}
		sp.feedCfg = cfg
	}
	return sp.feedCfg
}

func (sp *ServiceProvider) FeedServer() *feed.Server {
	if sp.feedServer == nil && sp.FeedCfg() != nil {
		srv, err := feed.NewServer(feed.ServerDeps{
			Address: sp.FeedCfg().Address(),
			Workers: sp.FeedCfg().Workers(),
			Serv:    sp.DrawService(),
			Logger:  sp.NewLogger("feed"),
		})
		if err != nil {
			panic("failed to create feed server: " + err.Error())
		}
		sp.feedServer = srv
	}
	return sp.feedServer
}

func (sp *ServiceProvider) Console() *console.Console {
	return console.New(console.Deps{
		Serv:   sp.DrawService(),
		In:     os.Stdin,
		Out:    os.Stdout,
		Logger: sp.NewLogger("console"),
	})
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router() chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Draw endpoints
		drawHandler := sp.DrawHandler()
		r.Get("/state", drawHandler.State)
		r.Get("/history", drawHandler.History)
		r.Get("/columns/{number}", drawHandler.Column)
		r.Group(func(rr chi.Router) {
			if authServ := sp.AuthService(); authServ != nil {
				rr.Use(middleware.RequireHost(authServ, sp.NewLogger("auth")))
			}
			rr.Post("/draw", drawHandler.Draw)
		})

		// Host endpoints
		if authHandler := sp.AuthHandler(); authHandler != nil {
			r.Post("/auth/login", authHandler.Login)
		}

		r.Method(http.MethodGet, "/ws", sp.WSHandler().Serve())
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(sp.Metrics().Registry(), promhttp.HandlerOpts{}))

		sp.router = r
	}

	return sp.router
}

// Close Отписать служебных подписчиков и закрыть соединения
func (sp *ServiceProvider) Close() error {
	var err error
	for _, unsubscribe := range sp.unsubscribe {
		unsubscribe()
	}
	sp.unsubscribe = nil

	if sp.feedServer != nil {
		err = multierr.Append(err, sp.feedServer.Close())
	}
	if sp.hub != nil {
		sp.hub.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	return err
}
