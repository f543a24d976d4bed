package app

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	monitor "github.com/hypnoglow/go-pg-monitor"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/vmkteam/appkit"
	"github.com/vmkteam/embedlog"
	"github.com/vmkteam/zenrpc/v2"

	"maqsad/pkg/db"
	"maqsad/pkg/extract"
	"maqsad/pkg/maqsad"
	"maqsad/pkg/normalize"
	"maqsad/pkg/scheduler"
	"maqsad/pkg/session"
	"maqsad/pkg/speech"
	"maqsad/pkg/telegram"
	"maqsad/pkg/vt"
)

type Config struct {
	Database *pg.Options
	Server   struct {
		Host    string
		Port    int
		IsDevel bool
	}
	Telegram struct {
		Token string
		Debug bool
	}
	Speech struct {
		WhisperURL   string
		WhisperToken string
		WhisperModel string
		WorkDir      string
		Languages    []string
		MaxClip      time.Duration
	}
	LLM struct {
		Endpoint       string
		Token          string
		PrimaryModel   string
		SecondaryModel string
	}
	Finance struct {
		BaseCurrency  string
		FallbackRates map[string]decimal.Decimal
	}
	Scheduler  scheduler.Config
	SessionTTL time.Duration
}

type App struct {
	embedlog.Logger
	appName   string
	cfg       Config
	db        db.DB
	mon       *monitor.Monitor
	echo      *echo.Echo
	manager   *maqsad.Manager
	sessions  *session.Store
	tgBot     *telegram.Bot
	scheduler *scheduler.Scheduler
	vtsrv     zenrpc.Server
}

func New(appName string, sl embedlog.Logger, cfg Config, dbc db.DB) (*App, error) {
	a := &App{
		appName:  appName,
		cfg:      cfg,
		db:       dbc,
		echo:     appkit.NewEcho(),
		Logger:   sl,
		sessions: session.NewStore(cfg.SessionTTL),
	}

	a.manager = maqsad.NewManager(dbc, maqsad.Config{
		BaseCurrency:  cfg.Finance.BaseCurrency,
		FallbackRates: cfg.Finance.FallbackRates,
	}, sl)

	a.vtsrv = vt.New(dbc, a.manager, sl, cfg.Server.IsDevel)

	if cfg.Telegram.Token != "" {
		transcriber := speech.NewTranscriber([]speech.Provider{
			speech.NewWhisperHTTP(cfg.Speech.WhisperURL, cfg.Speech.WhisperToken, cfg.Speech.WhisperModel, cfg.Speech.MaxClip, 30*time.Second),
			speech.NewWhisperLocal(cfg.Speech.WorkDir, cfg.Speech.MaxClip),
		}, cfg.Speech.Languages, sl)

		extractor := extract.NewExtractor(
			extract.NewClient(cfg.LLM.Endpoint, cfg.LLM.Token, cfg.LLM.PrimaryModel, 30*time.Second),
			extract.NewClient(cfg.LLM.Endpoint, cfg.LLM.Token, cfg.LLM.SecondaryModel, 30*time.Second),
			sl,
		)

		normalizer := normalize.NewNormalizer(cfg.Finance.BaseCurrency, foreignCurrencies(cfg))
		disambiguator := normalize.NewDisambiguator(extractor, normalizer, sl)

		tgBot, err := telegram.New(telegram.Config{
			Token: cfg.Telegram.Token,
			Debug: cfg.Telegram.Debug,
		}, a.manager, transcriber, disambiguator, a.sessions, sl)
		if err != nil {
			return nil, err
		}
		a.tgBot = tgBot

		sc := cfg.Scheduler
		if sc.Tick == 0 {
			sc = scheduler.DefaultConfig()
		}
		a.scheduler = scheduler.New(dbc, sc, tgBot, a.sessions, sl)
	}

	return a, nil
}

// foreignCurrencies returns the accepted non-base currency whitelist.
func foreignCurrencies(cfg Config) []string {
	currencies := make([]string, 0, len(cfg.Finance.FallbackRates))
	for code := range cfg.Finance.FallbackRates {
		currencies = append(currencies, code)
	}
	return currencies
}

// Run is a function that runs application.
func (a *App) Run(ctx context.Context) error {
	a.registerMetrics()
	a.registerHandlers()
	a.registerDebugHandlers()
	a.registerMetadata()

	if a.tgBot != nil {
		go func() {
			if err := a.tgBot.Start(ctx); err != nil {
				a.Error(ctx, "telegram bot error", "err", err)
			}
		}()
		go a.scheduler.Run(ctx)
	}

	return a.runHTTPServer(ctx, a.cfg.Server.Host, a.cfg.Server.Port)
}

// Shutdown is a function that gracefully stops HTTP server.
func (a *App) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.tgBot != nil {
		a.tgBot.Stop(ctx)
	}

	a.mon.Close()

	return a.echo.Shutdown(ctx)
}

// registerMetadata is a function that registers meta info from service.
func (a *App) registerMetadata() {
	services := []appkit.ServiceMetadata{}
	if a.tgBot != nil {
		// the bot and the reminder scheduler run asynchronously
		services = append(services, appkit.NewServiceMetadata("telegram-bot", appkit.MetadataServiceTypeAsync))
		services = append(services, appkit.NewServiceMetadata("reminder-scheduler", appkit.MetadataServiceTypeAsync))
	}

	opts := appkit.MetadataOpts{
		HasPublicAPI:  false,
		HasPrivateAPI: true, // vt admin RPC
		DBs: []appkit.DBMetadata{
			appkit.NewDBMetadata(a.cfg.Database.Database, a.cfg.Database.PoolSize, false),
		},
		Services: services,
	}

	md := appkit.NewMetadataManager(opts)
	md.RegisterMetrics()

	a.echo.GET("/debug/metadata", md.Handler)
}
