package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"

	"maqsad/pkg/app"
	"maqsad/pkg/db"
	"maqsad/pkg/scheduler"
)

const appName = "maqsad"

var (
	fs            = flag.NewFlagSet(appName, flag.ExitOnError)
	flHost        = fs.String("host", envString("HOST", "localhost"), "http listen host")
	flPort        = fs.Int("port", 8075, "http listen port")
	flDevel       = fs.Bool("devel", false, "devel mode")
	flJSONLogs    = fs.Bool("json", false, "use json for logs output")
	flDBAddr      = fs.String("db-addr", envString("DB_ADDR", "localhost:5432"), "postgresql address")
	flDBUser      = fs.String("db-user", envString("DB_USER", "postgres"), "postgresql user")
	flDBPassword  = fs.String("db-password", envString("DB_PASSWORD", "postgres"), "postgresql password")
	flDBName      = fs.String("db-name", envString("DB_NAME", "maqsad"), "postgresql database")
	flTgToken     = fs.String("tg-token", envString("TELEGRAM_TOKEN", ""), "telegram bot token")
	flTgDebug     = fs.Bool("tg-debug", false, "telegram bot debug mode")
	flLLMEndpoint = fs.String("llm-endpoint", envString("LLM_ENDPOINT", "https://api.groq.com/openai/v1/chat/completions"), "chat completion endpoint")
	flLLMToken    = fs.String("llm-token", envString("LLM_TOKEN", ""), "chat completion api token")
	flLLMPrimary  = fs.String("llm-primary", envString("LLM_PRIMARY", "llama-3.3-70b-versatile"), "primary extraction model")
	flLLMSecond   = fs.String("llm-secondary", envString("LLM_SECONDARY", "llama-3.1-8b-instant"), "secondary extraction model")
	flSpeechURL   = fs.String("speech-url", envString("SPEECH_URL", ""), "whisper http endpoint")
	flSpeechToken = fs.String("speech-token", envString("SPEECH_TOKEN", ""), "whisper http token")
	flSpeechModel = fs.String("speech-model", envString("SPEECH_MODEL", "whisper-large-v3"), "whisper model")
	flSpeechDir   = fs.String("speech-dir", envString("SPEECH_DIR", "/tmp/whisper"), "local whisper work dir")
	flBaseCur     = fs.String("base-currency", envString("BASE_CURRENCY", "UZS"), "reporting currency")
	flRates       = fs.String("fallback-rates", envString("FALLBACK_RATES", "USD=12800,EUR=13900,RUB=140"), "fallback rates to base, CODE=RATE comma-separated")

	flRemindTick   = fs.Duration("remind-tick", envDuration("REMIND_TICK", time.Minute), "reminder scan period")
	flRemindWindow = fs.Duration("remind-window", envDuration("REMIND_WINDOW", 5*time.Minute), "reminder firing tolerance")
	flRemindWarn   = fs.Duration("remind-warning", envDuration("REMIND_WARNING", 30*time.Minute), "reminder early-warning offset")
)

func main() {
	_ = godotenv.Load()
	exitOnError(fs.Parse(os.Args[1:]))

	sl := embedlog.NewLogger(*flJSONLogs, *flDevel)
	ctx := context.Background()

	cfg := newConfig()

	dbc := db.New(cfg.Database)
	v, err := dbc.Version(ctx)
	exitOnError(err)
	sl.Print(ctx, "connected to postgresql", "version", v)

	a, err := app.New(appName, sl, cfg, dbc)
	exitOnError(err)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		sl.Print(ctx, "shutting down", "app", appName)
		if err := a.Shutdown(5 * time.Second); err != nil {
			sl.Error(ctx, "failed to shutdown gracefully", "err", err)
		}
	}()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError(err)
	}
}

func newConfig() app.Config {
	cfg := app.Config{
		Database: &pg.Options{
			Addr:     *flDBAddr,
			User:     *flDBUser,
			Password: *flDBPassword,
			Database: *flDBName,
			PoolSize: 10,
		},
		SessionTTL: 30 * time.Minute,
	}

	cfg.Server.Host = *flHost
	cfg.Server.Port = *flPort
	cfg.Server.IsDevel = *flDevel

	cfg.Telegram.Token = *flTgToken
	cfg.Telegram.Debug = *flTgDebug

	cfg.Speech.WhisperURL = *flSpeechURL
	cfg.Speech.WhisperToken = *flSpeechToken
	cfg.Speech.WhisperModel = *flSpeechModel
	cfg.Speech.WorkDir = *flSpeechDir
	cfg.Speech.Languages = []string{"uz", "ru", "en"}
	cfg.Speech.MaxClip = 2 * time.Minute

	cfg.LLM.Endpoint = *flLLMEndpoint
	cfg.LLM.Token = *flLLMToken
	cfg.LLM.PrimaryModel = *flLLMPrimary
	cfg.LLM.SecondaryModel = *flLLMSecond

	cfg.Finance.BaseCurrency = *flBaseCur
	rates, err := parseRates(*flRates)
	exitOnError(err)
	cfg.Finance.FallbackRates = rates

	cfg.Scheduler = scheduler.Config{
		Tick:    *flRemindTick,
		Window:  *flRemindWindow,
		Warning: *flRemindWarn,
	}

	return cfg
}

// parseRates parses "USD=12800,EUR=13900" into a rate map.
func parseRates(s string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	if s == "" {
		return rates, nil
	}

	for _, pair := range strings.Split(s, ",") {
		code, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("bad rate pair %q", pair)
		}
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("bad rate value %q: %w", pair, err)
		}
		rates[strings.ToUpper(code)] = rate
	}

	return rates, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
