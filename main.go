package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/kaleem-core/server/internal/assistant"
	"github.com/kaleem-core/server/internal/core"
	"github.com/kaleem-core/server/internal/document"
	"github.com/kaleem-core/server/internal/intake"
	"github.com/kaleem-core/server/internal/server"
	"github.com/kaleem-core/server/internal/storage"
	logx "github.com/kaleem-core/server/pkg/logger"
	pkgredis "github.com/kaleem-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the intake service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Models
	Extraction   assistant.ExtractionModelConfig
	Chat         assistant.ChatModelConfig
	Conversation assistant.ConversationConfig

	// Session lifecycle
	Session struct {
		TTL           string `envconfig:"SESSION_TTL" default:"24h"`
		MirrorTTL     string `envconfig:"SESSION_MIRROR_TTL" default:"168h"`
		MirrorTimeout string `envconfig:"SESSION_MIRROR_TIMEOUT" default:"5s"`
	}

	Server server.Config
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	sessionTTL := mustDuration("SESSION_TTL", cfg.Session.TTL)
	mirrorTTL := mustDuration("SESSION_MIRROR_TTL", cfg.Session.MirrorTTL)
	mirrorTimeout := mustDuration("SESSION_MIRROR_TIMEOUT", cfg.Session.MirrorTimeout)

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise Redis client")
	}
	defer rdb.Close()

	models, err := assistant.NewModels(ctx, assistant.ModelsConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Extraction: cfg.Extraction,
		Chat:       cfg.Chat,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to create chat models")
	}

	mirror := storage.NewRedisMirror(rdb, mirrorTTL)

	machine, err := intake.NewMachine(intake.MachineConfig{
		Store:         intake.NewStore(sessionTTL),
		FollowUps:     assistant.NewFollowUpGenerator(models.Chat),
		Contacts:      assistant.NewExtractor(models.Extraction),
		Texts:         document.Extractor{},
		Responder:     assistant.NewChat(models.Chat, cfg.Conversation),
		Recorder:      mirror,
		MirrorTimeout: mirrorTimeout,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build intake machine")
	}

	srv := server.New(cfg.Server, machine, mirror)
	if err := srv.Listen(); err != nil {
		logx.Fatal().Err(err).Msg("http server stopped")
	}
}

func mustDuration(name, value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		logx.Fatal().Err(err).Str("value", value).Msgf("invalid %s", name)
	}
	return d
}
