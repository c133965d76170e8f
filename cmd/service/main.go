package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/kgzivf/blogbackend/internal"
	"github.com/kgzivf/blogbackend/internal/config"
	"github.com/kgzivf/blogbackend/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const serviceName = "blog-backend"

// secrets never live in config.toml
type secrets struct {
	adminKeyHash     string
	redisPassword    string
	honeycombEnabled bool
}

func readSecrets(cfg *config.Config) secrets {
	s := secrets{
		adminKeyHash:     os.Getenv("BLOG_ADMIN_KEY_HASH"),
		redisPassword:    os.Getenv("REDIS_PASS"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}

	if s.adminKeyHash == "" {
		log.Errorln("BLOG_ADMIN_KEY_HASH not set, admin endpoints are locked (blogctl hash-key prints one)")
	}
	if cfg.Backend == config.BackendREST && cfg.REST.AnonKey == "" {
		log.Errorln("SUPABASE_ANON_KEY not set, rest backend requests will be rejected")
	}
	if cfg.RedisHost != "" && s.redisPassword == "" {
		log.Warnln("REDIS_PASS not set")
	}
	if s.honeycombEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_ENABLED is set but HONEYCOMB_API_KEY is not")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Debugf("OTEL_SERVICE_NAME not set, traces use [%s]", serviceName)
	}

	return s
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("load env file %s: %s", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogPath:       cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		ServiceName:   serviceName,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	})
	log.Infof("starting %s, env [%s], backend [%s], deployment [%s]", serviceName, *env, cfg.Backend, cfg.Deployment)

	sec := readSecrets(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			AdminKeyHash:            sec.adminKeyHash,
			RedisPassword:           sec.redisPassword,
			HoneycombTracingEnabled: sec.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")

	server.GracefulShutdown()
}
