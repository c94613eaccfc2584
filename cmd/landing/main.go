package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmrmedia/obsidian-landing/handler"
	"github.com/dmrmedia/obsidian-landing/modules/leads"
	"github.com/dmrmedia/obsidian-landing/modules/leads/views"
	"github.com/dmrmedia/obsidian-landing/pkg/clientip"
	"github.com/dmrmedia/obsidian-landing/pkg/config"
	"github.com/dmrmedia/obsidian-landing/pkg/email"
	"github.com/dmrmedia/obsidian-landing/pkg/environment"
	"github.com/dmrmedia/obsidian-landing/pkg/httpserver"
	"github.com/dmrmedia/obsidian-landing/pkg/logger"
	"github.com/dmrmedia/obsidian-landing/pkg/ratelimiter"
	"github.com/dmrmedia/obsidian-landing/pkg/redis"
	"github.com/dmrmedia/obsidian-landing/pkg/requestid"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"obsidian-landing"`
	RateLimit   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("landing server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg    appConfig
		serverCfg httpserver.Config
		leadsCfg  leads.Config
		emailCfg  email.Config
		limitCfg  ratelimiter.Config
		redisCfg  redis.Config
		viewsCfg  views.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&serverCfg),
		config.Load(&leadsCfg),
		config.Load(&emailCfg),
		config.Load(&limitCfg),
		config.Load(&redisCfg),
		config.Load(&viewsCfg),
	); err != nil {
		return err
	}

	env := environment.Parse(appCfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, appCfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var readiness []httpserver.Check
	var store ratelimiter.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		readiness = append(readiness, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		store = ratelimiter.NewRedisStore(client, redisCfg.KeyPrefix)
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		store = mem
	}

	mailer, err := email.NewFromConfig(emailCfg)
	if err != nil {
		return err
	}
	if emailCfg.PostmarkServerToken == "" {
		log.WarnContext(ctx, "postmark not configured, writing emails to disk", slog.String("dir", emailCfg.DevDir))
	}
	if leadsCfg.DestinationURL() == "" {
		log.WarnContext(ctx, "webhook URL not configured, webhook forms will fail")
	}

	content, err := views.LoadContent(viewsCfg.ContentFile)
	if err != nil {
		return err
	}
	pages, err := views.New(content)
	if err != nil {
		return err
	}

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  pages.ErrorPage,
		ErrorToast: pages.ErrorToast,
	})

	opts := []leads.ServiceOption{leads.WithServiceLogger(log)}
	if appCfg.RateLimit {
		limiter, err := ratelimiter.NewBucket(store, limitCfg)
		if err != nil {
			return err
		}
		opts = append(opts, leads.WithRateLimiter(limiter))
	}

	relay := leads.NewRelay(leadsCfg, mailer, leads.WithLogger(log))
	svc := leads.NewService(leadsCfg, relay, pages.Leads(), errorHandler, opts...)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(env),
		middleware.CleanPath,
		middleware.Recoverer,
	)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, readiness...))
	r.Handle("/static/*", http.StripPrefix("/static", pages.Static()))
	r.Mount("/", svc.Handle())

	server := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return server.Run(ctx, r)
}
