package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jonboulle/clockwork"

	"quacker/internal/adapters/sentiment"
	"quacker/internal/adapters/session"
	"quacker/internal/adapters/store"
	"quacker/internal/adapters/web"
	"quacker/internal/config"
	"quacker/internal/usecases"
	"quacker/pkg/log"
	"quacker/pkg/log/transporters"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quacker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, warnings, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(cfg.LogLevel, transporters.NewStdout()).With("service", "quacker")
	log.SetDefault(logger)
	defer logger.Close()
	for _, w := range warnings {
		log.GlobalWarn(w)
	}

	// Load sentiment lexicon (embedded unless overridden)
	lexicon := sentiment.DefaultLexicon()
	if cfg.LexiconPath != "" {
		lexicon, err = sentiment.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}
	}

	clock := clockwork.NewRealClock()

	// Seed feed: file, demo, or nothing
	var seeds config.SeedSet
	switch {
	case cfg.SeedPath != "":
		seeds, err = config.LoadSeeds(cfg.SeedPath, clock.Now())
		if err != nil {
			return fmt.Errorf("load seeds: %w", err)
		}
	case cfg.SeedDemo:
		seeds = config.DemoSeedSet(clock.Now())
	}

	opts := []usecases.Option{
		usecases.WithClock(clock),
		usecases.WithSeeds(seeds.Quacks...),
	}
	if cfg.CurrentUser != "" {
		user, ok := seeds.FindUser(cfg.CurrentUser)
		if !ok {
			user.Handle = cfg.CurrentUser
		}
		opts = append(opts, usecases.WithCurrentUser(user))
	}

	// Initialize the feed core
	users := session.NewUserContext()
	feed, err := usecases.NewFeedCoordinator(store.NewMemoryStore(), sentiment.NewAnalyzer(lexicon), users, opts...)
	if err != nil {
		return fmt.Errorf("init feed: %w", err)
	}

	limiter := web.NewRateLimiter(cfg.PostRateLimit, time.Minute, clock)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go limiter.RunCleanup(5*time.Minute, stopCleanup)

	// Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:               "Quacker",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New(web.RequestIDConfig()))
	app.Use(web.RequestContextMiddleware(users))
	app.Use(web.RequestLoggerMiddleware(clock))

	web.SetupRoutes(app, web.NewHandlers(feed, cfg.AdminReset), limiter)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.GlobalInfo("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.GlobalInfo("starting server", "port", cfg.Port, "quacks", len(feed.Quacks()))
	return app.Listen(":" + cfg.Port)
}
