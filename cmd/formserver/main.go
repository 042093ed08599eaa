// Command formserver serves the form schemas found in a directory over
// HTTP, with DataStar streaming of validation messages.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formhttp"
	"github.com/dmitrymomot/formkit/pkg/locale"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

type serverConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL"`
	Addr            string        `env:"FORMSERVER_ADDR" envDefault:":8080"`
	SchemaDir       string        `env:"FORMSERVER_SCHEMA_DIR" envDefault:"./forms"`
	LocaleDir       string        `env:"FORMSERVER_LOCALE_DIR"`
	FallbackLang    string        `env:"FORMSERVER_FALLBACK_LANG" envDefault:"en"`
	ReadTimeout     time.Duration `env:"FORMSERVER_READ_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"FORMSERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"FORMSERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load[serverConfig](config.WithOptionalEnvFiles(".env"))
	if err != nil {
		return err
	}
	formCfg, err := config.Load[form.Config]()
	if err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "formserver"),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	log := logger.New(logOpts...)
	slog.SetDefault(log)

	forms, err := schema.LoadDir(ctx, cfg.SchemaDir)
	if err != nil {
		return err
	}
	if len(forms) == 0 {
		return fmt.Errorf("no form schemas in %s", cfg.SchemaDir)
	}

	opts := []formhttp.Option{
		formhttp.WithLogger(log),
		formhttp.WithSessionOptions(form.WithConfig(formCfg)),
	}
	if cfg.LocaleDir != "" {
		catalog, err := locale.LoadDir(ctx, cfg.LocaleDir, locale.WithFallback(cfg.FallbackLang))
		if err != nil {
			return err
		}
		opts = append(opts, formhttp.WithCatalog(catalog))
		log.Info("message catalogs loaded", slog.Any("languages", catalog.Languages()))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	formhttp.New(forms, opts...).Routes(r)

	// No write timeout: the message stream is long-lived.
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     r,
		ReadTimeout: cfg.ReadTimeout,
		IdleTimeout: cfg.IdleTimeout,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("formserver started", slog.String("addr", cfg.Addr), slog.Int("forms", len(forms)))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("formserver shutdown", logger.Error(err))
		return err
	}
	log.Info("formserver stopped")
	return nil
}
