package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/14kear/csi-portal/internal/app"
	"github.com/14kear/csi-portal/internal/config"
	"github.com/14kear/csi-portal/utils"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

func main() {
	flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad()

	log := utils.New(cfg.Env)

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := application.HTTPServer.Run(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("HTTP server closed gracefully")
			} else {
				log.Error("failed to run HTTP server", sl.Err(err))
				os.Exit(1)
			}
		}
	}()
	application.Start()

	log.Info("CSI portal started", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTP.Port))

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop application", sl.Err(err))
		os.Exit(1)
	}
}
