package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hbl-card-payment/application"
	"hbl-card-payment/presenters"
	"hbl-card-payment/utils/configs"
	"hbl-card-payment/utils/gpooling"
	logger2 "hbl-card-payment/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic(err)
	}
	lg, err := logger2.NewLogger(config.ENV)
	if err != nil {
		panic(err)
	}
	defer lg.Sync()

	poolGoRoutine, err := gpooling.NewPooling(config.MaxPoolSize, lg)
	if err != nil {
		panic(err)
	}

	app, err := application.NewPaymentApplication(config, lg, poolGoRoutine)
	if err != nil {
		lg.With(zap.Error(err)).Fatal("cannot start payment application")
	}

	if config.ENV == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:    ":" + config.Port,
		Handler: presenters.NewRouter(app, lg, app.WrapperLoggingHTTP()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.With(zap.String("port", config.Port)).Info("starting HTTP server v1...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		lg.Warn("shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.With(zap.Error(err)).Error("http server")
	}

	if err := app.Shutdown(shutdownTimeout); err != nil {
		lg.With(zap.Error(err)).Warn("close event sink")
	}
}
