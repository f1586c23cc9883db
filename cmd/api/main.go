package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/container"
)

// @title Atarax API
// @version 1.0
// @description Goal-driven training plans.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := container.New(ctx)

	srv := &http.Server{
		Addr:              c.Settings.HTTPAddr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Plan generation can hold a request for minutes.
		WriteTimeout: c.Settings.AITimeout + 30*time.Second,
	}

	go func() {
		config.Logger.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.WithError(err).Error("Graceful shutdown failed")
	}
	if sqlDB, err := config.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
