package main

import (
	"agendamento/cmd/internal/app"
	"agendamento/cmd/internal/config"
	"agendamento/cmd/internal/domain/database"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	application, err := app.New(cfg, db)
	if err != nil {
		log.Fatal("failed to build application: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go application.LoginLimiter.Janitor(ctx, time.Minute, 3*time.Minute)

	e := application.Echo
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
