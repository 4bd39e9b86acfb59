package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/landaetal/despensaapp/internal/config"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/infra"
	"github.com/landaetal/despensaapp/internal/router"
	"github.com/landaetal/despensaapp/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.RespaldoDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open local mirror database")
	}
	respaldo, err := estado.NewRespaldoSQL(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare local mirror")
	}

	// Redis drives the mirror worker queue and the ranking cache. Optional:
	// without it the store mirrors synchronously and the cache is skipped.
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, mirroring synchronously")
		rdb = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var espejo estado.EncoladorEspejo
	if rdb != nil {
		espejo = worker.NewDispatcher(rdb)
		worker.StartWorkerPool(ctx, rdb, respaldo, cfg.WorkerPoolSize)
	}

	cliente := estado.NewClienteHTTP(cfg.EstadoBaseURL)
	sesiones := estado.NewSesiones(cliente, respaldo, espejo, cfg.GuardadoRetardo())

	r := router.New(cfg, db, rdb, cliente, sesiones)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("despensaapp listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	// Flush every live session to the local mirror before exit.
	sesiones.CerrarTodas()
	log.Info().Msg("server exited")
}
