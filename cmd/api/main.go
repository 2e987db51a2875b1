package main

import (
	"net/http"
	"os"
	"time"

	"pawpal-planner/internal/platform/config"
	"pawpal-planner/internal/platform/logger"
	"pawpal-planner/internal/router"
)

func main() {
	env, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(env.LogLevel),
		Format: logger.ParseFormat(env.LogFormat),
		App:    env.AppName,
	})

	r := router.NewRouter(router.Options{Env: env, Log: log})

	addr := ":" + env.HTTPPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "storage": env.StorageDriver})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
