// Command server is the gateway's entrypoint: it loads configuration,
// wires the shared credential/orchestrator/server components, and serves
// the gin.Engine until an interrupt or terminate signal arrives.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"credpool/internal/config"
	"credpool/internal/constants"
	"credpool/internal/credential"
	"credpool/internal/logging"
	"credpool/internal/orchestrator"
	"credpool/internal/server"
	"credpool/internal/upstream"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging regardless of configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	logging.Setup(cfg)

	log.WithField("config", *configPath).Info("starting credpool gateway")

	reg := credential.NewRegistry()
	sel := credential.NewSelector(reg, credential.Policy(cfg.SelectionPolicy))
	healthCfg := credential.HealthConfig{
		FailureThreshold:      cfg.FailureThreshold,
		CooldownDuration:      cfg.CooldownDuration,
		ProbesRequiredToClose: cfg.ProbesToClose,
	}
	client := upstream.New(cfg)
	o := orchestrator.New(reg, sel, client, healthCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := credential.NewSweeper(reg, constants.SweepInterval, constants.CredentialIdleTTL)
	go sweeper.Run(ctx)

	watcher, err := config.WatchFile(cfg, func(reloaded *config.Config) {
		logging.Setup(reloaded)
		sel.SetPolicy(credential.Policy(reloaded.SelectionPolicy))
		log.Info("applied reloaded configuration")
	})
	if err != nil {
		log.WithError(err).Warn("configuration hot-reload disabled")
	}
	if watcher != nil {
		defer watcher.Close()
	}

	engine := server.Build(cfg, reg, o)
	httpSrv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: engine,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("gateway listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("gateway server stopped unexpectedly")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown did not complete cleanly")
	}
	log.Info("gateway stopped")
}
