// Command votesim runs a configured Monte-Carlo voting-method simulation
// and writes its results to a columnar output file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/votesim/internal/config"
	"github.com/freeeve/votesim/internal/logging"
	"github.com/freeeve/votesim/internal/orchestrator"
	"github.com/freeeve/votesim/internal/progress"
)

func main() {
	var (
		configPath string
		dev        bool
	)
	flag.StringVar(&configPath, "config", "", "path to the run's YAML configuration file")
	flag.BoolVar(&dev, "dev", false, "use colorized console logging instead of JSON")
	flag.Parse()

	if configPath == "" {
		fmt.Fprintln(os.Stderr, "votesim: -config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Init("info", dev)
		log.Error().Err(err).Msg("loading configuration")
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel, dev)
	log.Info().Str("config", configPath).Int("trials", cfg.Trials).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var hub *progress.Hub
	if cfg.ProgressAddr != "" {
		hub = progress.NewHub(time.Now())
		go func() {
			if err := progress.Serve(ctx, cfg.ProgressAddr, hub); err != nil {
				log.Error().Err(err).Msg("progress server stopped")
			}
		}()
		log.Info().Str("addr", cfg.ProgressAddr).Msg("progress websocket listening at /progress")
	}

	orch := orchestrator.New(cfg, hub)
	if err := orch.Run(ctx); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}
