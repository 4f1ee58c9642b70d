// Command scribed serves the transcription pipeline over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/scribe/assemble"
	"github.com/skillsenselab/scribe/config"
	"github.com/skillsenselab/scribe/diarization/pyannote"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/observability"
	"github.com/skillsenselab/scribe/server"
	"github.com/skillsenselab/scribe/transcription/whisper"
)

const serviceVersion = "0.3.0"

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging)
	log := logger.WithComponent("scribed")

	ctx := context.Background()
	shutdown, err := observability.Init(ctx, "scribed", serviceVersion, cfg.Observability)
	if err != nil {
		log.WithError(err).Error("observability init failed")
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.WithError(err).Warn("observability shutdown failed")
		}
	}()

	svc := &server.Service{
		Transcriber: whisper.NewProvider(cfg.Whisper),
		Diarizer:    pyannote.NewProvider(cfg.Pyannote),
		Assembler:   assemble.New(assemble.WithLogger(logger.WithComponent("assemble"))),
		Log:         log,
	}

	srv := server.New(cfg.Server, svc, logger.GetGlobalLogger())
	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Error("server start failed")
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := srv.Stop(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
		os.Exit(1)
	}
	log.Info("stopped")
}
