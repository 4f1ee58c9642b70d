// Command scribe transcribes an audio file, optionally attributes speakers,
// and writes the transcript as JSON, plain text, or Markdown.
//
//	scribe -o meeting.md --format md --diarize recording.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skillsenselab/scribe/assemble"
	"github.com/skillsenselab/scribe/config"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/diarization/gap"
	"github.com/skillsenselab/scribe/diarization/pyannote"
	"github.com/skillsenselab/scribe/format"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/provider"
	"github.com/skillsenselab/scribe/transcription"
	"github.com/skillsenselab/scribe/transcription/whisper"
)

const exitPreflight = 2

type cliOptions struct {
	output          string
	format          string
	modelSize       string
	language        string
	diarize         bool
	diarizer        string
	wordTimestamps  bool
	assumeYes       bool
	createOutputDir bool
	logLevel        string
	configPath      string
}

func parseFlags() (cliOptions, string) {
	var opts cliOptions
	flag.StringVar(&opts.output, "o", "", "output path (with or without extension), required")
	flag.StringVar(&opts.output, "output", "", "output path (with or without extension), required")
	flag.StringVar(&opts.format, "format", "", "output format: json, txt, md")
	flag.StringVar(&opts.modelSize, "model-size", "", "whisper model size (tiny, base, small, medium, large-v3)")
	flag.StringVar(&opts.language, "language", "", "audio language (auto-detect if not set)")
	flag.BoolVar(&opts.diarize, "diarize", false, "enable speaker diarization")
	flag.StringVar(&opts.diarizer, "diarizer", "", "diarization backend: pyannote, gap")
	flag.BoolVar(&opts.wordTimestamps, "word-timestamps", false, "request word-level timestamps")
	flag.BoolVar(&opts.assumeYes, "y", false, "proceed even if diarization is unavailable")
	flag.BoolVar(&opts.assumeYes, "assume-yes", false, "proceed even if diarization is unavailable")
	flag.BoolVar(&opts.createOutputDir, "create-output-dir", false, "create output directory if missing")
	flag.StringVar(&opts.logLevel, "log-level", "", "logging level: debug, info, warn, error")
	flag.StringVar(&opts.configPath, "config", "", "path to config.yml")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scribe [flags] <input audio file>")
		flag.PrintDefaults()
		os.Exit(exitPreflight)
	}
	return opts, flag.Arg(0)
}

func main() {
	opts, inputPath := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(exitPreflight)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	logger.Init(cfg.Logging)
	log := logger.WithComponent("cli")

	log.Info("starting audio transcription")

	// ---------- Pre-flight: input path ----------
	if info, err := os.Stat(inputPath); err != nil || info.IsDir() {
		log.Error("input file not found", logger.Fields("path", inputPath))
		os.Exit(exitPreflight)
	}

	// ---------- Pre-flight: output format and path ----------
	formatName := opts.format
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	outFormat, err := format.Parse(formatName)
	if err != nil {
		log.WithError(err).Error("unsupported output format")
		os.Exit(exitPreflight)
	}

	if opts.output == "" {
		log.Error("output path is required (-o)")
		os.Exit(exitPreflight)
	}
	outPath := opts.output
	if filepath.Ext(outPath) == "" {
		outPath += outFormat.Extension()
	}

	outDir := filepath.Dir(outPath)
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if opts.createOutputDir || opts.assumeYes {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				log.WithError(err).Error("cannot create output directory")
				os.Exit(exitPreflight)
			}
			log.Info("created output directory", logger.Fields("dir", outDir))
		} else {
			log.Error("output directory does not exist; use --create-output-dir or -y",
				logger.Fields("dir", outDir))
			os.Exit(exitPreflight)
		}
	}

	// ---------- Backend wiring ----------
	transcribers := provider.NewRegistry[transcription.Provider]()
	transcribers.RegisterFactory(whisper.ProviderName, whisper.Factory())

	diarizers := provider.NewRegistry[diarization.Provider]()
	diarizers.RegisterFactory(pyannote.ProviderName, pyannote.Factory())

	transcriber, err := transcribers.Resolve(whisper.ProviderName, map[string]any{
		"url":     cfg.Whisper.URL,
		"model":   cfg.Whisper.Model,
		"timeout": cfg.Whisper.Timeout,
	})
	if err != nil {
		log.WithError(err).Error("cannot create transcription backend")
		os.Exit(1)
	}

	ctx := context.Background()

	// ---------- Pre-flight: diarization availability ----------
	diarizerName := opts.diarizer
	if diarizerName == "" {
		diarizerName = cfg.Diarization.Backend
	}
	diarize := opts.diarize
	var sidecarDiarizer diarization.Provider
	if diarize && diarizerName == pyannote.ProviderName {
		sidecarDiarizer, err = diarizers.Resolve(pyannote.ProviderName, map[string]any{
			"base_url": cfg.Pyannote.BaseURL,
			"timeout":  cfg.Pyannote.Timeout,
		})
		if err == nil && !sidecarDiarizer.IsAvailable(ctx) {
			err = fmt.Errorf("pyannote sidecar is not reachable")
		}
		if err != nil {
			if opts.assumeYes {
				log.WithError(err).Warn("diarization unavailable; proceeding with transcription only")
				sidecarDiarizer = nil
			} else {
				log.WithError(err).Error("diarization requested but unavailable; re-run with -y to proceed without it")
				os.Exit(exitPreflight)
			}
		}
	}

	// ---------- Transcribe ----------
	started := time.Now()
	result, err := transcriber.Transcribe(ctx, transcription.Request{
		AudioPath:      inputPath,
		Language:       opts.language,
		Model:          opts.modelSize,
		WordTimestamps: opts.wordTimestamps || cfg.Output.WordTimestamps,
	})
	if err != nil {
		log.WithError(err).Error("transcription failed")
		os.Exit(1)
	}
	log.Info("transcription complete", logger.Fields(
		logger.FieldSegments, len(result.Segments),
		"language", result.Language,
		logger.FieldDuration, time.Since(started).Milliseconds(),
	))

	// ---------- Diarize ----------
	var diarizationResult *diarization.Result
	if diarize {
		switch {
		case sidecarDiarizer != nil:
			diarizationResult, err = sidecarDiarizer.Diarize(ctx, diarization.Request{AudioPath: inputPath})
			if err != nil {
				log.WithError(err).Warn("diarization failed; transcript will have no speaker labels")
				diarizationResult = nil
			}
		case diarizerName == gap.MethodName:
			diarizationResult = gap.Diarizer{Threshold: cfg.Diarization.GapThreshold}.Diarize(result.Segments)
		}
	}

	// ---------- Assemble and serialize ----------
	assemblerOpts := []assemble.Option{assemble.WithLogger(logger.WithComponent("assemble"))}
	if opts.wordTimestamps || cfg.Output.WordTimestamps {
		assemblerOpts = append(assemblerOpts, assemble.WithWordAlignment())
	}
	tr := assemble.New(assemblerOpts...).Assemble(ctx, *result, diarizationResult, diarize)

	out, err := format.Serialize(tr, outFormat)
	if err != nil {
		log.WithError(err).Error("serialization failed")
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		log.WithError(err).Error("cannot write output file")
		os.Exit(1)
	}

	log.Info("output saved", logger.Fields(
		"path", outPath,
		logger.FieldFormat, string(outFormat),
		logger.FieldSpeakers, tr.Metadata.SpeakerCount,
	))
}
