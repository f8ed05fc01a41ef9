package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	watergap "github.com/JKupzig/WaterGAPLite"
	"github.com/JKupzig/WaterGAPLite/config"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
)

func main() {
	cfgFP := flag.String("config", "watergap.yaml", "run file")
	verbose := flag.Bool("v", false, "debug logging")
	progress := flag.Bool("progress", true, "show a progress bar")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05.999Z07:00"}
	lvl := zerolog.InfoLevel
	if *verbose {
		lvl = zerolog.DebugLevel
		zerologr.SetMaxV(1)
	}
	zlog := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	log := zerologr.New(&zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgFP)
	if err != nil {
		log.Error(err, "config")
		os.Exit(1)
	}

	tt := time.Now()
	opts := []watergap.Option{watergap.WithLogr(log.WithName(cfg.RunID))}
	if *progress {
		opts = append(opts, watergap.WithProgress())
	}
	res, err := watergap.Run(ctx, cfg, opts...)
	if err != nil {
		log.Error(err, "run failed")
		stop()
		os.Exit(1)
	}
	log.Info(fmt.Sprintf("Run complete. n processes: %v", runtime.GOMAXPROCS(0)), "days", len(res.T), "elapsed", time.Since(tt).String())
}
