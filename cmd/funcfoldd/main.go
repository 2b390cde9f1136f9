package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"funcfold/internal/config"
	"funcfold/internal/foldd"
	"funcfold/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default: ./funcfold.yaml)")
	flag.String("listen", "", "listen address (tcp), overrides daemon.listen")
	flag.Int("max-documents", 0, "open documents kept before the oldest is evicted")
	flag.String("log-level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	v := config.NewViper(*cfgFile)
	_ = v.BindPFlag("daemon.listen", flag.Lookup("listen"))
	_ = v.BindPFlag("daemon.max_documents", flag.Lookup("max-documents"))
	_ = v.BindPFlag("log.level", flag.Lookup("log-level"))
	if err := config.ReadIn(v); err != nil {
		fail(err)
	}
	cfg, err := config.New(v)
	if err != nil {
		fail(err)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fail(err)
	}

	s := foldd.NewServer(foldd.Options{
		Listen:       cfg.Daemon.Listen,
		MaxDocuments: cfg.Daemon.MaxDocuments,
		Logger:       logger,
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("shutting down")
		_ = s.Close()
	}()

	if err := s.Run(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			_, _ = fmt.Fprintf(os.Stderr, "listen address in use: %s\nTry: --listen 127.0.0.1:7348\n", cfg.Daemon.Listen)
			os.Exit(1)
		}
		fail(err)
	}
}

func fail(err error) {
	_, _ = fmt.Fprintln(os.Stderr, "funcfoldd:", err)
	os.Exit(1)
}
