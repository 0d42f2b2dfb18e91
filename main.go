package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/golang/glog"
)

var configFile = flag.String("config", "", "path to a TOML configuration file; built-in defaults when empty")

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting up the tone generator")
	if err := doMain(ctx, *configFile); err != nil {
		log.Exitf("failed to run: %v", err)
	}
}

func doMain(ctx context.Context, file string) error {
	cfg := DefaultConfig()
	if file != "" {
		var err error
		if cfg, err = ParseFromFile(file); err != nil {
			return err
		}
	}

	sys, err := bringUp(cfg)
	if err != nil {
		return err
	}

	if err := sys.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shut down")
	return nil
}
