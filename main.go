package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunchbot/config"
	"lunchbot/fetch"
)

const (
	currentVersion = "0.1.0"

	// The nickname is part of the bot's identity on the channel and is
	// deliberately not configurable.
	botNick = "lunchbot"
)

var buildstamp = "dev"

func main() {
	configFile := flag.String("config", "", "Path to config file (optional)")
	var server, channel string
	var port int
	var useSSL, debug bool
	flag.StringVar(&server, "s", "", "IRC server address")
	flag.StringVar(&server, "server", "", "IRC server address")
	flag.IntVar(&port, "p", 0, "IRC server port")
	flag.IntVar(&port, "port", 0, "IRC server port")
	flag.StringVar(&channel, "c", "", "IRC channel to join")
	flag.StringVar(&channel, "channel", "", "IRC channel to join")
	flag.BoolVar(&useSSL, "ssl", false, "Use SSL")
	flag.BoolVar(&debug, "d", false, "Print more debug output")
	flag.BoolVar(&debug, "debug", false, "Print more debug output")
	flag.Parse()

	fmt.Printf("lunchbot v%s (build: %s)\n", currentVersion, buildstamp)

	// Load configuration; flags override the file.
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if server != "" {
		cfg.IRC.Server = server
	}
	if port != 0 {
		cfg.IRC.Port = port
	}
	if channel != "" {
		cfg.IRC.Channel = channel
	}
	if useSSL {
		cfg.IRC.SSL = true
	}
	if debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	fetcher := fetch.New(fetch.Config{
		Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		UserAgent: cfg.Fetch.UserAgent,
	})
	restaurants := buildRestaurants(cfg.Restaurants, fetcher)
	slog.Info("restaurants configured", "count", len(restaurants))

	bot := NewBot(cfg, NewRouter(restaurants))

	// Run until interrupted; the bot reconnects forever on its own.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	bot.Run(ctx)
}
