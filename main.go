package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"tablero/pkg/api"
	"tablero/pkg/board"
	"tablero/pkg/config"
	"tablero/pkg/sheets"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "tablero.toml", "Path to the config file")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.New(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Sheets.SpreadsheetID == "" {
		log.Fatal("missing spreadsheet config: set Sheets.SpreadsheetID or SPREADSHEET_ID")
	}

	sheet, err := sheets.NewSheetClient(
		context.Background(),
		cfg.Sheets.CredentialsFile,
		cfg.Sheets.SpreadsheetID,
		cfg.Sheets.WorksheetName,
	)
	if err != nil {
		log.Fatalf("Unable to create Sheets client: %v", err)
	}

	gateway := board.NewGateway(sheet)
	var cache board.SnapshotCache
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		cache = board.NewRedisCache(gateway, client, cfg.CacheTTL())
		log.Infof("Snapshot cache backed by redis at %s", cfg.Redis.Address)
	} else {
		cache = board.NewMemoryCache(gateway, cfg.CacheTTL())
	}
	mover := board.NewMover(gateway, cache)

	router := api.GetRouter(api.NewHandler(cache, mover, cfg.Board.Stages))
	if router != nil {
		go startServer(router, cfg.ListenAddress)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}
}

func startServer(router http.Handler, listenAddress string) {
	server := http.Server{
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
