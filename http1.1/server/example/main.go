package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/kianooshaz/http-from-scratch/http1.1/server"
)

func main() {
	addr := flag.String("addr", server.DefaultAddr, "listen address")
	directory := flag.String("directory", "", "directory served under /files/")
	workers := flag.Int("workers", server.DefaultWorkers, "number of connection workers")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		log.Fatalf("invalid -log-level: %s", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	s := &server.Server{
		Addr:      *addr,
		Directory: *directory,
		Workers:   *workers,
		Logger:    logger,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		<-quit
		log.Println("shutting down...")
		s.Close()
	}()

	log.Printf("Starting web server: http://%s", *addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, server.ErrServerClosed) {
		log.Fatal(err)
	}
}
