package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwestphal/pandachat/internal/chat"
	"github.com/mwestphal/pandachat/internal/config"
	"github.com/mwestphal/pandachat/internal/httpserver"
	"github.com/mwestphal/pandachat/internal/llm"
	"github.com/mwestphal/pandachat/internal/store"
	"github.com/mwestphal/pandachat/internal/tts"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	cfg := config.Load()

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	ai := llm.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.ChatModelID, cfg.UtilityModel)
	speech := tts.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.TTSVoice)
	svc := chat.NewService(db, ai, speech, nil)

	srv := httpserver.New(cfg, svc, db)

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           srv.Echo,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", cfg.HTTPAddress)
		serverErrors <- server.ListenAndServe()
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("shutdown signal received: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = server.Close()
	}
	svc.Persist()
}
