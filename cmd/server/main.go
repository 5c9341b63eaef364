package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/filedesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/filedesk/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Listen host")
	root := flag.String("root", cfg.Files.Root, "Directory loaded at startup")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development mode (console logs, debug level)")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Files.Root = *root
	if *dev && !cfg.Logging.Development {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)

	srv, err := server.NewServerWithLogger(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))
		if err := srv.Close(); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
			os.Exit(1)
		}
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}
}
