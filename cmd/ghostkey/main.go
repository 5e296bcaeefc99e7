// cmd/ghostkey/main.go
package main

import (
	"fmt"
	"io"
	stlog "log"
	"os"

	"github.com/ghostkey/ghostkey/internal/app"
	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, &flags)
	if err != nil {
		stlog.Printf("Warning: problem loading configuration: %v", err)
	}

	// --- Logger Initialization ---
	var logWriter io.Writer
	var logFile *os.File
	switch cfg.Logger.LogFilePath {
	case "":
		logWriter = nil // Discard logs unless a destination is configured.
	case "-":
		logWriter = os.Stderr
	default:
		logFile, err = os.OpenFile(cfg.Logger.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
		}
		logWriter = logFile
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Init(cfg.Logger, logWriter)

	logger.Infof("Starting %s %s...", config.AppName, version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create and Run App ---
	editorApp, err := app.NewApp(filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Printf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
