// Package main is a demo host for the nomade_native plugin. It stands
// in for the GUI host runtime: it builds an in-process messenger,
// registers the plugin, and drives a few method calls over the
// "nomade_native" channel.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nomade-app/nomade-native/channel"
	"github.com/nomade-app/nomade-native/internal/config"
	"github.com/nomade-app/nomade-native/internal/hostrt"
	"github.com/nomade-app/nomade-native/nomadenative"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("nomade-hostdemo %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting demo host", zap.String("version", version))

	// Host runtime + plugin registration, as the real host would do it
	// during plugin initialization.
	runtime := hostrt.New(logger)
	defer runtime.Close()

	registrar := channel.NewRegistrar(runtime, logger)
	nomadenative.RegisterWithRegistrar(registrar)

	// Caller side of the same channel.
	ch := channel.New(runtime, nomadenative.ChannelName, logger)
	ctx := context.Background()

	result, err := ch.Invoke(ctx, "getPlatformVersion", nil)
	if err != nil {
		logger.Fatal("getPlatformVersion failed", zap.Error(err))
	}
	fmt.Printf("Platform version: %v\n", result)

	// Probe unimplemented methods to show the not-implemented reply.
	for _, method := range cfg.Demo.ProbeMethods {
		_, err := ch.Invoke(ctx, method, nil)
		if errors.Is(err, channel.ErrNotImplemented) {
			fmt.Printf("Method %q: not implemented\n", method)
			continue
		}
		if err != nil {
			logger.Warn("Probe call failed", zap.String("method", method), zap.Error(err))
			continue
		}
		fmt.Printf("Method %q: unexpectedly implemented\n", method)
	}
}

// initLogger creates a zap logger based on the configuration.
// It outputs to console (human-readable) and optionally a JSON log file.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
