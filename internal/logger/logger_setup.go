// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package logger contains the zerolog setup shared by the metro CLI.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Prairie-Wolf/metro-bundler/internal/config"
)

const (
	// Text is the human readable console format
	Text = "text"
	// JSON emits one JSON object per record
	JSON = "json"
)

// FromFlags configures logging and returns a logger with settings matching
// the supplied cfg.  It also performs some global initialization, because
// that's how zerolog works.
//
// Records go to w (stderr for the CLI) so that command output on stdout
// stays machine readable.
func FromFlags(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	zlevel := ViperLogLevelToZerologLevel(cfg.Level)
	zerolog.SetGlobalLevel(zlevel)

	loggers := []io.Writer{}

	if cfg.LogFile != "" {
		cfg.LogFile = filepath.Clean(cfg.LogFile)
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		// NOTE: we are leaking the open file here
		if err != nil {
			log.Err(err).Msg("Failed to open log file, defaulting to stderr")
		} else {
			loggers = append(loggers, file)
		}
	}

	if cfg.Format == JSON {
		loggers = append(loggers, w)
	} else {
		loggers = append(loggers, zerolog.ConsoleWriter{Out: w})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(loggers...)).Level(zlevel).With().Timestamp().Logger()

	// Use this logger when calling zerolog.Ctx(nil), etc
	zerolog.DefaultContextLogger = &logger
	return logger
}

// ViperLogLevelToZerologLevel converts a configured level name to a zerolog level.
func ViperLogLevelToZerologLevel(viperLogLevel string) zerolog.Level {
	switch viperLogLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel // Default to info level if the mapping is not found
	}
}

// Verbose returns ctx carrying a copy of its logger lowered to debug level.
// The global level is lowered as well, since zerolog filters on both.
func Verbose(ctx context.Context) context.Context {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	l := zerolog.Ctx(ctx).Level(zerolog.DebugLevel)
	return l.WithContext(ctx)
}
