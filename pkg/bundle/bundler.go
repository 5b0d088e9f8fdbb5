// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Prairie-Wolf/metro-bundler/internal/command"
	"github.com/Prairie-Wolf/metro-bundler/internal/config"
	"github.com/Prairie-Wolf/metro-bundler/internal/logger"
)

//go:generate go run go.uber.org/mock/mockgen -package mock_$GOPACKAGE -destination=./mock/$GOFILE -source=./$GOFILE

// Bundler produces a bundle for a request.
type Bundler interface {
	Bundle(ctx context.Context, req *Request) (*Result, error)
}

// Result describes what a Bundler wrote.
type Result struct {
	Manifest  *Manifest
	Output    string
	SourceMap string
	// Assets lists the asset files copied to the assets destination.
	Assets []string
}

// Handler adapts b to a command handler.
func Handler(b Bundler) command.Handler {
	return func(ctx context.Context, _ []string, cfg *config.Config, opts command.Options) error {
		req := NewRequest(opts)
		if req.Verbose {
			ctx = logger.Verbose(ctx)
		}
		if err := req.Validate(cfg); err != nil {
			return err
		}

		zerolog.Ctx(ctx).Info().
			Str("entry", req.EntryPath()).
			Str("platform", req.Platform).
			Bool("dev", req.Dev).
			Msg("building bundle")

		res, err := b.Bundle(ctx, req)
		if err != nil {
			return fmt.Errorf("building bundle: %w", err)
		}

		event := zerolog.Ctx(ctx).Info().Str("output", res.Output)
		if res.SourceMap != "" {
			event = event.Str("sourcemap", res.SourceMap)
		}
		event.Int("assets", len(res.Assets)).Msg("bundle written")
		return nil
	}
}
