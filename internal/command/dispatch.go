// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Prairie-Wolf/metro-bundler/internal/config"
)

// dispatch validates opts against desc and runs its handler on a separate
// goroutine, waiting for it to finish. Both validation and handler failures
// are returned as a Failure.
func dispatch(ctx context.Context, desc Descriptor, argv []string, cfg *config.Config, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.Ctx(ctx).With().Str("command", desc.Name).Logger()

	var g errgroup.Group
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &HandlerError{Command: desc.Name, Err: panicError(r)}
			}
		}()

		logger.Debug().Str("phase", "validating").Msg("checking required options")
		if err := AssertRequiredOptions(desc.Options, opts); err != nil {
			return err
		}

		logger.Debug().Str("phase", "executing").Strs("args", argv).Msg("running command")
		return handlerFailure(desc.Name, desc.Func(logger.WithContext(ctx), argv, cfg, opts))
	})

	err := g.Wait()
	if err != nil {
		logger.Debug().Str("phase", "failed").Err(err).Msg("command failed")
		return err
	}
	logger.Debug().Str("phase", "done").Msg("command finished")
	return nil
}

func handlerFailure(name string, err error) error {
	if err == nil {
		return nil
	}
	var f Failure
	if errors.As(err, &f) {
		return err
	}
	return &HandlerError{Command: name, Err: err}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
