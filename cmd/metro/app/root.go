// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package app provides the root command for the metro CLI
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Prairie-Wolf/metro-bundler/internal/bootstrap"
	"github.com/Prairie-Wolf/metro-bundler/internal/command"
	"github.com/Prairie-Wolf/metro-bundler/internal/config"
	"github.com/Prairie-Wolf/metro-bundler/internal/constants"
	"github.com/Prairie-Wolf/metro-bundler/internal/logger"
	"github.com/Prairie-Wolf/metro-bundler/internal/util/cli"
	"github.com/Prairie-Wolf/metro-bundler/pkg/bundle"
	"github.com/Prairie-Wolf/metro-bundler/pkg/bundle/archive"
)

// Environment holds the process resources the CLI runs against.
type Environment struct {
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
	Fs     afero.Fs
	Runner bootstrap.Runner
	GOOS   string
}

// CmdRoot represents the base command when called without any subcommands
func CmdRoot(v *viper.Viper, cfg *config.Config, fs afero.Fs) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "metro",
		Short: "metro bundles JavaScript applications",
		Long: `metro builds the JavaScript bundle of an application together with
its assets and source map.`,
		Version: constants.VerboseCLIVersion,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	// The subcommand lookup scans the arguments before cobra adds these
	// lazily, so they must exist for "--version --config <path>" to parse.
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()
	// Every subcommand goes through the Registry.
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().String(config.FlagName, "", command.ConfigOption.Description)

	if err := config.RegisterFlags(v, cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	reg := command.NewRegistry(cmd, cfg)
	if _, err := reg.Add(bundle.Command(archive.NewPacker(fs, cfg.Project.AssetExts))); err != nil {
		return nil, fmt.Errorf("registering %s: %w", bundle.Name, err)
	}
	return cmd, nil
}

// Run loads the configuration, sets up the environment and executes the
// command selected by env.Args. A failed environment setup is logged and
// returned as a *bootstrap.Error before any command is registered.
func Run(ctx context.Context, env Environment) error {
	v := viper.New()
	config.SetViperDefaults(v)

	cfgFile := config.PreParse(v, env.Args)
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	zlog := logger.FromFlags(cfg.Logging, env.Stderr)
	ctx = zlog.WithContext(ctx)

	if err := setupEnv(ctx, env, cfg); err != nil {
		zlog.Error().Err(err).Msg("unable to set up the environment")
		return err
	}

	zlog.Debug().Str("phase", "registering").Msg("registering commands")
	cmd, err := CmdRoot(v, cfg, env.Fs)
	if err != nil {
		return err
	}
	cmd.SetArgs(env.Args)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	zlog.Debug().Str("phase", "awaiting").Msg("parsing command line")
	return cmd.ExecuteContext(ctx)
}

func setupEnv(ctx context.Context, env Environment, cfg *config.Config) error {
	dir := cfg.SetupEnv.Dir
	if dir == "" {
		var err error
		if dir, err = bootstrap.DefaultDir(); err != nil {
			return &bootstrap.Error{Script: bootstrap.ScriptName(env.GOOS), Err: err}
		}
	}
	b := &bootstrap.Bootstrapper{Fs: env.Fs, Runner: env.Runner, Dir: dir, GOOS: env.GOOS}
	return b.Run(ctx)
}

// Execute runs the CLI against the host process and exits on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Run(ctx, Environment{
		Args:   os.Args[1:],
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Fs:     afero.NewOsFs(),
		Runner: bootstrap.ExecRunner{},
		GOOS:   runtime.GOOS,
	})
	cancel()

	// Run has already logged a failed environment setup.
	var berr *bootstrap.Error
	if errors.As(err, &berr) {
		os.Exit(1)
	}
	cli.ExitNicelyOnError(err)
}
