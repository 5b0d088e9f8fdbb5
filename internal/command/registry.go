// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Prairie-Wolf/metro-bundler/internal/config"
)

// ConfigOption is injected into every registered command so that the global
// configuration path is accepted wherever it appears.
var ConfigOption = Option{
	Command:     "--" + config.FlagName + " [string]",
	Description: "Path to the CLI configuration file",
}

var (
	// ErrInvalidDescriptor is returned by Add for malformed descriptors.
	ErrInvalidDescriptor = errors.New("invalid command descriptor")
	// ErrDuplicateCommand is returned by Add when the name is already registered.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Registry binds descriptors to subcommands of a cobra root command.
type Registry struct {
	root     *cobra.Command
	cfg      *config.Config
	commands map[string]*binding
}

// binding is a registered descriptor together with its flag state.
type binding struct {
	desc Descriptor
	// options holds the declared options followed by the injected ones.
	options []boundOption
}

type boundOption struct {
	opt     Option
	pattern Pattern
	value   *optionValue
	def     any
	flag    *pflag.Flag
}

// NewRegistry returns a Registry adding commands to root. cfg is used to
// resolve option defaults and is passed to every handler.
func NewRegistry(root *cobra.Command, cfg *config.Config) *Registry {
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ValidationError{Err: err}
	})
	return &Registry{
		root:     root,
		cfg:      cfg,
		commands: make(map[string]*binding),
	}
}

// Add registers desc as a subcommand of the root and returns it.
func (r *Registry) Add(desc Descriptor) (*cobra.Command, error) {
	if err := r.check(desc); err != nil {
		return nil, err
	}
	b, err := r.bind(desc)
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:    desc.Name + " [options]",
		Short:  desc.Description,
		Long:   desc.Description,
		Hidden: desc.Description == "",
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd.Context(), b.desc, args, r.cfg, b.collect())
		},
	}
	for i := range b.options {
		o := &b.options[i]
		o.flag = cmd.Flags().VarPF(o.value, o.pattern.Long, o.pattern.Short, o.opt.Description)
		if o.pattern.Arg == ArgNone {
			o.flag.NoOptDefVal = "true"
		}
	}
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		renderHelp(c.OutOrStdout(), c, b)
	})

	r.root.AddCommand(cmd)
	r.commands[desc.Name] = b
	return cmd, nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	b, ok := r.commands[name]
	if !ok {
		return Descriptor{}, false
	}
	return b.desc, true
}

// Names returns the registered command names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, c := range r.root.Commands() {
		if _, ok := r.commands[c.Name()]; ok {
			names = append(names, c.Name())
		}
	}
	return names
}

func (r *Registry) check(desc Descriptor) error {
	if desc.Name == "" || strings.ContainsAny(desc.Name, " \t\n") {
		return fmt.Errorf("%w: bad name %q", ErrInvalidDescriptor, desc.Name)
	}
	if _, ok := r.commands[desc.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, desc.Name)
	}
	if desc.Func == nil {
		return fmt.Errorf("%w: command %s has no handler", ErrInvalidDescriptor, desc.Name)
	}
	if desc.Pkg != nil {
		if desc.Pkg.Name == "" {
			return fmt.Errorf("%w: command %s has a package without a name", ErrInvalidDescriptor, desc.Name)
		}
		if _, err := version.NewVersion(desc.Pkg.Version); err != nil {
			return fmt.Errorf("%w: package %s: %w", ErrInvalidDescriptor, desc.Pkg.Name, err)
		}
	}
	return nil
}

func (r *Registry) bind(desc Descriptor) (*binding, error) {
	b := &binding{desc: desc}
	longs := map[string]bool{"help": true}
	shorts := map[string]bool{"h": true}
	keys := map[string]bool{}

	all := append(append([]Option{}, desc.Options...), ConfigOption)
	for i, opt := range all {
		injected := i == len(desc.Options)
		p, err := ParsePattern(opt.Command)
		if err != nil {
			return nil, fmt.Errorf("%w: command %s: %w", ErrInvalidDescriptor, desc.Name, err)
		}
		if !injected && p.Long == config.FlagName {
			return nil, fmt.Errorf("%w: command %s: option --%s is reserved", ErrInvalidDescriptor, desc.Name, p.Long)
		}
		if longs[p.Long] || keys[p.Key()] || (p.Short != "" && shorts[p.Short]) {
			return nil, fmt.Errorf("%w: command %s: option %q declared twice", ErrInvalidDescriptor, desc.Name, opt.Command)
		}
		longs[p.Long], keys[p.Key()] = true, true
		if p.Short != "" {
			shorts[p.Short] = true
		}

		if opt.Default.kind == defaultResolver && opt.Default.resolver == nil {
			return nil, fmt.Errorf("%w: command %s: option %s has a nil default resolver", ErrInvalidDescriptor, desc.Name, p.Flag())
		}
		def, ok := opt.Default.Resolve(r.cfg)
		if !ok && p.Negate {
			def = true
		}
		b.options = append(b.options, boundOption{
			opt:     opt,
			pattern: p,
			value:   newOptionValue(p, opt.Parse),
			def:     def,
		})
	}
	return b, nil
}

// collect builds the options map from the parsed flags.
func (b *binding) collect() Options {
	opts := make(Options, len(b.options))
	for _, o := range b.options {
		if o.flag != nil && o.flag.Changed {
			opts[o.pattern.Key()] = o.value.parsed
			continue
		}
		opts[o.pattern.Key()] = o.def
	}
	return opts
}
