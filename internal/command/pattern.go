// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ArgKind is the kind of argument a flag pattern declares.
type ArgKind int

const (
	// ArgNone is a boolean flag without an argument.
	ArgNone ArgKind = iota
	// ArgRequired is a flag declared with `<arg>`.
	ArgRequired
	// ArgOptional is a flag declared with `[arg]`.
	ArgOptional
)

// ErrInvalidPattern is returned for flag patterns that cannot be parsed.
var ErrInvalidPattern = errors.New("invalid flag pattern")

// Pattern is a parsed flag pattern such as `-p, --platform <string>`.
type Pattern struct {
	Short string
	// Long is the long flag name without the leading dashes.
	Long    string
	ArgName string
	Arg     ArgKind
	// Negate is set for `--no-*` flags.
	Negate bool
}

// ParsePattern parses a flag pattern. Tokens may be separated by spaces,
// commas or pipes. Exactly one long flag is required.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '|'
	})
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "--"):
			if p.Long != "" {
				return Pattern{}, fmt.Errorf("%w %q: more than one long flag", ErrInvalidPattern, s)
			}
			p.Long = tok[2:]
			if !validFlagName(p.Long) {
				return Pattern{}, fmt.Errorf("%w %q: bad flag name %q", ErrInvalidPattern, s, tok)
			}
		case strings.HasPrefix(tok, "-"):
			if p.Short != "" || len(tok) != 2 || !validFlagName(tok[1:]) {
				return Pattern{}, fmt.Errorf("%w %q: bad short flag %q", ErrInvalidPattern, s, tok)
			}
			p.Short = tok[1:]
		case enclosed(tok, '<', '>'):
			if p.Arg != ArgNone {
				return Pattern{}, fmt.Errorf("%w %q: more than one argument", ErrInvalidPattern, s)
			}
			p.Arg, p.ArgName = ArgRequired, tok[1:len(tok)-1]
		case enclosed(tok, '[', ']'):
			if p.Arg != ArgNone {
				return Pattern{}, fmt.Errorf("%w %q: more than one argument", ErrInvalidPattern, s)
			}
			p.Arg, p.ArgName = ArgOptional, tok[1:len(tok)-1]
		default:
			return Pattern{}, fmt.Errorf("%w %q: unexpected token %q", ErrInvalidPattern, s, tok)
		}
	}
	if p.Long == "" {
		return Pattern{}, fmt.Errorf("%w %q: no long flag", ErrInvalidPattern, s)
	}
	p.Negate = strings.HasPrefix(p.Long, "no-") && p.Arg == ArgNone
	return p, nil
}

// Key returns the options map key, the camel-cased long name. A negatable
// flag is keyed by the name it negates.
func (p Pattern) Key() string {
	name := p.Long
	if p.Negate {
		name = strings.TrimPrefix(name, "no-")
	}
	return camelCase(name)
}

// Flag returns the long flag as typed on the command line.
func (p Pattern) Flag() string {
	return "--" + p.Long
}

func camelCase(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func enclosed(tok string, open, closing byte) bool {
	return len(tok) > 2 && tok[0] == open && tok[len(tok)-1] == closing
}

func validFlagName(name string) bool {
	if name == "" || name[0] == '-' {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
