// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"strconv"
)

// optionValue is the pflag.Value backing a declared option. It keeps the
// raw text for display and the parsed value for the handler.
type optionValue struct {
	pattern Pattern
	parse   ParseFunc
	raw     string
	parsed  any
}

func newOptionValue(p Pattern, parse ParseFunc) *optionValue {
	return &optionValue{pattern: p, parse: parse}
}

func (v *optionValue) String() string {
	return v.raw
}

func (v *optionValue) Set(s string) error {
	var val any
	switch {
	case v.pattern.Arg == ArgNone:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", s)
		}
		if v.pattern.Negate {
			b = !b
		}
		val = b
	case v.parse != nil:
		var err error
		if val, err = v.parse(s); err != nil {
			return err
		}
	default:
		val = s
	}
	v.raw, v.parsed = s, val
	return nil
}

func (v *optionValue) Type() string {
	if v.pattern.Arg == ArgNone {
		return "bool"
	}
	if v.pattern.ArgName != "" {
		return v.pattern.ArgName
	}
	return "string"
}

